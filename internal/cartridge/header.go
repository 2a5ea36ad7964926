package cartridge

import "fmt"

// Type is the cartridge hardware byte at header offset 0x147. Only the
// MBC1 family is actually emulated; every other declared type falls back to
// MBC1 semantics per spec.md §4.3, including the documented 0x19 (MBC5)
// deviation this implementation reproduces rather than corrects.
type Type uint8

const (
	TypeROM         Type = 0x00
	TypeMBC1        Type = 0x01
	TypeMBC1RAM     Type = 0x02
	TypeMBC1RAMBatt Type = 0x03
	TypeMBC5Deviant Type = 0x19 // routed to MBC1, not a real MBC5 implementation
)

var romBankCounts = map[uint8]int{
	0x00: 2, 0x01: 4, 0x02: 8, 0x03: 16, 0x04: 32, 0x05: 64, 0x06: 128,
}

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024,
	0x02: 8 * 1024,
	0x03: 32 * 1024,  // four 8 KiB banks
	0x04: 128 * 1024, // sixteen 8 KiB banks
}

// Header is the subset of the 0x0100-0x014F cartridge header this kernel
// consumes: type, ROM/RAM size enumerations, and the battery flag.
type Header struct {
	Type         Type
	ROMBankCount int
	RAMSize      int
	Battery      bool
}

// ParseHeader reads the header fields out of a full ROM image. rom must be
// at least 0x150 bytes; real cartridges always are.
func ParseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, fmt.Errorf("cartridge: ROM too short to contain a header (%d bytes)", len(rom))
	}
	typeByte := rom[0x147]

	romBankCount, ok := romBankCounts[rom[0x148]]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: unrecognized ROM size byte at 0x148: %#02x", rom[0x148])
	}
	ramSize, ok := ramSizes[rom[0x149]]
	if !ok {
		return Header{}, fmt.Errorf("cartridge: unrecognized RAM size byte at 0x149: %#02x", rom[0x149])
	}

	h := Header{
		Type:         Type(typeByte),
		ROMBankCount: romBankCount,
		RAMSize:      ramSize,
		Battery:      typeByte == 0x03,
	}
	return h, nil
}

// UsesMBC1 reports whether this header's declared type should be driven by
// the MBC1 controller: header bytes 1-3, 0x19 by this implementation's
// choice, and every other non-ROM type (MBC2, MBC3, ...) as a fallback.
func (h Header) UsesMBC1() bool {
	switch h.Type {
	case TypeMBC1, TypeMBC1RAM, TypeMBC1RAMBatt, TypeMBC5Deviant:
		return true
	default:
		return h.Type != TypeROM
	}
}
