// Package cartridge parses the ROM header and implements cartridge bank
// switching. Only the MBC1 controller is modeled; every declared type other
// than plain ROM is routed to it, matching spec.md §4.3 exactly, deviation
// included.
package cartridge

// banker is the banking behavior the Cartridge delegates ROM/RAM accesses
// to. MBC1 is the only implementation; a plain-ROM cartridge uses romOnly.
type banker interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// Cartridge owns the ROM image and the selected banking controller.
type Cartridge struct {
	Header Header
	mbc    banker
}

// New parses rom's header and constructs the appropriate banking
// controller.
func New(rom []byte) (*Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}
	var mbc banker
	if header.UsesMBC1() {
		mbc = NewMBC1(rom, header)
	} else {
		mbc = newROMOnly(rom)
	}
	return &Cartridge{Header: header, mbc: mbc}, nil
}

// Read services a CPU read in either the 0x0000-0x7FFF ROM window or the
// 0xA000-0xBFFF external RAM window.
func (c *Cartridge) Read(addr uint16) uint8 { return c.mbc.Read(addr) }

// Write services a CPU write in the same two windows: ROM writes select
// banks, RAM writes persist to external RAM.
func (c *Cartridge) Write(addr uint16, v uint8) { c.mbc.Write(addr, v) }

// HasBattery reports whether copy_external_ram should return a snapshot.
func (c *Cartridge) HasBattery() bool { return c.Header.Battery }

// SaveRAM returns the external RAM image, or nil if the cartridge has no
// battery.
func (c *Cartridge) SaveRAM() []byte {
	if !c.HasBattery() {
		return nil
	}
	return c.mbc.SaveRAM()
}

// LoadRAM restores a previously captured external RAM image.
func (c *Cartridge) LoadRAM(data []byte) { c.mbc.LoadRAM(data) }

// romOnly serves cartridges with no banking hardware at all: bank 0 is
// always resident and bank 1 is hard-wired into the switchable window.
type romOnly struct {
	rom []byte
	ram []byte
}

func newROMOnly(rom []byte) *romOnly {
	return &romOnly{rom: rom, ram: make([]byte, 8*1024)}
}

func (r *romOnly) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		if int(addr) < len(r.rom) {
			return r.rom[addr]
		}
		return 0xFF
	case addr >= 0xA000 && addr < 0xC000:
		return r.ram[addr-0xA000]
	}
	return 0xFF
}

func (r *romOnly) Write(addr uint16, v uint8) {
	if addr >= 0xA000 && addr < 0xC000 {
		r.ram[addr-0xA000] = v
	}
}

func (r *romOnly) SaveRAM() []byte   { return r.ram }
func (r *romOnly) LoadRAM(data []byte) { copy(r.ram, data) }
