package cartridge

// MBC1 implements the Memory Bank Controller 1 banking scheme described in
// spec.md §4.3: a 5-bit low ROM-bank register, a 2-bit register that serves
// as either the high ROM-bank bits or the RAM bank index depending on mode,
// and a mode flag toggled by the 0x6000-0x7FFF write range.
type MBC1 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	bank1      uint8 // 5 bits: low ROM bank bits, never 0
	bank2      uint8 // 2 bits: high ROM bank bits or RAM bank index
	ramMode    bool  // false = ROM banking mode, true = RAM banking mode
}

// NewMBC1 allocates RAM per the header and returns a controller ready to
// serve bank 1 as the default switchable bank.
func NewMBC1(rom []byte, h Header) *MBC1 {
	return &MBC1{
		rom:   rom,
		ram:   make([]byte, h.RAMSize),
		bank1: 0x01,
	}
}

// Read dispatches a CPU read in either the fixed ROM bank (0x0000-0x3FFF),
// the switchable ROM bank (0x4000-0x7FFF) or external RAM (0xA000-0xBFFF).
func (m *MBC1) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		if m.ramMode {
			// In RAM banking mode bank2 also affects the lower region's
			// effective bank when the ROM is large enough to need it.
			bank := m.romBankZero()
			return m.romByte(bank, addr)
		}
		return m.rom[addr]
	case addr < 0x8000:
		return m.romByte(m.effectiveBank(), addr-0x4000)
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		return m.ram[m.ramOffset()+int(addr-0xA000)]
	}
	return 0xFF
}

// Write routes a CPU write in 0x0000-0x7FFF to one of MBC1's four control
// registers, or a 0xA000-0xBFFF write into external RAM.
func (m *MBC1) Write(addr uint16, v uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = v&0x0F == 0x0A
	case addr < 0x4000:
		bank := v & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.bank1 = bank
	case addr < 0x6000:
		m.bank2 = v & 0x03
	case addr < 0x8000:
		m.ramMode = v&0x01 != 0
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		m.ram[m.ramOffset()+int(addr-0xA000)] = v
	}
}

// effectiveBank composes bank1/bank2 into the bank index visible through
// 0x4000-0x7FFF, remapping the unreachable 0x00/0x20/0x40/0x60 indices to
// the next bank up per spec.md §4.3.
func (m *MBC1) effectiveBank() int {
	bank := int(m.bank1) | int(m.bank2)<<5
	return m.wrapBank(bank)
}

// romBankZero is the bank visible through 0x0000-0x3FFF while in RAM
// banking mode: bank2 shifted into the same position and wrapped to the ROM
// size, without the unreachable-zero remap, so it is bank 0 unless the ROM
// has more than 32 banks.
func (m *MBC1) romBankZero() int {
	bank := int(m.bank2) << 5
	if total := len(m.rom) / 0x4000; total > 0 {
		bank %= total
	}
	return bank
}

func (m *MBC1) wrapBank(bank int) int {
	if bank&0x1F == 0 {
		bank++
	}
	total := len(m.rom) / 0x4000
	if total > 0 {
		bank %= total
	}
	return bank
}

func (m *MBC1) romByte(bank int, offset uint16) uint8 {
	idx := bank*0x4000 + int(offset)
	if idx < 0 || idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *MBC1) ramOffset() int {
	if !m.ramMode {
		return 0
	}
	offset := int(m.bank2) * 0x2000
	if offset+0x2000 > len(m.ram) {
		return 0
	}
	return offset
}

// SaveRAM returns the external RAM image for battery-backed persistence.
func (m *MBC1) SaveRAM() []byte { return m.ram }

// LoadRAM restores a previously saved external RAM image.
func (m *MBC1) LoadRAM(data []byte) { copy(m.ram, data) }
