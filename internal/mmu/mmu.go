// Package mmu implements the unified 64 KiB address space façade from
// spec.md §4.2: work RAM, the boot ROM overlay, echo-RAM mirroring, OAM
// DMA, and the region-specific write policies, delegating banked and
// peripheral regions to the cartridge, PPU, APU, timer, joypad, interrupt
// controller and serial port.
package mmu

import (
	"github.com/pixelforge/dmgboy/internal/apu"
	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/pixelforge/dmgboy/internal/joypad"
	"github.com/pixelforge/dmgboy/internal/ppu"
	"github.com/pixelforge/dmgboy/internal/serial"
	"github.com/pixelforge/dmgboy/internal/timer"
)

// MMU is the CPU's memory bus and the hub every peripheral is wired
// through. It implements cpu.Bus.
type MMU struct {
	Cart    *cartridge.Cartridge
	PPU     *ppu.PPU
	APU     *apu.APU
	Timer   *timer.Timer
	Joypad  *joypad.State
	IRQ     *interrupts.Controller
	Serial  *serial.Port

	wram [0x2000]byte
	hram [0x7F]byte

	bootROM     []byte
	bootEnabled bool
}

// New wires an MMU around the given cartridge and a freshly constructed
// set of peripherals. bootROM may be nil, in which case the boot overlay
// starts disabled.
func New(cart *cartridge.Cartridge, bootROM []byte, sampleRate uint32) *MMU {
	return &MMU{
		Cart:        cart,
		PPU:         ppu.New(),
		APU:         apu.New(sampleRate),
		Timer:       timer.New(),
		Joypad:      joypad.New(),
		IRQ:         interrupts.New(),
		Serial:      serial.New(),
		bootROM:     bootROM,
		bootEnabled: len(bootROM) > 0,
	}
}

// RequestVBlank and RequestLCDStat let the PPU raise interrupts through
// the ppu.InterruptRequester interface without importing the interrupts
// package.
func (m *MMU) RequestVBlank()  { m.IRQ.Request(interrupts.VBlank) }
func (m *MMU) RequestLCDStat() { m.IRQ.Request(interrupts.LCDStat) }

// Read implements cpu.Bus's read path per spec.md §4.2.
func (m *MMU) Read(addr uint16) uint8 {
	if addr < 0x100 && m.bootEnabled {
		return m.bootROM[addr]
	}

	switch {
	case addr < 0x8000:
		return m.Cart.Read(addr)
	case addr < 0xA000:
		return m.PPU.ReadVRAM(addr)
	case addr < 0xC000:
		return m.Cart.Read(addr)
	case addr < 0xE000:
		return m.wram[addr-0xC000]
	case addr < 0xFE00:
		return m.wram[addr-0x2000-0xC000]
	case addr < 0xFEA0:
		return m.PPU.ReadOAM(addr)
	case addr < 0xFF00:
		return 0xFF // unusable region
	case addr < 0xFF80:
		return m.readIO(addr)
	case addr < 0xFFFF:
		return m.hram[addr-0xFF80]
	default:
		return m.IRQ.Read(addr)
	}
}

// Write implements cpu.Bus's write path per spec.md §4.2, applying the
// MBC first and then each region-specific policy in the documented
// priority order.
func (m *MMU) Write(addr uint16, v uint8) {
	if addr < 0x8000 {
		m.Cart.Write(addr, v)
		return
	}

	switch {
	case addr < 0xA000:
		m.PPU.WriteVRAM(addr, v)
	case addr < 0xC000:
		m.Cart.Write(addr, v)
	case addr < 0xE000:
		m.wram[addr-0xC000] = v
	case addr < 0xFE00:
		m.wram[addr-0x2000-0xC000] = v
	case addr < 0xFEA0:
		if mode := m.PPU.STAT() & 0x03; mode == 2 || mode == 3 {
			return // OAM writes dropped during modes 2/3
		}
		m.PPU.WriteOAM(addr, v)
	case addr < 0xFF00:
		// unusable region: writes dropped
	case addr < 0xFF80:
		m.writeIO(addr, v)
	case addr < 0xFFFF:
		m.hram[addr-0xFF80] = v
	default:
		m.IRQ.Write(addr, v)
	}
}

func (m *MMU) readIO(addr uint16) uint8 {
	switch {
	case addr == 0xFF00:
		return m.Joypad.Read()
	case addr == 0xFF01:
		return m.Serial.SB()
	case addr == 0xFF02:
		return m.Serial.SC()
	case addr == 0xFF04:
		return m.Timer.DIV()
	case addr == 0xFF05:
		return m.Timer.TIMA()
	case addr == 0xFF06:
		return m.Timer.TMA()
	case addr == 0xFF07:
		return m.Timer.TAC()
	case addr == 0xFF0F:
		return m.IRQ.Read(addr)
	case addr >= 0xFF10 && addr <= 0xFF14:
		return m.readSquare(m.APU.Square1(), addr-0xFF10)
	case addr >= 0xFF16 && addr <= 0xFF19:
		return m.readSquare(m.APU.Square2(), addr-0xFF15)
	case addr == 0xFF1A:
		return m.APU.Wave().NR30()
	case addr == 0xFF1C:
		return m.APU.Wave().NR32()
	case addr == 0xFF1E:
		return m.APU.Wave().NR34()
	case addr >= 0xFF30 && addr <= 0xFF3F:
		return m.APU.ReadWave(addr)
	case addr == 0xFF24:
		return m.APU.NR50()
	case addr == 0xFF25:
		return m.APU.NR51()
	case addr == 0xFF26:
		return m.APU.NR52()
	case addr == 0xFF40:
		return m.PPU.LCDC()
	case addr == 0xFF41:
		return m.PPU.STAT()
	case addr == 0xFF42:
		return m.PPU.SCY()
	case addr == 0xFF43:
		return m.PPU.SCX()
	case addr == 0xFF44:
		return m.PPU.LY()
	case addr == 0xFF45:
		return m.PPU.LYC()
	case addr == 0xFF46:
		return 0xFF // DMA source register, write-only in practice
	case addr == 0xFF47:
		return m.PPU.BGP()
	case addr == 0xFF48:
		return m.PPU.OBP0()
	case addr == 0xFF49:
		return m.PPU.OBP1()
	case addr == 0xFF4A:
		return m.PPU.WY()
	case addr == 0xFF4B:
		return m.PPU.WX()
	case addr == 0xFF50:
		if m.bootEnabled {
			return 0
		}
		return 1
	}
	return 0xFF
}

// readSquare reuses one accessor across channel 1 and channel 2 by taking
// their shared register offset (0 = NRx0/NR1x, 1 = NRx1, ...).
func (m *MMU) readSquare(s squareRegs, offset uint16) uint8 {
	switch offset {
	case 0:
		return s.NRx0()
	case 1:
		return s.NRx1()
	case 2:
		return s.NRx2()
	case 4:
		return s.NRx4()
	}
	return 0xFF
}

// squareRegs is the subset of *apu.square this package needs; declared
// here (rather than importing the concrete type everywhere) to keep
// readSquare/writeSquare symmetric for both channels.
type squareRegs interface {
	NRx0() uint8
	NRx1() uint8
	NRx2() uint8
	NRx4() uint8
	SetNRx0(uint8)
	SetNRx1(uint8)
	SetNRx2(uint8)
	SetNRx3(uint8)
	SetNRx4(uint8)
}

func (m *MMU) writeIO(addr uint16, v uint8) {
	switch {
	case addr == 0xFF00:
		m.Joypad.Write(v)
	case addr == 0xFF01:
		m.Serial.SetSB(v)
	case addr == 0xFF02:
		m.Serial.SetSC(v)
	case addr == 0xFF04:
		m.Timer.ResetDIV()
	case addr == 0xFF05:
		m.Timer.SetTIMA(v)
	case addr == 0xFF06:
		m.Timer.SetTMA(v)
	case addr == 0xFF07:
		m.Timer.SetTAC(v)
	case addr == 0xFF0F:
		m.IRQ.Write(addr, v)
	case addr >= 0xFF10 && addr <= 0xFF14:
		m.writeSquare(m.APU.Square1(), addr-0xFF10, v)
	case addr >= 0xFF16 && addr <= 0xFF19:
		m.writeSquare(m.APU.Square2(), addr-0xFF15, v)
	case addr == 0xFF1A:
		m.APU.Wave().SetNR30(v)
	case addr == 0xFF1B:
		m.APU.Wave().SetNR31(v)
	case addr == 0xFF1C:
		m.APU.Wave().SetNR32(v)
	case addr == 0xFF1D:
		m.APU.Wave().SetNR33(v)
	case addr == 0xFF1E:
		m.APU.Wave().SetNR34(v)
	case addr >= 0xFF30 && addr <= 0xFF3F:
		m.APU.WriteWave(addr, v)
	case addr == 0xFF24:
		m.APU.SetNR50(v)
	case addr == 0xFF25:
		m.APU.SetNR51(v)
	case addr == 0xFF26:
		m.APU.SetNR52(v & 0x80) // only the high bit persists
	case addr == 0xFF40:
		m.PPU.SetLCDC(v)
	case addr == 0xFF41:
		m.PPU.SetSTAT(v)
	case addr == 0xFF42:
		m.PPU.SetSCY(v)
	case addr == 0xFF43:
		m.PPU.SetSCX(v)
	case addr == 0xFF44:
		// LY is read-only; writes dropped.
	case addr == 0xFF45:
		m.PPU.SetLYC(v)
	case addr == 0xFF46:
		m.oamDMA(v)
	case addr == 0xFF47:
		m.PPU.SetBGP(v)
	case addr == 0xFF48:
		m.PPU.SetOBP0(v)
	case addr == 0xFF49:
		m.PPU.SetOBP1(v)
	case addr == 0xFF4A:
		m.PPU.SetWY(v)
	case addr == 0xFF4B:
		m.PPU.SetWX(v)
	case addr == 0xFF50:
		if v != 0 {
			m.bootEnabled = false
		}
	}
}

func (m *MMU) writeSquare(s squareRegs, offset uint16, v uint8) {
	switch offset {
	case 0:
		s.SetNRx0(v)
	case 1:
		s.SetNRx1(v)
	case 2:
		s.SetNRx2(v)
	case 3:
		s.SetNRx3(v)
	case 4:
		s.SetNRx4(v)
	}
}

// oamDMA copies 160 bytes from (value<<8) into OAM, executed atomically
// in this model per spec.md §4.2 (real hardware takes 160 M-cycles and
// blocks most bus access; that timing is not modeled).
func (m *MMU) oamDMA(value uint8) {
	src := uint16(value) << 8
	for i := uint16(0); i < 160; i++ {
		m.PPU.DMAWrite(uint8(i), m.Read(src+i))
	}
}
