// Package interrupts implements the priority dispatch described in
// spec.md §4.8: VBlank, LCD STAT, Timer, Serial, Joypad, highest first.
package interrupts

import "fmt"

// Flag identifies one of the five interrupt sources by its bit position in
// both the flag register (0xFF0F) and the enable register (0xFFFF).
type Flag uint8

const (
	VBlank Flag = iota
	LCDStat
	Timer
	Serial
	Joypad
)

// vectors holds the jump target for each source, indexed by Flag.
var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}

const (
	FlagRegister   uint16 = 0xFF0F
	EnableRegister uint16 = 0xFFFF
)

// CPU is the subset of cpu.CPU the controller needs: the interrupt master
// enable flag, the halt latch, and the stack/PC plumbing to service one.
type CPU interface {
	IMEEnabled() bool
	DisableIME()
	ClearHalt()
	PushPC()
	JumpTo(addr uint16)
}

// Controller owns the two interrupt registers and services pending
// interrupts against a CPU each step.
type Controller struct {
	flag   uint8 // 0xFF0F, only the low 5 bits are meaningful
	enable uint8 // 0xFFFF
}

// New returns a controller with both registers clear.
func New() *Controller {
	return &Controller{}
}

// Request raises the flag bit for the given source. Called by the timer,
// PPU and joypad components when their own conditions fire.
func (c *Controller) Request(f Flag) {
	c.flag |= 1 << f
}

// Read returns the register at addr; the flag register's top three bits
// always read as set, matching the real hardware's unused-bit behavior.
func (c *Controller) Read(addr uint16) uint8 {
	switch addr {
	case FlagRegister:
		return c.flag&0x1F | 0xE0
	case EnableRegister:
		return c.enable
	}
	panic(fmt.Sprintf("interrupts: illegal read from %04X", addr))
}

// Write stores v into the register at addr.
func (c *Controller) Write(addr uint16, v uint8) {
	switch addr {
	case FlagRegister:
		c.flag = v & 0x1F
	case EnableRegister:
		c.enable = v
	default:
		panic(fmt.Sprintf("interrupts: illegal write to %04X", addr))
	}
}

// Service examines the five sources in priority order and, for the first
// one that is both pending and enabled, clears the halt latch
// unconditionally and — only if IME is set — dispatches it: IME is
// cleared, the flag bit is cleared, PC is pushed, and PC jumps to the
// source's vector. Returns whether an interrupt was actually dispatched
// (as opposed to merely waking the CPU from halt).
func (c *Controller) Service(cpu CPU) bool {
	pending := c.flag & c.enable & 0x1F
	if pending == 0 {
		return false
	}

	for f := Flag(0); f < 5; f++ {
		if pending&(1<<f) == 0 {
			continue
		}
		cpu.ClearHalt()
		if !cpu.IMEEnabled() {
			return false
		}
		cpu.DisableIME()
		c.flag &^= 1 << f
		cpu.PushPC()
		cpu.JumpTo(vectors[f])
		return true
	}
	return false
}
