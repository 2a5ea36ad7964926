// Package cpu implements the Sharp LR35902 instruction interpreter: the
// register file, the two 256-entry opcode dispatch tables and the
// fetch-decode-execute loop. It knows nothing about timers, video or sound —
// those are advanced by the frame kernel using the cycle count Step returns.
package cpu

import "fmt"

// ClockSpeed is the DMG master clock frequency in Hz.
const ClockSpeed = 4194304

// Bus is the memory façade the CPU fetches opcodes and operands from, and
// through which it reads and writes during instruction execution. Supplied
// by internal/mmu; kept as an interface here so the CPU package never
// imports mmu (mmu imports nothing from cpu).
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, v uint8)
}

// CPU is the Sharp LR35902 core. It holds no reference to any peripheral
// besides the memory bus: timers, PPU, APU and the interrupt controller are
// all driven externally by the frame kernel.
type CPU struct {
	Registers

	// IME is the interrupt master enable flip-flop.
	IME bool
	// Halted is the halt latch; while set, Step is a 4-cycle no-op until
	// the interrupt controller clears it.
	Halted bool

	// Debug enables the "LD B,B" breakpoint convention some test ROMs use:
	// Step sets Breakpoint when it executes opcode 0x40. Unimplemented
	// opcodes panic with a full register dump whether or not Debug is set.
	Debug      bool
	Breakpoint bool

	bus         Bus
	extraCycles uint8
}

// New returns a CPU wired to the given bus. Callers must follow up with
// either Reset (no boot ROM) or leave PC/SP/registers at zero so that the
// boot ROM overlay can run from 0x0000.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Reset puts the CPU into the post-boot-ROM state documented in spec.md §8:
// used when no boot ROM image is supplied.
func (c *CPU) Reset() {
	c.PC = 0x0100
	c.SP = 0xFFFE
	c.A, c.F = 0x01, 0xB0
	c.SetBC(0x0013)
	c.SetDE(0x00D8)
	c.SetHL(0x014D)
	c.IME = false
	c.Halted = false
}

// ResetForBootROM zeroes the register file so execution starts at the boot
// ROM's entry point, 0x0000.
func (c *CPU) ResetForBootROM() {
	c.Registers = Registers{}
	c.IME = false
	c.Halted = false
}

// read8 returns the value of the operand slot named by id; RegHL reads
// through the bus at the address in HL.
func (c *CPU) read8(id RegID) uint8 {
	switch id {
	case RegA:
		return c.A
	case RegB:
		return c.B
	case RegC:
		return c.C
	case RegD:
		return c.D
	case RegE:
		return c.E
	case RegH:
		return c.H
	case RegL:
		return c.L
	case RegHL:
		return c.bus.Read(c.HL())
	}
	panic(fmt.Sprintf("cpu: invalid register id %d", id))
}

// write8 stores v into the operand slot named by id; RegHL writes through
// the bus at the address in HL.
func (c *CPU) write8(id RegID, v uint8) {
	switch id {
	case RegA:
		c.A = v
	case RegB:
		c.B = v
	case RegC:
		c.C = v
	case RegD:
		c.D = v
	case RegE:
		c.E = v
	case RegH:
		c.H = v
	case RegL:
		c.L = v
	case RegHL:
		c.bus.Write(c.HL(), v)
	default:
		panic(fmt.Sprintf("cpu: invalid register id %d", id))
	}
}

func (c *CPU) push16(v uint16) {
	c.SP--
	c.bus.Write(c.SP, uint8(v>>8))
	c.SP--
	c.bus.Write(c.SP, uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := c.bus.Read(c.SP)
	c.SP++
	hi := c.bus.Read(c.SP)
	c.SP++
	return uint16(hi)<<8 | uint16(lo)
}

// Step executes the instruction at PC and returns the number of clock
// cycles it took. If the halt latch is set, it returns a fixed 4 cycles and
// does not touch PC. Otherwise it fetches the opcode (and, for 0xCB, the
// extended opcode), reads up to two immediate operand bytes, advances PC
// past all of them, then runs the handler — matching spec.md §4.1's
// "PC advanced before the handler runs" rule so relative/absolute jumps can
// overwrite the post-advance PC directly.
func (c *CPU) Step() uint8 {
	if c.Halted {
		return 4
	}

	opcode := c.bus.Read(c.PC)
	c.PC++

	if opcode == 0xCB {
		cbOp := c.bus.Read(c.PC)
		c.PC++
		ins := CBTable[cbOp]
		if ins.Exec == nil {
			c.fatalOpcode(0xCB, cbOp)
		}
		ins.Exec(c, nil)
		return ins.Cycles
	}

	ins := Primary[opcode]
	if ins.Exec == nil {
		c.fatalOpcode(opcode, 0)
	}

	var ops [2]uint8
	operandLen := ins.Length - 1
	for i := uint8(0); i < operandLen; i++ {
		ops[i] = c.bus.Read(c.PC)
		c.PC++
	}

	if opcode == 0x40 && c.Debug { // LD B,B — conventional debugger breakpoint
		c.Breakpoint = true
	}

	c.extraCycles = 0
	ins.Exec(c, ops[:operandLen])
	return ins.Cycles + c.extraCycles
}

// addExtraCycles is called by conditional control-transfer handlers
// (JR/JP/CALL/RET) to add the additional cycles hardware spends when the
// branch is actually taken; the table's Cycles field always holds the
// not-taken (minimum) cost.
func (c *CPU) addExtraCycles(n uint8) {
	c.extraCycles = n
}

// IMEEnabled, DisableIME, ClearHalt, PushPC and JumpTo satisfy
// interrupts.CPU, letting the interrupt controller service a pending
// interrupt without importing the cpu package's internals.
func (c *CPU) IMEEnabled() bool { return c.IME }
func (c *CPU) DisableIME()      { c.IME = false }
func (c *CPU) ClearHalt()       { c.Halted = false }
func (c *CPU) PushPC()          { c.push16(c.PC) }
func (c *CPU) JumpTo(addr uint16) { c.PC = addr }

func (c *CPU) fatalOpcode(opcode, cbOpcode uint8) {
	if cbOpcode != 0 || opcode == 0xCB {
		panic(fmt.Sprintf(
			"cpu: unimplemented CB opcode 0x%02X at PC=0x%04X\n%s",
			cbOpcode, c.PC-1, c.dump()))
	}
	panic(fmt.Sprintf(
		"cpu: unimplemented opcode 0x%02X at PC=0x%04X\n%s",
		opcode, c.PC-1, c.dump()))
}

func (c *CPU) dump() string {
	return fmt.Sprintf(
		"A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X IME=%v HALT=%v",
		c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.PC, c.IME, c.Halted)
}
