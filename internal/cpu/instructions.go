package cpu

import "fmt"

// Instruction is one entry of a dispatch table: a name for diagnostics, the
// total instruction length in bytes (opcode + operands), its tabulated
// cycle cost (the not-taken cost for conditional control transfers — see
// CPU.addExtraCycles), and the handler itself. Handlers take the whole CPU
// so they can reach memory through its bus, plus the instruction's operand
// bytes (zero, one or two of them, already fetched by Step).
type Instruction struct {
	Name   string
	Length uint8
	Cycles uint8
	Exec   func(c *CPU, operands []uint8)
}

// Primary and CBTable are the two fixed-size opcode dispatch tables. A zero
// Instruction (nil Exec) marks an opcode the real hardware never defines;
// Step treats encountering one as a fatal unimplemented-opcode condition.
var (
	Primary [256]Instruction
	CBTable [256]Instruction
)

// regOrder is the canonical encoding used throughout the LR35902 opcode map
// for the 3-bit register field: B, C, D, E, H, L, (HL), A.
var regOrder = [8]RegID{RegB, RegC, RegD, RegE, RegH, RegL, RegHL, RegA}
var regNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// primaryWrites and cbWrites count how many times each table slot has been
// assigned during construction, via setPrimary/setCB. A slot written more
// than once means two builders claimed the same opcode.
var primaryWrites, cbWrites [256]uint8

func setPrimary(opcode uint8, ins Instruction) {
	primaryWrites[opcode]++
	Primary[opcode] = ins
}

func setCB(opcode uint8, ins Instruction) {
	cbWrites[opcode]++
	CBTable[opcode] = ins
}

func init() {
	buildLoads()
	buildALU()
	buildIrregularPrimary()
	buildRotatesShifts()
	buildBitOps()

	assertNoDuplicates()
}

// buildLoads fills in the 0x40-0x7F block: LD r,r' for every pair of
// operand slots, except 0x76 which is HALT rather than LD (HL),(HL).
func buildLoads() {
	for dstIdx, dst := range regOrder {
		for srcIdx, src := range regOrder {
			opcode := uint8(0x40 + dstIdx*8 + srcIdx)
			if opcode == 0x76 {
				continue // HALT, set in buildIrregularPrimary
			}
			dst, src := dst, src
			cycles := uint8(4)
			if dst == RegHL || src == RegHL {
				cycles = 8
			}
			setPrimary(opcode, Instruction{
				Name:   fmt.Sprintf("LD %s, %s", regNames[dstIdx], regNames[srcIdx]),
				Length: 1,
				Cycles: cycles,
				Exec: func(c *CPU, _ []uint8) {
					c.write8(dst, c.read8(src))
				},
			})
		}
	}
}

// buildALU fills in the 0x80-0xBF block (ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,r)
// and the matching 0xC6/CE/D6/DE/E6/EE/F6/FE immediate-operand forms.
func buildALU() {
	type aluOp struct {
		name string
		fn   func(c *CPU, v uint8)
	}
	ops := [8]aluOp{
		{"ADD", func(c *CPU, v uint8) { c.add8(v, false) }},
		{"ADC", func(c *CPU, v uint8) { c.add8(v, true) }},
		{"SUB", func(c *CPU, v uint8) { c.sub8(v, false, false) }},
		{"SBC", func(c *CPU, v uint8) { c.sub8(v, true, false) }},
		{"AND", func(c *CPU, v uint8) { c.and8(v) }},
		{"XOR", func(c *CPU, v uint8) { c.xor8(v) }},
		{"OR", func(c *CPU, v uint8) { c.or8(v) }},
		{"CP", func(c *CPU, v uint8) { c.sub8(v, false, true) }},
	}

	for opIdx, op := range ops {
		op := op
		for srcIdx, src := range regOrder {
			opcode := uint8(0x80 + opIdx*8 + srcIdx)
			src := src
			cycles := uint8(4)
			if src == RegHL {
				cycles = 8
			}
			mnemonic := op.name + " A, " + regNames[srcIdx]
			setPrimary(opcode, Instruction{
				Name:   mnemonic,
				Length: 1,
				Cycles: cycles,
				Exec: func(c *CPU, _ []uint8) {
					op.fn(c, c.read8(src))
				},
			})
		}

		// immediate form: 0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE
		immOpcode := uint8(0xC6 + opIdx*8)
		setPrimary(immOpcode, Instruction{
			Name:   op.name + " A, d8",
			Length: 2,
			Cycles: 8,
			Exec: func(c *CPU, ops []uint8) {
				op.fn(c, ops[0])
			},
		})
	}
}

// assertNoDuplicates panics if any builder above wrote the same opcode
// slot twice. A second write silently overwrites the first in Primary or
// CBTable, so detection has to happen at write time (via setPrimary/setCB)
// rather than by walking the finished tables.
func assertNoDuplicates() {
	for op := 0; op < 256; op++ {
		if primaryWrites[op] > 1 {
			panic(fmt.Sprintf("cpu: opcode 0x%02X registered %d times in Primary", op, primaryWrites[op]))
		}
		if cbWrites[op] > 1 {
			panic(fmt.Sprintf("cpu: opcode 0x%02X registered %d times in CBTable", op, cbWrites[op]))
		}
	}
}
