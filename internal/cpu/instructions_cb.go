package cpu

import "fmt"

// buildRotatesShifts fills CBTable 0x00-0x3F: RLC/RL/RRC/RR/SLA/SRA/SWAP/SRL,
// each applied across the 8 regOrder operand slots.
func buildRotatesShifts() {
	type shiftOp struct {
		name string
		fn   func(c *CPU, v uint8) uint8
	}
	ops := [8]shiftOp{
		{"RLC", func(c *CPU, v uint8) uint8 { return c.rotateLeft(v, false) }},
		{"RRC", func(c *CPU, v uint8) uint8 { return c.rotateRight(v, false) }},
		{"RL", func(c *CPU, v uint8) uint8 { return c.rotateLeft(v, true) }},
		{"RR", func(c *CPU, v uint8) uint8 { return c.rotateRight(v, true) }},
		{"SLA", func(c *CPU, v uint8) uint8 { return c.shiftLeftArithmetic(v) }},
		{"SRA", func(c *CPU, v uint8) uint8 { return c.shiftRightArithmetic(v) }},
		{"SWAP", func(c *CPU, v uint8) uint8 { return c.swap(v) }},
		{"SRL", func(c *CPU, v uint8) uint8 { return c.shiftRightLogical(v) }},
	}

	for opIdx, op := range ops {
		op := op
		for srcIdx, src := range regOrder {
			opcode := uint8(opIdx*8 + srcIdx)
			src := src
			cycles := uint8(8)
			if src == RegHL {
				cycles = 16
			}
			setCB(opcode, Instruction{
				Name:   op.name + " " + regNames[srcIdx],
				Length: 2,
				Cycles: cycles,
				Exec: func(c *CPU, _ []uint8) {
					c.write8(src, op.fn(c, c.read8(src)))
				},
			})
		}
	}
}

// buildBitOps fills CBTable 0x40-0xFF: BIT/RES/SET n,r for n=0..7 across the
// 8 regOrder operand slots.
func buildBitOps() {
	for bit := uint8(0); bit < 8; bit++ {
		bit := bit
		for srcIdx, src := range regOrder {
			src := src

			bitOpcode := uint8(0x40 + int(bit)*8 + srcIdx)
			bitCycles := uint8(8)
			if src == RegHL {
				bitCycles = 12
			}
			setCB(bitOpcode, Instruction{
				Name:   fmt.Sprintf("BIT %d, %s", bit, regNames[srcIdx]),
				Length: 2,
				Cycles: bitCycles,
				Exec: func(c *CPU, _ []uint8) {
					c.bitTest(c.read8(src), bit)
				},
			})

			resOpcode := uint8(0x80 + int(bit)*8 + srcIdx)
			rsCycles := uint8(8)
			if src == RegHL {
				rsCycles = 16
			}
			setCB(resOpcode, Instruction{
				Name:   fmt.Sprintf("RES %d, %s", bit, regNames[srcIdx]),
				Length: 2,
				Cycles: rsCycles,
				Exec: func(c *CPU, _ []uint8) {
					c.write8(src, c.read8(src)&^(1<<bit))
				},
			})

			setOpcode := uint8(0xC0 + int(bit)*8 + srcIdx)
			setCB(setOpcode, Instruction{
				Name:   fmt.Sprintf("SET %d, %s", bit, regNames[srcIdx]),
				Length: 2,
				Cycles: rsCycles,
				Exec: func(c *CPU, _ []uint8) {
					c.write8(src, c.read8(src)|(1<<bit))
				},
			})
		}
	}
}
