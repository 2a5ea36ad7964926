package cpu

import "encoding/binary"

// buildIrregularPrimary fills in every opcode that does not follow one of
// the two regular LD-block / ALU-block patterns handled by buildLoads and
// buildALU: the 0x00-0x3F preamble, HALT, and the 0xC0-0xFF control-transfer
// and stack block. Undefined opcodes (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB,
// 0xEC, 0xED, 0xF4, 0xFC, 0xFD) are left at their zero value on purpose —
// real hardware never encodes them, and Step treats an unpopulated slot as
// a fatal unimplemented-opcode condition.
func buildIrregularPrimary() {
	add := func(opcode uint8, name string, length, cycles uint8, fn func(c *CPU, ops []uint8)) {
		setPrimary(opcode, Instruction{Name: name, Length: length, Cycles: cycles, Exec: fn})
	}

	add(0x00, "NOP", 1, 4, func(c *CPU, ops []uint8) {})
	add(0x01, "LD BC, d16", 3, 12, func(c *CPU, ops []uint8) { c.SetBC(le16(ops)) })
	add(0x02, "LD (BC), A", 1, 8, func(c *CPU, ops []uint8) { c.bus.Write(c.BC(), c.A) })
	add(0x03, "INC BC", 1, 8, func(c *CPU, ops []uint8) { c.SetBC(c.BC() + 1) })
	add(0x04, "INC B", 1, 4, func(c *CPU, ops []uint8) { c.B = c.inc8(c.B) })
	add(0x05, "DEC B", 1, 4, func(c *CPU, ops []uint8) { c.B = c.dec8(c.B) })
	add(0x06, "LD B, d8", 2, 8, func(c *CPU, ops []uint8) { c.B = ops[0] })
	add(0x07, "RLCA", 1, 4, func(c *CPU, ops []uint8) { c.A = c.rotateLeft(c.A, false); c.setFlag(FlagZ, false) })
	add(0x08, "LD (a16), SP", 3, 20, func(c *CPU, ops []uint8) {
		addr := le16(ops)
		c.bus.Write(addr, uint8(c.SP))
		c.bus.Write(addr+1, uint8(c.SP>>8))
	})
	add(0x09, "ADD HL, BC", 1, 8, func(c *CPU, ops []uint8) { c.addHL(c.BC()) })
	add(0x0A, "LD A, (BC)", 1, 8, func(c *CPU, ops []uint8) { c.A = c.bus.Read(c.BC()) })
	add(0x0B, "DEC BC", 1, 8, func(c *CPU, ops []uint8) { c.SetBC(c.BC() - 1) })
	add(0x0C, "INC C", 1, 4, func(c *CPU, ops []uint8) { c.C = c.inc8(c.C) })
	add(0x0D, "DEC C", 1, 4, func(c *CPU, ops []uint8) { c.C = c.dec8(c.C) })
	add(0x0E, "LD C, d8", 2, 8, func(c *CPU, ops []uint8) { c.C = ops[0] })
	add(0x0F, "RRCA", 1, 4, func(c *CPU, ops []uint8) { c.A = c.rotateRight(c.A, false); c.setFlag(FlagZ, false) })

	add(0x10, "STOP", 2, 4, func(c *CPU, ops []uint8) {
		// The payload byte is always consumed (PC already advanced past
		// it by Step); STOP's low-power halt semantics are not otherwise
		// modeled, per spec.md §4.1.
	})
	add(0x11, "LD DE, d16", 3, 12, func(c *CPU, ops []uint8) { c.SetDE(le16(ops)) })
	add(0x12, "LD (DE), A", 1, 8, func(c *CPU, ops []uint8) { c.bus.Write(c.DE(), c.A) })
	add(0x13, "INC DE", 1, 8, func(c *CPU, ops []uint8) { c.SetDE(c.DE() + 1) })
	add(0x14, "INC D", 1, 4, func(c *CPU, ops []uint8) { c.D = c.inc8(c.D) })
	add(0x15, "DEC D", 1, 4, func(c *CPU, ops []uint8) { c.D = c.dec8(c.D) })
	add(0x16, "LD D, d8", 2, 8, func(c *CPU, ops []uint8) { c.D = ops[0] })
	add(0x17, "RLA", 1, 4, func(c *CPU, ops []uint8) { c.A = c.rotateLeft(c.A, true); c.setFlag(FlagZ, false) })
	add(0x18, "JR r8", 2, 12, func(c *CPU, ops []uint8) { c.jumpRelative(ops[0]) })
	add(0x19, "ADD HL, DE", 1, 8, func(c *CPU, ops []uint8) { c.addHL(c.DE()) })
	add(0x1A, "LD A, (DE)", 1, 8, func(c *CPU, ops []uint8) { c.A = c.bus.Read(c.DE()) })
	add(0x1B, "DEC DE", 1, 8, func(c *CPU, ops []uint8) { c.SetDE(c.DE() - 1) })
	add(0x1C, "INC E", 1, 4, func(c *CPU, ops []uint8) { c.E = c.inc8(c.E) })
	add(0x1D, "DEC E", 1, 4, func(c *CPU, ops []uint8) { c.E = c.dec8(c.E) })
	add(0x1E, "LD E, d8", 2, 8, func(c *CPU, ops []uint8) { c.E = ops[0] })
	add(0x1F, "RRA", 1, 4, func(c *CPU, ops []uint8) { c.A = c.rotateRight(c.A, true); c.setFlag(FlagZ, false) })

	add(0x20, "JR NZ, r8", 2, 8, func(c *CPU, ops []uint8) { c.jumpRelativeIf(!c.flag(FlagZ), ops[0]) })
	add(0x21, "LD HL, d16", 3, 12, func(c *CPU, ops []uint8) { c.SetHL(le16(ops)) })
	add(0x22, "LD (HL+), A", 1, 8, func(c *CPU, ops []uint8) {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() + 1)
	})
	add(0x23, "INC HL", 1, 8, func(c *CPU, ops []uint8) { c.SetHL(c.HL() + 1) })
	add(0x24, "INC H", 1, 4, func(c *CPU, ops []uint8) { c.H = c.inc8(c.H) })
	add(0x25, "DEC H", 1, 4, func(c *CPU, ops []uint8) { c.H = c.dec8(c.H) })
	add(0x26, "LD H, d8", 2, 8, func(c *CPU, ops []uint8) { c.H = ops[0] })
	add(0x27, "DAA", 1, 4, func(c *CPU, ops []uint8) { c.daa() })
	add(0x28, "JR Z, r8", 2, 8, func(c *CPU, ops []uint8) { c.jumpRelativeIf(c.flag(FlagZ), ops[0]) })
	add(0x29, "ADD HL, HL", 1, 8, func(c *CPU, ops []uint8) { c.addHL(c.HL()) })
	add(0x2A, "LD A, (HL+)", 1, 8, func(c *CPU, ops []uint8) {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() + 1)
	})
	add(0x2B, "DEC HL", 1, 8, func(c *CPU, ops []uint8) { c.SetHL(c.HL() - 1) })
	add(0x2C, "INC L", 1, 4, func(c *CPU, ops []uint8) { c.L = c.inc8(c.L) })
	add(0x2D, "DEC L", 1, 4, func(c *CPU, ops []uint8) { c.L = c.dec8(c.L) })
	add(0x2E, "LD L, d8", 2, 8, func(c *CPU, ops []uint8) { c.L = ops[0] })
	add(0x2F, "CPL", 1, 4, func(c *CPU, ops []uint8) {
		c.A = ^c.A
		c.setFlag(FlagN, true)
		c.setFlag(FlagH, true)
	})

	add(0x30, "JR NC, r8", 2, 8, func(c *CPU, ops []uint8) { c.jumpRelativeIf(!c.flag(FlagC), ops[0]) })
	add(0x31, "LD SP, d16", 3, 12, func(c *CPU, ops []uint8) { c.SP = le16(ops) })
	add(0x32, "LD (HL-), A", 1, 8, func(c *CPU, ops []uint8) {
		c.bus.Write(c.HL(), c.A)
		c.SetHL(c.HL() - 1)
	})
	add(0x33, "INC SP", 1, 8, func(c *CPU, ops []uint8) { c.SP++ })
	add(0x34, "INC (HL)", 1, 12, func(c *CPU, ops []uint8) { c.bus.Write(c.HL(), c.inc8(c.bus.Read(c.HL()))) })
	add(0x35, "DEC (HL)", 1, 12, func(c *CPU, ops []uint8) { c.bus.Write(c.HL(), c.dec8(c.bus.Read(c.HL()))) })
	add(0x36, "LD (HL), d8", 2, 12, func(c *CPU, ops []uint8) { c.bus.Write(c.HL(), ops[0]) })
	add(0x37, "SCF", 1, 4, func(c *CPU, ops []uint8) {
		c.setFlag(FlagC, true)
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
	})
	add(0x38, "JR C, r8", 2, 8, func(c *CPU, ops []uint8) { c.jumpRelativeIf(c.flag(FlagC), ops[0]) })
	add(0x39, "ADD HL, SP", 1, 8, func(c *CPU, ops []uint8) { c.addHL(c.SP) })
	add(0x3A, "LD A, (HL-)", 1, 8, func(c *CPU, ops []uint8) {
		c.A = c.bus.Read(c.HL())
		c.SetHL(c.HL() - 1)
	})
	add(0x3B, "DEC SP", 1, 8, func(c *CPU, ops []uint8) { c.SP-- })
	add(0x3C, "INC A", 1, 4, func(c *CPU, ops []uint8) { c.A = c.inc8(c.A) })
	add(0x3D, "DEC A", 1, 4, func(c *CPU, ops []uint8) { c.A = c.dec8(c.A) })
	add(0x3E, "LD A, d8", 2, 8, func(c *CPU, ops []uint8) { c.A = ops[0] })
	add(0x3F, "CCF", 1, 4, func(c *CPU, ops []uint8) {
		c.setFlag(FlagC, !c.flag(FlagC))
		c.setFlag(FlagN, false)
		c.setFlag(FlagH, false)
	})

	add(0x76, "HALT", 1, 4, func(c *CPU, ops []uint8) { c.Halted = true })

	add(0xC0, "RET NZ", 1, 8, func(c *CPU, ops []uint8) { c.retIf(!c.flag(FlagZ)) })
	add(0xC1, "POP BC", 1, 12, func(c *CPU, ops []uint8) { c.SetBC(c.pop16()) })
	add(0xC2, "JP NZ, a16", 3, 12, func(c *CPU, ops []uint8) { c.jumpAbsoluteIf(!c.flag(FlagZ), le16(ops)) })
	add(0xC3, "JP a16", 3, 16, func(c *CPU, ops []uint8) { c.jumpAbsolute(le16(ops)) })
	add(0xC4, "CALL NZ, a16", 3, 12, func(c *CPU, ops []uint8) { c.callIf(!c.flag(FlagZ), le16(ops)) })
	add(0xC5, "PUSH BC", 1, 16, func(c *CPU, ops []uint8) { c.push16(c.BC()) })
	add(0xC7, "RST 00H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x00) })
	add(0xC8, "RET Z", 1, 8, func(c *CPU, ops []uint8) { c.retIf(c.flag(FlagZ)) })
	add(0xC9, "RET", 1, 16, func(c *CPU, ops []uint8) { c.ret() })
	add(0xCA, "JP Z, a16", 3, 12, func(c *CPU, ops []uint8) { c.jumpAbsoluteIf(c.flag(FlagZ), le16(ops)) })
	add(0xCC, "CALL Z, a16", 3, 12, func(c *CPU, ops []uint8) { c.callIf(c.flag(FlagZ), le16(ops)) })
	add(0xCD, "CALL a16", 3, 24, func(c *CPU, ops []uint8) { c.call(le16(ops)) })
	add(0xCF, "RST 08H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x08) })

	add(0xD0, "RET NC", 1, 8, func(c *CPU, ops []uint8) { c.retIf(!c.flag(FlagC)) })
	add(0xD1, "POP DE", 1, 12, func(c *CPU, ops []uint8) { c.SetDE(c.pop16()) })
	add(0xD2, "JP NC, a16", 3, 12, func(c *CPU, ops []uint8) { c.jumpAbsoluteIf(!c.flag(FlagC), le16(ops)) })
	add(0xD4, "CALL NC, a16", 3, 12, func(c *CPU, ops []uint8) { c.callIf(!c.flag(FlagC), le16(ops)) })
	add(0xD5, "PUSH DE", 1, 16, func(c *CPU, ops []uint8) { c.push16(c.DE()) })
	add(0xD7, "RST 10H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x10) })
	add(0xD8, "RET C", 1, 8, func(c *CPU, ops []uint8) { c.retIf(c.flag(FlagC)) })
	add(0xD9, "RETI", 1, 16, func(c *CPU, ops []uint8) { c.retInterrupt() })
	add(0xDA, "JP C, a16", 3, 12, func(c *CPU, ops []uint8) { c.jumpAbsoluteIf(c.flag(FlagC), le16(ops)) })
	add(0xDC, "CALL C, a16", 3, 12, func(c *CPU, ops []uint8) { c.callIf(c.flag(FlagC), le16(ops)) })
	add(0xDF, "RST 18H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x18) })

	add(0xE0, "LDH (a8), A", 2, 12, func(c *CPU, ops []uint8) { c.bus.Write(0xFF00+uint16(ops[0]), c.A) })
	add(0xE1, "POP HL", 1, 12, func(c *CPU, ops []uint8) { c.SetHL(c.pop16()) })
	add(0xE2, "LD (C), A", 1, 8, func(c *CPU, ops []uint8) { c.bus.Write(0xFF00+uint16(c.C), c.A) })
	add(0xE5, "PUSH HL", 1, 16, func(c *CPU, ops []uint8) { c.push16(c.HL()) })
	add(0xE7, "RST 20H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x20) })
	add(0xE8, "ADD SP, r8", 2, 16, func(c *CPU, ops []uint8) { c.SP = c.addSPSigned(ops[0]) })
	add(0xE9, "JP (HL)", 1, 4, func(c *CPU, ops []uint8) { c.jumpAbsolute(c.HL()) })
	add(0xEA, "LD (a16), A", 3, 16, func(c *CPU, ops []uint8) { c.bus.Write(le16(ops), c.A) })
	add(0xEF, "RST 28H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x28) })

	add(0xF0, "LDH A, (a8)", 2, 12, func(c *CPU, ops []uint8) { c.A = c.bus.Read(0xFF00 + uint16(ops[0])) })
	add(0xF1, "POP AF", 1, 12, func(c *CPU, ops []uint8) { c.SetAF(c.pop16()) })
	add(0xF2, "LD A, (C)", 1, 8, func(c *CPU, ops []uint8) { c.A = c.bus.Read(0xFF00 + uint16(c.C)) })
	add(0xF3, "DI", 1, 4, func(c *CPU, ops []uint8) { c.IME = false })
	add(0xF5, "PUSH AF", 1, 16, func(c *CPU, ops []uint8) { c.push16(c.AF()) })
	add(0xF7, "RST 30H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x30) })
	add(0xF8, "LD HL, SP+r8", 2, 12, func(c *CPU, ops []uint8) { c.SetHL(c.addSPSigned(ops[0])) })
	add(0xF9, "LD SP, HL", 1, 8, func(c *CPU, ops []uint8) { c.SP = c.HL() })
	add(0xFA, "LD A, (a16)", 3, 16, func(c *CPU, ops []uint8) { c.A = c.bus.Read(le16(ops)) })
	add(0xFB, "EI", 1, 4, func(c *CPU, ops []uint8) { c.IME = true })
	add(0xFF, "RST 38H", 1, 16, func(c *CPU, ops []uint8) { c.rst(0x38) })
}

func le16(b []uint8) uint16 {
	return binary.LittleEndian.Uint16([]byte{b[0], b[1]})
}
