package cpu

// jumpRelative adds the signed operand to PC. Because Step has already
// advanced PC past the operand byte before calling the handler, this lands
// exactly where spec.md's worked examples expect (e.g. JR n at 0xFF00 with
// operand 0xFD lands at 0xFEFD).
func (c *CPU) jumpRelative(operand uint8) {
	c.PC = uint16(int32(c.PC) + int32(signedOffset(operand)))
}

func (c *CPU) jumpAbsolute(addr uint16) {
	c.PC = addr
}

func (c *CPU) call(addr uint16) {
	c.push16(c.PC)
	c.PC = addr
}

func (c *CPU) ret() {
	c.PC = c.pop16()
}

func (c *CPU) retInterrupt() {
	c.ret()
	c.IME = true
}

func (c *CPU) rst(vector uint16) {
	c.push16(c.PC)
	c.PC = vector
}

// jumpRelativeIf takes the relative jump only if cond holds, adding the
// hardware's extra 4 cycles when it does.
func (c *CPU) jumpRelativeIf(cond bool, operand uint8) {
	if cond {
		c.jumpRelative(operand)
		c.addExtraCycles(4)
	}
}

func (c *CPU) jumpAbsoluteIf(cond bool, addr uint16) {
	if cond {
		c.jumpAbsolute(addr)
		c.addExtraCycles(4)
	}
}

func (c *CPU) callIf(cond bool, addr uint16) {
	if cond {
		c.call(addr)
		c.addExtraCycles(12)
	}
}

func (c *CPU) retIf(cond bool) {
	if cond {
		c.ret()
		c.addExtraCycles(12)
	}
}
