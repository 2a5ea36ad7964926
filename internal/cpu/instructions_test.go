package cpu

import "testing"

// TestTablesFullyPopulated checks the completeness property from spec.md's
// Testable Properties: every opcode real hardware defines has a non-nil
// handler, and the small set of undefined opcodes are left alone.
func TestTablesFullyPopulated(t *testing.T) {
	undefined := map[uint8]bool{
		0xD3: true, 0xDB: true, 0xDD: true,
		0xE3: true, 0xE4: true, 0xEB: true, 0xEC: true, 0xED: true,
		0xF4: true, 0xFC: true, 0xFD: true,
		0xCB: true, // handled specially by Step, never indexed in Primary
	}
	for op := 0; op < 256; op++ {
		opcode := uint8(op)
		ins := Primary[opcode]
		if undefined[opcode] {
			if ins.Exec != nil {
				t.Errorf("opcode 0x%02X: expected undefined, got %q", opcode, ins.Name)
			}
			continue
		}
		if ins.Exec == nil {
			t.Errorf("opcode 0x%02X: no handler registered", opcode)
		}
		if ins.Length == 0 {
			t.Errorf("opcode 0x%02X (%s): zero length", opcode, ins.Name)
		}
	}

	for op := 0; op < 256; op++ {
		opcode := uint8(op)
		if CBTable[opcode].Exec == nil {
			t.Errorf("CB opcode 0x%02X: no handler registered", opcode)
		}
	}
}

// TestAssertNoDuplicatesCatchesDoubleRegistration exercises the
// construction-time duplicate check directly: a fresh primary write-count
// array with one opcode registered twice must panic.
func TestAssertNoDuplicatesCatchesDoubleRegistration(t *testing.T) {
	saved := primaryWrites
	defer func() { primaryWrites = saved }()

	primaryWrites = [256]uint8{}
	primaryWrites[0x42] = 2

	defer func() {
		if recover() == nil {
			t.Fatalf("expected assertNoDuplicates to panic on a doubly-registered opcode")
		}
	}()
	assertNoDuplicates()
}

func newTestCPU() (*CPU, *fakeBus) {
	bus := newFakeBus()
	c := New(bus)
	c.Reset()
	return c, bus
}

type fakeBus struct {
	mem [0x10000]uint8
}

func newFakeBus() *fakeBus { return &fakeBus{} }

func (b *fakeBus) Read(addr uint16) uint8    { return b.mem[addr] }
func (b *fakeBus) Write(addr uint16, v uint8) { b.mem[addr] = v }

func TestResetState(t *testing.T) {
	c, _ := newTestCPU()
	if c.PC != 0x0100 || c.SP != 0xFFFE {
		t.Fatalf("unexpected PC/SP after Reset: PC=%04X SP=%04X", c.PC, c.SP)
	}
	if c.AF() != 0x01B0 || c.BC() != 0x0013 || c.DE() != 0x00D8 || c.HL() != 0x014D {
		t.Fatalf("unexpected register state after Reset: AF=%04X BC=%04X DE=%04X HL=%04X",
			c.AF(), c.BC(), c.DE(), c.HL())
	}
	if c.IME || c.Halted {
		t.Fatalf("expected IME and Halted false after Reset")
	}
}

func TestPushPopRoundTrip(t *testing.T) {
	c, _ := newTestCPU()
	c.SetBC(0xBEEF)
	c.push16(c.BC())
	got := c.pop16()
	if got != 0xBEEF {
		t.Fatalf("push/pop round trip: got %04X, want BEEF", got)
	}
}

func TestIncDecPreserveCarry(t *testing.T) {
	c, _ := newTestCPU()
	c.setFlag(FlagC, true)
	c.B = 0xFF
	c.B = c.inc8(c.B)
	if c.B != 0x00 {
		t.Fatalf("INC wraparound: got %02X", c.B)
	}
	if !c.flag(FlagC) {
		t.Fatalf("INC must preserve carry flag")
	}
	if !c.flag(FlagZ) || c.flag(FlagN) {
		t.Fatalf("INC flags wrong: Z=%v N=%v", c.flag(FlagZ), c.flag(FlagN))
	}

	c.B = c.dec8(c.B)
	if c.B != 0xFF {
		t.Fatalf("DEC wraparound: got %02X", c.B)
	}
	if !c.flag(FlagC) {
		t.Fatalf("DEC must preserve carry flag")
	}
	if c.flag(FlagZ) || !c.flag(FlagN) {
		t.Fatalf("DEC flags wrong: Z=%v N=%v", c.flag(FlagZ), c.flag(FlagN))
	}
}

func TestJRSignedOffset(t *testing.T) {
	cases := []struct {
		startPC uint16
		operand uint8
		wantPC  uint16
	}{
		{0xFF00, 0xFD, 0xFEFD}, // -3
		{0x0100, 0x02, 0x0102}, // +2
		{0x0050, 0x00, 0x0050}, // zero offset
		{0x8000, 0x80, 0x7F80}, // -128
	}
	for _, tc := range cases {
		c, bus := newTestCPU()
		c.PC = tc.startPC
		bus.mem[tc.startPC] = 0x18 // JR r8
		bus.mem[tc.startPC+1] = tc.operand
		c.Step()
		if c.PC != tc.wantPC {
			t.Errorf("JR from %04X by %02X: got PC=%04X, want %04X",
				tc.startPC, tc.operand, c.PC, tc.wantPC)
		}
	}
}

func TestConditionalCallTakenVsNotTaken(t *testing.T) {
	c, bus := newTestCPU()
	c.PC = 0x0200
	bus.mem[0x0200] = 0xC4 // CALL NZ, a16
	bus.mem[0x0201] = 0x00
	bus.mem[0x0202] = 0x03
	c.setFlag(FlagZ, true) // condition false: not taken
	cycles := c.Step()
	if cycles != 12 {
		t.Fatalf("CALL NZ not taken: got %d cycles, want 12", cycles)
	}
	if c.PC != 0x0203 {
		t.Fatalf("CALL NZ not taken: PC should advance past operands, got %04X", c.PC)
	}

	c2, bus2 := newTestCPU()
	c2.PC = 0x0200
	bus2.mem[0x0200] = 0xC4
	bus2.mem[0x0201] = 0x00
	bus2.mem[0x0202] = 0x03
	c2.setFlag(FlagZ, false) // condition true: taken
	cycles2 := c2.Step()
	if cycles2 != 24 {
		t.Fatalf("CALL NZ taken: got %d cycles, want 24", cycles2)
	}
	if c2.PC != 0x0300 {
		t.Fatalf("CALL NZ taken: PC should jump to target, got %04X", c2.PC)
	}
}

func TestRotateCarryExitBit(t *testing.T) {
	c, _ := newTestCPU()
	result := c.rotateLeft(0x80, false)
	if result != 0x01 || !c.flag(FlagC) {
		t.Fatalf("RLC 0x80: got %02X carry=%v, want 01 carry=true", result, c.flag(FlagC))
	}
	result = c.rotateRight(0x01, false)
	if result != 0x80 || !c.flag(FlagC) {
		t.Fatalf("RRC 0x01: got %02X carry=%v, want 80 carry=true", result, c.flag(FlagC))
	}
}

func TestSignedOffsetRoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := uint8(i)
		got := signedOffset(b)
		if b < 0x80 && int16(b) != got {
			t.Errorf("signedOffset(%#x) = %d, want %d", b, got, int16(b))
		}
		if b >= 0x80 && got >= 0 {
			t.Errorf("signedOffset(%#x) = %d, want negative", b, got)
		}
	}
}
