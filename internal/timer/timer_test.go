package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDIVIncrementsWithCycles(t *testing.T) {
	tm := New()
	tm.Step(255)
	assert.Equal(t, uint8(0), tm.DIV())
	tm.Step(1)
	assert.Equal(t, uint8(1), tm.DIV(), "DIV is the high byte of a 16-bit counter")
}

func TestResetDIVZeroesCounter(t *testing.T) {
	tm := New()
	tm.Step(255)
	tm.Step(45) // 300 cycles in all
	assert.NotEqual(t, uint8(0), tm.DIV())
	tm.ResetDIV()
	assert.Equal(t, uint8(0), tm.DIV())
}

func TestTIMADisabledByDefault(t *testing.T) {
	tm := New()
	overflowed := false
	for i := 0; i < 40; i++ { // 10000 cycles in all
		if tm.Step(250) {
			overflowed = true
		}
	}
	assert.False(t, overflowed)
	assert.Equal(t, uint8(0), tm.TIMA())
}

func TestTIMAIncrementsAtSelectedRate(t *testing.T) {
	tm := New()
	tm.SetTAC(0x05) // enabled, rate index 1 -> period 16
	tm.Step(16)
	assert.Equal(t, uint8(1), tm.TIMA())
	tm.Step(48)
	assert.Equal(t, uint8(4), tm.TIMA())
}

func TestTIMAOverflowReloadsFromTMA(t *testing.T) {
	tm := New()
	tm.SetTMA(0x42)
	tm.SetTAC(0x05)
	tm.SetTIMA(0xFF)

	overflowed := tm.Step(16)

	assert.True(t, overflowed)
	assert.Equal(t, uint8(0x42), tm.TIMA())
}

func TestTIMAHandlesMultipleBoundariesInOneStep(t *testing.T) {
	tm := New()
	tm.SetTAC(0x05) // period 16
	overflowed := tm.Step(16 * 3)
	assert.False(t, overflowed)
	assert.Equal(t, uint8(3), tm.TIMA())
}

func TestTACReadMasksUnusedBits(t *testing.T) {
	tm := New()
	tm.SetTAC(0xFF)
	assert.Equal(t, uint8(0xFF), tm.TAC())
	tm.SetTAC(0x00)
	assert.Equal(t, uint8(0xF8), tm.TAC())
}
