package serial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureOnTransferRequest(t *testing.T) {
	p := New()
	p.SetSB('H')
	p.SetSC(0x81)
	p.SetSB('i')
	p.SetSC(0x81)

	assert.Equal(t, []byte("Hi"), p.Captured())
}

func TestNonTransferWriteDoesNotCapture(t *testing.T) {
	p := New()
	p.SetSB('x')
	p.SetSC(0x01) // external clock, no internal transfer flag

	assert.Empty(t, p.Captured())
}

func TestSCReadbackClearsTransferBit(t *testing.T) {
	p := New()
	p.SetSC(0x81)
	assert.Equal(t, uint8(0x81&0x7F|0x7E), p.SC())
}
