// Package serial implements a minimal capture-only stand-in for the DMG
// link cable: enough to read back text written by compliance ROMs (see
// SPEC_FULL.md §C), but no real transfer and no serial interrupt. This is
// a deliberate simplification, not partial emulation of real hardware.
package serial

// Port holds the two serial registers, SB (0xFF01) and SC (0xFF02), and
// accumulates every byte the guest "transmits" by writing 0x81 to SC.
type Port struct {
	sb  uint8
	sc  uint8
	log []byte
}

// New returns an empty serial port.
func New() *Port { return &Port{} }

// SB returns the current value of the serial transfer data register.
func (p *Port) SB() uint8 { return p.sb }

// SetSB stores a byte into the serial transfer data register.
func (p *Port) SetSB(v uint8) { p.sb = v }

// SC returns the serial transfer control register; bit 7 (transfer start)
// always reads back clear since no transfer ever takes more than one
// write to complete.
func (p *Port) SC() uint8 { return p.sc&0x7F | 0x7E }

// SetSC writes the control register. Writing 0x81 (internal clock,
// transfer requested) captures the current SB byte into the log; no
// interrupt is raised and no actual bit shifting occurs.
func (p *Port) SetSC(v uint8) {
	p.sc = v
	if v == 0x81 {
		p.log = append(p.log, p.sb)
	}
}

// Captured returns every byte captured so far, in order. Host front ends
// and tests use this to read a compliance ROM's "Passed"/"Failed" text.
func (p *Port) Captured() []byte { return p.log }
