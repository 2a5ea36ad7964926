package cpu

// Registers holds the Sharp LR35902 register file. A is the accumulator, F
// the flag register (only its upper nibble is meaningful — Z, N, H, C from
// bit 7 down to bit 4; the lower nibble always reads zero). BC, DE and HL
// are addressed both as register pairs and as their individual 8-bit
// halves, so the pair accessors below simply compose the halves rather than
// aliasing storage.
type Registers struct {
	A, F    uint8
	B, C    uint8
	D, E    uint8
	H, L    uint8
	SP, PC  uint16
}

// BC returns the 16-bit register pair B:C.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// SetBC writes the 16-bit register pair B:C.
func (r *Registers) SetBC(v uint16) { r.B = uint8(v >> 8); r.C = uint8(v) }

// DE returns the 16-bit register pair D:E.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// SetDE writes the 16-bit register pair D:E.
func (r *Registers) SetDE(v uint16) { r.D = uint8(v >> 8); r.E = uint8(v) }

// HL returns the 16-bit register pair H:L.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetHL writes the 16-bit register pair H:L.
func (r *Registers) SetHL(v uint16) { r.H = uint8(v >> 8); r.L = uint8(v) }

// AF returns A concatenated with the value-form of F (low nibble forced to
// zero, matching real hardware).
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F&0xF0) }

// SetAF writes A and F; F's low nibble is always masked to zero, and POP AF
// relies on this to enforce the "lower four bits of F always read zero"
// invariant.
func (r *Registers) SetAF(v uint16) { r.A = uint8(v >> 8); r.F = uint8(v) & 0xF0 }

// RegID is a tagged selector over the eight operand slots an 8-bit opcode
// can name: the seven plain registers plus the (HL) indirect slot. Handlers
// that are parameterized by register (the bulk of the LD/ALU/CB tables) take
// a RegID pair instead of being duplicated seven times over.
type RegID uint8

const (
	RegB RegID = iota
	RegC
	RegD
	RegE
	RegH
	RegL
	RegHL // (HL) indirect
	RegA
)

// regIndex maps the 3-bit register field used throughout the opcode map
// (B,C,D,E,H,L,(HL),A in that order) to a RegID.
func regIndex(i uint8) RegID {
	return RegID(i & 0x7)
}
