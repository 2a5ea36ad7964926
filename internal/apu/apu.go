// Package apu implements the three-channel sound generator described in
// spec.md §4.6: two square channels (channel 1 with sweep) and one wave
// channel, driven by a 512 Hz frame sequencer and mixed into a stereo PCM
// byte stream at a host-requested sample rate. No SDL or other host audio
// dependency lives here — the kernel owns draining the output buffer.
package apu

const frameSequencerPeriod = 4194304 / 512 // 8192 cycles

// duty is the four preset square-wave on/off patterns, one bit per eighth
// of the waveform.
var duty = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 0, 0, 1},
	{1, 0, 0, 0, 0, 1, 1, 1},
	{0, 1, 1, 1, 1, 1, 1, 0},
}

// APU owns the three channels, the frame sequencer, and the sample
// accumulators feeding the output buffer.
type APU struct {
	enabled bool

	sq1, sq2 square
	wave     waveChannel

	sampleRate uint32

	seqCounter uint32
	seqStep    uint8

	sampleCounter uint32
	samplePeriod  uint32

	accumL, accumR float64
	accumN         int

	leftVol, rightVol uint8
	leftMask, rightMask [3]bool

	out []byte
}

// New returns an APU producing stereo samples at the given host sampling
// frequency (Hz).
func New(sampleRate uint32) *APU {
	if sampleRate == 0 {
		sampleRate = 44100
	}
	a := &APU{sampleRate: sampleRate, samplePeriod: 4194304 / sampleRate}
	a.sq1.hasSweep = true
	return a
}

// Step advances the frame sequencer and sample cadence by cycles elapsed
// CPU cycles regardless of the master power bit, appending finished
// samples to the internal output buffer as sampling-rate boundaries are
// crossed — silence while powered off, since each channel's own enabled
// flag (cleared by SetNR52) already zeroes its amplitude. Only the
// channels themselves gate on the master bit, not the cadence that feeds
// the output buffer.
func (a *APU) Step(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		a.seqCounter++
		if a.seqCounter >= frameSequencerPeriod {
			a.seqCounter = 0
			if a.enabled {
				a.tickSequencer()
			}
		}

		if a.enabled {
			a.sq1.tick()
			a.sq2.tick()
			a.wave.tick()
		}

		a.accumulate()

		a.sampleCounter++
		if a.sampleCounter >= a.samplePeriod {
			a.sampleCounter = 0
			a.emitSample()
		}
	}
}

func (a *APU) tickSequencer() {
	switch a.seqStep {
	case 0, 4:
		a.sq1.lengthTick()
		a.sq2.lengthTick()
		a.wave.lengthTick()
	case 2, 6:
		a.sq1.lengthTick()
		a.sq2.lengthTick()
		a.wave.lengthTick()
		a.sq1.sweepTick()
	case 7:
		a.sq1.envelopeTick()
		a.sq2.envelopeTick()
	}
	a.seqStep = (a.seqStep + 1) & 7
}

func (a *APU) accumulate() {
	samples := [3]float64{a.sq1.amplitude(), a.sq2.amplitude(), a.wave.amplitude()}
	var left, right float64
	for i, s := range samples {
		if a.leftMask[i] {
			left += s
		}
		if a.rightMask[i] {
			right += s
		}
	}
	a.accumL += left
	a.accumR += right
	a.accumN++
}

// emitSample averages the accumulated samples since the last emission,
// scales by the master volumes, biases to the middle of an unsigned byte
// range, and appends the (L,R) pair to the output buffer.
func (a *APU) emitSample() {
	var left, right float64
	if a.accumN > 0 {
		left = a.accumL / float64(a.accumN)
		right = a.accumR / float64(a.accumN)
	}
	a.accumL, a.accumR, a.accumN = 0, 0, 0

	leftByte := biasToByte(left * float64(a.leftVol) / 7 / 3)
	rightByte := biasToByte(right * float64(a.rightVol) / 7 / 3)
	a.out = append(a.out, leftByte, rightByte)
}

func biasToByte(v float64) byte {
	scaled := 128 + v*127
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return byte(scaled)
}

// Drain returns every sample pair produced since the last call and clears
// the internal buffer.
func (a *APU) Drain() []byte {
	out := a.out
	a.out = nil
	return out
}

// ReadWave and WriteWave address the wave pattern RAM at 0xFF30-0xFF3F.
func (a *APU) ReadWave(addr uint16) uint8     { return a.wave.ram[addr&0xF] }
func (a *APU) WriteWave(addr uint16, v uint8) { a.wave.ram[addr&0xF] = v }

// NR50 (0xFF24): master volume, VIN bits not modeled.
func (a *APU) SetNR50(v uint8) {
	a.rightVol = v & 0x07
	a.leftVol = (v >> 4) & 0x07
}
func (a *APU) NR50() uint8 { return a.leftVol<<4 | a.rightVol }

// NR51 (0xFF25): per-channel left/right output terminal mask.
func (a *APU) SetNR51(v uint8) {
	for i := 0; i < 3; i++ {
		a.rightMask[i] = v&(1<<i) != 0
		a.leftMask[i] = v&(1<<(i+4)) != 0
	}
}
func (a *APU) NR51() uint8 {
	var v uint8
	for i := 0; i < 3; i++ {
		if a.rightMask[i] {
			v |= 1 << i
		}
		if a.leftMask[i] {
			v |= 1 << (i + 4)
		}
	}
	return v
}

// NR52 (0xFF26): master power switch; only the high bit persists across
// writes per spec.md §4.2. Reading back reflects each channel's own
// enabled flag in the low three bits.
func (a *APU) SetNR52(v uint8) {
	wasEnabled := a.enabled
	a.enabled = v&0x80 != 0
	if wasEnabled && !a.enabled {
		a.sq1, a.sq2, a.wave = square{hasSweep: true}, square{}, waveChannel{ram: a.wave.ram}
	}
}
func (a *APU) NR52() uint8 {
	var v uint8
	if a.enabled {
		v |= 0x80
	}
	if a.sq1.enabled {
		v |= 0x01
	}
	if a.sq2.enabled {
		v |= 0x02
	}
	if a.wave.enabled {
		v |= 0x04
	}
	return v | 0x70
}

// Square1 and Square2 give the MMU direct access to each square channel's
// register bank.
func (a *APU) Square1() *square { return &a.sq1 }
func (a *APU) Square2() *square { return &a.sq2 }
func (a *APU) Wave() *waveChannel { return &a.wave }
