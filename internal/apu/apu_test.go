package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// stepCycles advances the APU by total cycles using chunks small enough
// for Step's uint8 parameter.
func stepCycles(a *APU, total int) {
	for total > 0 {
		chunk := 255
		if total < chunk {
			chunk = total
		}
		a.Step(uint8(chunk))
		total -= chunk
	}
}

func TestFrameSequencerAdvancesEvery8192Cycles(t *testing.T) {
	a := New(44100)
	a.SetNR52(0x80)

	stepCycles(a, frameSequencerPeriod-1)
	assert.Equal(t, uint8(0), a.seqStep)

	stepCycles(a, 1)
	assert.Equal(t, uint8(1), a.seqStep, "8192 cycles should have elapsed by now")
}

func TestDisabledAPUStillEmitsSilenceAtTheNormalCadence(t *testing.T) {
	a := New(4194304) // one sample per cycle, for a deterministic byte count
	a.Step(10)

	samples := a.Drain()
	assert.Len(t, samples, 20, "powered-off APU still emits a (silent) sample pair per cadence tick")
	for _, b := range samples {
		assert.Equal(t, byte(128), b, "silence biases to the middle of the unsigned byte range")
	}
	assert.Equal(t, uint8(0), a.seqStep, "the sequencer itself does not advance while powered off")
}

func TestSquareChannelTriggerReloadsEnvelopeAndLength(t *testing.T) {
	a := New(44100)
	a.SetNR52(0x80)
	sq1 := a.Square1()

	sq1.SetNRx2(0xF0) // volume 15, no envelope sweep, DAC on
	sq1.SetNRx1(0x3F) // length load = 64 - 63 = 1
	sq1.SetNRx4(0x80) // trigger, length disabled

	assert.True(t, sq1.enabled)
	assert.Equal(t, uint8(15), sq1.volume)
	assert.Equal(t, uint16(1), sq1.lengthCounter)
}

func TestLengthCounterDisablesChannelAtZero(t *testing.T) {
	a := New(44100)
	a.SetNR52(0x80)
	sq2 := a.Square2()

	sq2.SetNRx2(0xF0)
	sq2.SetNRx1(0x3F) // length = 1
	sq2.SetNRx4(0xC0) // trigger, length enabled

	sq2.lengthTick()
	assert.False(t, sq2.enabled, "length counter reaching zero disables the channel")
}

func TestNR52ReportsPerChannelEnableBits(t *testing.T) {
	a := New(44100)
	a.SetNR52(0x80)
	a.Square1().SetNRx2(0xF0)
	a.Square1().SetNRx4(0x80)

	assert.Equal(t, uint8(0x80|0x70|0x01), a.NR52())
}

func TestNR52PowerOffResetsChannels(t *testing.T) {
	a := New(44100)
	a.SetNR52(0x80)
	a.Square1().SetNRx2(0xF0)
	a.Square1().SetNRx4(0x80)

	a.SetNR52(0x00)

	assert.False(t, a.Square1().enabled)
	assert.Equal(t, uint8(0x70), a.NR52())
}

func TestDrainClearsBuffer(t *testing.T) {
	a := New(4194304) // one sample per cycle, for a short deterministic test
	a.SetNR52(0x80)
	a.Step(10)

	samples := a.Drain()
	assert.NotEmpty(t, samples)
	assert.Empty(t, a.Drain(), "a second drain without stepping returns nothing")
}

func TestWaveRAMReadWrite(t *testing.T) {
	a := New(44100)
	a.WriteWave(0xFF30, 0xAB)
	assert.Equal(t, uint8(0xAB), a.ReadWave(0xFF30))
}

func TestMasterVolumeRoundTrip(t *testing.T) {
	a := New(44100)
	a.SetNR50(0x77)
	assert.Equal(t, uint8(0x77), a.NR50())
}

func TestNR51ChannelRouting(t *testing.T) {
	a := New(44100)
	a.SetNR51(0x11) // channel 1 to both terminals
	assert.Equal(t, uint8(0x11), a.NR51())
}
