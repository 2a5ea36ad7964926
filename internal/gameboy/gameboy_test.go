package gameboy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	return rom
}

func TestInitializeWithoutBootROM(t *testing.T) {
	gb, err := Initialize(Options{GameROM: makeROM()})
	assert.NoError(t, err)
	assert.NotNil(t, gb)
	assert.False(t, gb.ExitRequested())
}

func TestInitializeRejectsTruncatedROM(t *testing.T) {
	_, err := Initialize(Options{GameROM: []byte{0x00, 0x01}})
	assert.Error(t, err)
}

func TestRequestExitStopsTheFrameLoop(t *testing.T) {
	gb, err := Initialize(Options{GameROM: makeROM()})
	assert.NoError(t, err)

	gb.RequestExit()
	assert.True(t, gb.ExitRequested())

	pixels := make([]byte, screenPixelBytes)
	var audio []byte
	gb.RunSingleFrame(nil, pixels, &audio)
	assert.Empty(t, audio, "no work happens once exit has been requested")
}

func TestRunSingleFrameProducesAFullFramebuffer(t *testing.T) {
	gb, err := Initialize(Options{GameROM: makeROM()})
	assert.NoError(t, err)

	pixels := make([]byte, screenPixelBytes)
	var audio []byte
	gb.RunSingleFrame(nil, pixels, &audio)

	assert.Len(t, pixels, screenPixelBytes)
}

func TestCopyExternalRAMNilWithoutBattery(t *testing.T) {
	gb, err := Initialize(Options{GameROM: makeROM()})
	assert.NoError(t, err)
	assert.Nil(t, gb.CopyExternalRAM())
}

func TestInputEventAppliedBeforeFrame(t *testing.T) {
	gb, err := Initialize(Options{GameROM: makeROM()})
	assert.NoError(t, err)

	events := []InputEvent{{Button: Start, Pressed: true}}
	pixels := make([]byte, screenPixelBytes)
	var audio []byte

	gb.RunSingleFrame(events, pixels, &audio)

	gb.mmu.Joypad.Write(0x10) // select the action nibble
	assert.Equal(t, uint8(0), gb.mmu.Joypad.Read()&0x08, "Start's bit should read back pressed")
}
