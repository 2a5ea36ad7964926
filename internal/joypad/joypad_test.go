package joypad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitialStateAllReleased(t *testing.T) {
	s := New()
	s.Write(0x00) // select both nibbles
	assert.Equal(t, uint8(0xCF), s.Read())
}

func TestDirectionsSelected(t *testing.T) {
	s := New()
	s.Write(0x20) // select directions (bit 4 low)
	s.Press(Down)
	got := s.Read()
	assert.Equal(t, uint8(0), got&(1<<Down.bit()), "Down's bit is clear while pressed")
}

func TestActionsSelected(t *testing.T) {
	s := New()
	s.Write(0x10) // select actions (bit 5 low)
	s.Press(A)
	got := s.Read()
	assert.Equal(t, uint8(0), got&(1<<A.bit()))
}

func TestPressReportsInterruptOnlyWhenSelected(t *testing.T) {
	s := New()
	s.Write(0x20) // directions selected, actions not
	assert.True(t, s.Press(Up), "Up is a direction and directions are selected")

	s.Release(Up)
	s.Write(0x10) // actions selected, directions not
	assert.False(t, s.Press(Up), "Up is a direction but actions are selected")
}

func TestPressIsIdempotentWhileHeld(t *testing.T) {
	s := New()
	s.Write(0x20)
	assert.True(t, s.Press(Left))
	assert.False(t, s.Press(Left), "no falling edge on a second press while already held")
}

func TestReleaseRestoresBit(t *testing.T) {
	s := New()
	s.Write(0x00)
	s.Press(Start)
	s.Release(Start)
	assert.Equal(t, uint8(0xCF), s.Read())
}
