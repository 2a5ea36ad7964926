// Package gameboy implements the frame kernel described in spec.md §4.9
// and exposed through §6's external interface: initialize, run a single
// frame at a time, and tear down. It is the single actor that owns and
// mutates every emulated component.
package gameboy

import (
	"github.com/pixelforge/dmgboy/internal/cartridge"
	"github.com/pixelforge/dmgboy/internal/cpu"
	"github.com/pixelforge/dmgboy/internal/interrupts"
	"github.com/pixelforge/dmgboy/internal/joypad"
	"github.com/pixelforge/dmgboy/internal/mmu"
)

// Button names the eight physical keys, re-exported from the joypad
// package so callers never need to import it directly.
type Button = joypad.Button

const (
	Right  = joypad.Right
	Left   = joypad.Left
	Up     = joypad.Up
	Down   = joypad.Down
	A      = joypad.A
	B      = joypad.B
	Select = joypad.Select
	Start  = joypad.Start
)

// InputEvent is one button transition the host applies before a frame
// runs, in order, per spec.md §4.9.
type InputEvent struct {
	Button  Button
	Pressed bool
}

const cyclesPerFrame = 70224

// screenPixelBytes is the minimum size RunSingleFrame requires of its
// pixels buffer: 160x144 RGBA.
const screenPixelBytes = 160 * 144 * 4

// GameBoy is the opaque machine handle the external interface hands back
// from Initialize.
type GameBoy struct {
	cpu *cpu.CPU
	mmu *mmu.MMU

	exitRequested bool
}

// Options configures Initialize.
type Options struct {
	BootROM    []byte // optional; nil runs the post-boot register state directly
	GameROM    []byte
	ExternalRAM []byte // optional battery-backed save to restore
	Debug      bool
	SampleRate uint32 // audio sampling frequency in Hz
}

// Initialize constructs a machine from a cartridge image and optional boot
// ROM, matching spec.md §6's "initialize" operation.
func Initialize(opts Options) (*GameBoy, error) {
	cart, err := cartridge.New(opts.GameROM)
	if err != nil {
		return nil, err
	}
	if len(opts.ExternalRAM) > 0 {
		cart.LoadRAM(opts.ExternalRAM)
	}

	bus := mmu.New(cart, opts.BootROM, opts.SampleRate)
	c := cpu.New(bus)
	c.Debug = opts.Debug
	if len(opts.BootROM) > 0 {
		c.ResetForBootROM()
	} else {
		c.Reset()
	}

	return &GameBoy{cpu: c, mmu: bus}, nil
}

// RunSingleFrame applies the given input events to the joypad latches,
// then interprets instructions until the PPU reports a completed frame or
// exit was requested, matching spec.md §4.9 exactly: cycles are fed to
// the timer, APU and PPU in that order, the joypad register is refreshed,
// interrupts are serviced, and exit is polled at each iteration boundary.
//
// pixels must be at least 160*144*4 bytes; RunSingleFrame overwrites it
// with the completed frame's RGBA pixels. audioOut receives every stereo
// sample pair produced during the frame, appended in order.
func (g *GameBoy) RunSingleFrame(events []InputEvent, pixels []byte, audioOut *[]byte) {
	for _, ev := range events {
		if ev.Pressed {
			if g.mmu.Joypad.Press(ev.Button) {
				g.mmu.IRQ.Request(interrupts.Joypad)
			}
		} else {
			g.mmu.Joypad.Release(ev.Button)
		}
	}

	for {
		if g.exitRequested {
			return
		}

		cycles := g.cpu.Step()

		if g.mmu.Timer.Step(cycles) {
			g.mmu.IRQ.Request(interrupts.Timer)
		}
		g.mmu.APU.Step(cycles)
		frameDone := g.mmu.PPU.Step(cycles, g.mmu)

		g.mmu.IRQ.Service(g.cpu)

		if frameDone {
			copy(pixels, g.mmu.PPU.Frame())
			*audioOut = append(*audioOut, g.mmu.APU.Drain()...)
			return
		}
	}
}

// ExitRequested reports whether RequestExit has been called.
func (g *GameBoy) ExitRequested() bool { return g.exitRequested }

// RequestExit causes the next RunSingleFrame iteration boundary to return
// early, per spec.md §5's cooperative cancellation model.
func (g *GameBoy) RequestExit() { g.exitRequested = true }

// CopyExternalRAM returns a snapshot of the cartridge's battery-backed RAM,
// or nil if the cartridge has no battery.
func (g *GameBoy) CopyExternalRAM() []byte { return g.mmu.Cart.SaveRAM() }

// Destroy releases the machine. The Go runtime's garbage collector
// reclaims everything once the handle is dropped; this exists to satisfy
// spec.md §6's language-agnostic interface shape.
func (g *GameBoy) Destroy() {}
