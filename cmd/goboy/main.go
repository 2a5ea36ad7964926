package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/pixelforge/dmgboy/internal/gameboy"
	gblog "github.com/pixelforge/dmgboy/pkg/log"
	"github.com/pixelforge/dmgboy/pkg/romload"
)

const (
	screenWidth  = 160
	screenHeight = 144
)

func main() {
	app := cli.NewApp()
	app.Name = "goboy"
	app.Usage = "goboy --rom <file> [options]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "path to the cartridge ROM (.gb, .zip, .7z)"},
		cli.StringFlag{Name: "boot", Usage: "path to a DMG boot ROM; omit to skip it"},
		cli.StringFlag{Name: "save", Usage: "path to the battery-backed save file"},
		cli.IntFlag{Name: "scale", Value: 4, Usage: "integer window scale factor"},
		cli.IntFlag{Name: "sample-rate", Value: 44100, Usage: "audio sampling frequency in Hz"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging and the LD B,B breakpoint"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("goboy exited with an error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := gblog.New(c.Bool("debug"))
	slog.SetDefault(logger)

	romPath := c.String("rom")
	if romPath == "" {
		cli.ShowAppHelp(c)
		return fmt.Errorf("goboy: --rom is required")
	}

	rom, err := romload.File(romPath)
	if err != nil {
		return fmt.Errorf("goboy: loading rom: %w", err)
	}

	var boot []byte
	if bootPath := c.String("boot"); bootPath != "" {
		boot, err = romload.File(bootPath)
		if err != nil {
			return fmt.Errorf("goboy: loading boot rom: %w", err)
		}
	}

	savePath := c.String("save")
	var save []byte
	if savePath != "" {
		if data, err := os.ReadFile(savePath); err == nil {
			save = data
		}
	}

	gb, err := gameboy.Initialize(gameboy.Options{
		BootROM:     boot,
		GameROM:     rom,
		ExternalRAM: save,
		Debug:       c.Bool("debug"),
		SampleRate:  uint32(c.Int("sample-rate")),
	})
	if err != nil {
		return fmt.Errorf("goboy: %w", err)
	}
	defer gb.Destroy()

	scale := int32(c.Int("scale"))
	if scale < 1 {
		scale = 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("goboy: sdl init: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("goboy", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		screenWidth*scale, screenHeight*scale, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("goboy: creating window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("goboy: creating renderer: %w", err)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, screenWidth, screenHeight)
	if err != nil {
		return fmt.Errorf("goboy: creating texture: %w", err)
	}
	defer texture.Destroy()

	audioSpec := &sdl.AudioSpec{Freq: int32(c.Int("sample-rate")), Format: sdl.AUDIO_U8, Channels: 2, Samples: 2048}
	audioDevice, err := sdl.OpenAudioDevice("", false, audioSpec, nil, 0)
	if err != nil {
		slog.Error("goboy: audio device unavailable, running muted", "error", err)
	} else {
		defer sdl.CloseAudioDevice(audioDevice)
		sdl.PauseAudioDevice(audioDevice, false)
	}

	pixels := make([]byte, screenWidth*screenHeight*4)
	var audioOut []byte
	keys := newKeyTracker()

	for !gb.ExitRequested() {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				gb.RequestExit()
			}
		}

		events := keys.poll(sdl.GetKeyboardState())
		audioOut = audioOut[:0]
		gb.RunSingleFrame(events, pixels, &audioOut)

		if err := texture.Update(nil, pixels, screenWidth*4); err != nil {
			return fmt.Errorf("goboy: updating texture: %w", err)
		}
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()

		if audioDevice != 0 && len(audioOut) > 0 {
			if err := sdl.QueueAudio(audioDevice, audioOut); err != nil {
				slog.Debug("goboy: queuing audio", "error", err)
			}
		}
	}

	if savePath != "" {
		if ram := gb.CopyExternalRAM(); ram != nil {
			if err := os.WriteFile(savePath, ram, 0o644); err != nil {
				slog.Error("goboy: saving external RAM", "error", err)
			}
		}
	}

	return nil
}

// keyTracker maps SDL scancodes to gameboy buttons and reports only state
// transitions across frames, matching the InputEvent contract in
// internal/gameboy.
type keyTracker struct {
	pressed map[gameboy.Button]bool
}

func newKeyTracker() *keyTracker {
	return &keyTracker{pressed: make(map[gameboy.Button]bool)}
}

var keymap = map[int]gameboy.Button{
	sdl.SCANCODE_RIGHT:  gameboy.Right,
	sdl.SCANCODE_LEFT:   gameboy.Left,
	sdl.SCANCODE_UP:     gameboy.Up,
	sdl.SCANCODE_DOWN:   gameboy.Down,
	sdl.SCANCODE_Z:      gameboy.A,
	sdl.SCANCODE_X:      gameboy.B,
	sdl.SCANCODE_RSHIFT: gameboy.Select,
	sdl.SCANCODE_RETURN: gameboy.Start,
}

func (k *keyTracker) poll(state []uint8) []gameboy.InputEvent {
	var events []gameboy.InputEvent
	for scancode, button := range keymap {
		down := state[scancode] != 0
		if down != k.pressed[button] {
			k.pressed[button] = down
			events = append(events, gameboy.InputEvent{Button: button, Pressed: down})
		}
	}
	return events
}
