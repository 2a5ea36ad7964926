// Package ppu implements the scanline LCD pipeline described in spec.md
// §4.5: the mode 2→3→0 progression across visible lines, VBlank on lines
// 144-153, and background/window/sprite compositing rendered exactly on
// the mode 3→0 transition.
package ppu

import "github.com/pixelforge/dmgboy/internal/bits"

const (
	screenWidth  = 160
	screenHeight = 144
	cyclesPerLine = 456
	linesPerFrame = 154
	cyclesPerFrame = cyclesPerLine * linesPerFrame
)

// InterruptRequester lets the PPU raise interrupts without importing the
// interrupts package (which would create an import cycle through the
// kernel that wires both together).
type InterruptRequester interface {
	RequestVBlank()
	RequestLCDStat()
}

// Mode is the four-value LCD status mode field.
type Mode uint8

const (
	ModeHBlank Mode = 0
	ModeVBlank Mode = 1
	ModeOAM    Mode = 2
	ModeTransfer Mode = 3
)

// PPU owns VRAM, OAM, every LCD register and the 160x144 RGBA framebuffer.
type PPU struct {
	vram [0x2000]uint8
	oam  [0xA0]uint8

	lcdc, stat             uint8
	scy, scx               uint8
	ly, lyc                uint8
	bgp, obp0, obp1        uint8
	wy, wx                 uint8

	dot  uint32
	mode Mode

	// frame is the 160x144x4 RGBA pixel buffer, written one scanline at a
	// time on the mode 3->0 transition.
	frame [screenWidth * screenHeight * 4]byte

	frameDone bool
}

// New returns a PPU with the LCD off and every register zeroed, matching
// the state the boot ROM (or Reset) leaves things in before the game
// enables the display. Mode starts at OAM scan, matching line 0's first
// segment once the LCD is turned on.
func New() *PPU { return &PPU{mode: ModeOAM} }

// Step advances the PPU by the given number of elapsed CPU cycles,
// crossing as many mode/line boundaries as necessary and raising
// interrupts through irq as described in spec.md §4.5. It reports whether
// a full frame was just completed.
func (p *PPU) Step(cycles uint8, irq InterruptRequester) bool {
	if p.lcdc&0x80 == 0 {
		p.ly = 0
		p.dot = 0
		p.mode = ModeOAM
		return false
	}

	p.frameDone = false
	remaining := uint32(cycles)
	for remaining > 0 {
		lineStart := (p.dot / cyclesPerLine) * cyclesPerLine
		cycInLine := p.dot - lineStart
		line := p.dot / cyclesPerLine

		var boundary uint32
		switch {
		case line >= screenHeight:
			boundary = lineStart + cyclesPerLine
		case cycInLine < 80:
			boundary = lineStart + 80
		case cycInLine < 252:
			boundary = lineStart + 252
		default:
			boundary = lineStart + cyclesPerLine
		}

		step := boundary - p.dot
		if remaining < step {
			step = remaining
		}
		p.dot += step
		remaining -= step

		if p.dot == boundary {
			p.crossBoundary(irq)
		}
	}
	return p.frameDone
}

func (p *PPU) crossBoundary(irq InterruptRequester) {
	wrapped := false
	if p.dot >= cyclesPerFrame {
		p.dot -= cyclesPerFrame
		wrapped = true
		p.frameDone = true
	}

	newLine := uint8(p.dot / cyclesPerLine)
	cycInLine := p.dot % cyclesPerLine

	var newMode Mode
	switch {
	case newLine >= screenHeight:
		newMode = ModeVBlank
	case cycInLine < 80:
		newMode = ModeOAM
	case cycInLine < 252:
		newMode = ModeTransfer
	default:
		newMode = ModeHBlank
	}

	oldMode, oldLine := p.mode, p.ly

	if oldMode == ModeTransfer && newMode == ModeHBlank {
		p.renderScanline(oldLine)
		if p.stat&0x08 != 0 {
			irq.RequestLCDStat()
		}
	}
	if (oldMode == ModeHBlank || wrapped) && newMode == ModeVBlank {
		irq.RequestVBlank()
		if p.stat&0x10 != 0 {
			irq.RequestLCDStat()
		}
	}
	if oldMode == ModeVBlank && newMode == ModeOAM {
		if p.stat&0x20 != 0 {
			irq.RequestLCDStat()
		}
	}

	p.mode = newMode
	if cycInLine == 0 && newLine != oldLine {
		p.ly = newLine
		if p.ly == p.lyc && p.stat&0x40 != 0 {
			irq.RequestLCDStat()
		}
	}
}

// Frame returns the RGBA pixel buffer for the most recently completed
// frame.
func (p *PPU) Frame() []byte { return p.frame[:] }

// ReadVRAM and WriteVRAM address VRAM relative to 0x8000.
func (p *PPU) ReadVRAM(addr uint16) uint8     { return p.vram[addr&0x1FFF] }
func (p *PPU) WriteVRAM(addr uint16, v uint8) { p.vram[addr&0x1FFF] = v }

// ReadOAM and WriteOAM address OAM relative to 0xFE00.
func (p *PPU) ReadOAM(addr uint16) uint8     { return p.oam[addr&0xFF] }
func (p *PPU) WriteOAM(addr uint16, v uint8) { p.oam[addr&0xFF] = v }

// DMAWrite is used by the MMU's OAM DMA side effect to copy a byte
// directly into OAM by index rather than by CPU-visible address.
func (p *PPU) DMAWrite(index uint8, v uint8) { p.oam[index] = v }

func (p *PPU) LCDC() uint8 { return p.lcdc }
func (p *PPU) SetLCDC(v uint8) { p.lcdc = v }

// STAT's low three bits (mode and coincidence) are read-only and always
// reflect live PPU state; only bits 3-6 are settable by software.
func (p *PPU) STAT() uint8 {
	var coincidence uint8
	if p.ly == p.lyc {
		coincidence = 1 << 2
	}
	return p.stat&0x78 | coincidence | uint8(p.mode) | 0x80
}
func (p *PPU) SetSTAT(v uint8) { p.stat = v & 0x78 }

func (p *PPU) SCY() uint8 { return p.scy }
func (p *PPU) SetSCY(v uint8) { p.scy = v }
func (p *PPU) SCX() uint8 { return p.scx }
func (p *PPU) SetSCX(v uint8) { p.scx = v }

// LY is read-only from the CPU's perspective; writes are dropped by the
// MMU before they ever reach here.
func (p *PPU) LY() uint8 { return p.ly }

func (p *PPU) LYC() uint8 { return p.lyc }
func (p *PPU) SetLYC(v uint8) { p.lyc = v }

func (p *PPU) BGP() uint8 { return p.bgp }
func (p *PPU) SetBGP(v uint8) { p.bgp = v }
func (p *PPU) OBP0() uint8 { return p.obp0 }
func (p *PPU) SetOBP0(v uint8) { p.obp0 = v }
func (p *PPU) OBP1() uint8 { return p.obp1 }
func (p *PPU) SetOBP1(v uint8) { p.obp1 = v }
func (p *PPU) WY() uint8 { return p.wy }
func (p *PPU) SetWY(v uint8) { p.wy = v }
func (p *PPU) WX() uint8 { return p.wx }
func (p *PPU) SetWX(v uint8) { p.wx = v }

// shades maps a 2-bit color index to the grayscale byte value spec.md §6
// mandates: 0->0xFF, 1->0xC0, 2->0x60, 3->0x00.
var shades = [4]byte{0xFF, 0xC0, 0x60, 0x00}

// paletteShade applies a BGP/OBPn-style palette byte to a raw 2-bit color
// index, then maps the result through shades.
func paletteShade(palette uint8, colorIndex uint8) byte {
	shade := (palette >> (colorIndex * 2)) & 0x03
	return shades[shade]
}

func (p *PPU) setPixel(x, y int, shade byte) {
	offset := (y*screenWidth + x) * 4
	p.frame[offset+0] = shade
	p.frame[offset+1] = shade
	p.frame[offset+2] = shade
	p.frame[offset+3] = 0xFF
}

func (p *PPU) renderScanline(line uint8) {
	y := int(line)
	bgEnabled := p.lcdc&0x01 != 0
	windowEnabled := p.lcdc&0x20 != 0 && bgEnabled
	signedTiles := p.lcdc&0x10 == 0
	bgMap := uint16(0x9800)
	if p.lcdc&0x08 != 0 {
		bgMap = 0x9C00
	}
	winMap := uint16(0x9800)
	if p.lcdc&0x40 != 0 {
		winMap = 0x9C00
	}

	bgColorIndex := [screenWidth]uint8{}

	for x := 0; x < screenWidth; x++ {
		var colorIdx uint8
		if windowEnabled && int(line) >= int(p.wy) && x+7 >= int(p.wx) {
			wx := x - (int(p.wx) - 7)
			wy := int(line) - int(p.wy)
			colorIdx = p.tilePixel(winMap, signedTiles, wx, wy)
		} else if bgEnabled {
			bx := (x + int(p.scx)) & 0xFF
			by := (int(line) + int(p.scy)) & 0xFF
			colorIdx = p.tilePixel(bgMap, signedTiles, bx, by)
		}
		bgColorIndex[x] = colorIdx
		p.setPixel(x, y, paletteShade(p.bgp, colorIdx))
	}

	if p.lcdc&0x02 != 0 {
		p.renderSprites(line, bgColorIndex[:])
	}
}

// tilePixel returns the 2-bit background/window color index at pixel
// (x,y) within the given tile map, honoring the LCDC tile-data addressing
// mode.
func (p *PPU) tilePixel(mapBase uint16, signed bool, x, y int) uint8 {
	tileCol := x / 8
	tileRow := y / 8
	mapAddr := mapBase + uint16(tileRow*32+tileCol) - 0x8000
	tileIndex := p.vram[mapAddr&0x1FFF]

	var tileAddr uint16
	if signed {
		tileAddr = uint16(0x9000 + int16(int8(tileIndex))*16 - 0x8000)
	} else {
		tileAddr = uint16(tileIndex) * 16
	}

	rowInTile := y % 8
	lo := p.vram[(tileAddr+uint16(rowInTile*2))&0x1FFF]
	hi := p.vram[(tileAddr+uint16(rowInTile*2)+1)&0x1FFF]

	bit := 7 - uint8(x%8)
	return bits.Val(lo, bit) | bits.Val(hi, bit)<<1
}

type spriteEntry struct {
	y, x, tile, attr uint8
	oamIndex         int
}

// renderSprites finds the up-to-10 sprites covering this line, sorted by
// ascending X then ascending OAM index, and composites them over the
// background per spec.md §4.5's priority rule.
func (p *PPU) renderSprites(line uint8, bgColorIndex []uint8) {
	height := 8
	if p.lcdc&0x04 != 0 {
		height = 16
	}

	var visible []spriteEntry
	for i := 0; i < 40; i++ {
		base := i * 4
		sy := int(p.oam[base]) - 16
		if int(line) < sy || int(line) >= sy+height {
			continue
		}
		visible = append(visible, spriteEntry{
			y: p.oam[base], x: p.oam[base+1], tile: p.oam[base+2], attr: p.oam[base+3],
			oamIndex: i,
		})
		if len(visible) == 10 {
			break
		}
	}

	for i := 0; i < len(visible); i++ {
		for j := i + 1; j < len(visible); j++ {
			a, b := visible[i], visible[j]
			if b.x < a.x || (b.x == a.x && b.oamIndex < a.oamIndex) {
				visible[i], visible[j] = visible[j], visible[i]
			}
		}
	}

	for idx := len(visible) - 1; idx >= 0; idx-- {
		s := visible[idx]
		sx := int(s.x) - 8
		sy := int(s.y) - 16
		rowInSprite := int(line) - sy
		flipY := s.attr&0x40 != 0
		flipX := s.attr&0x20 != 0
		behindBG := s.attr&0x80 != 0
		palette := p.obp0
		if s.attr&0x10 != 0 {
			palette = p.obp1
		}

		tile := s.tile
		if height == 16 {
			tile &^= 1
		}
		if flipY {
			rowInSprite = height - 1 - rowInSprite
		}
		tileAddr := uint16(tile)*16 + uint16((rowInSprite%8)*2)
		if height == 16 && rowInSprite >= 8 {
			tileAddr = uint16(tile+1)*16 + uint16((rowInSprite%8)*2)
		}
		lo := p.vram[tileAddr&0x1FFF]
		hi := p.vram[(tileAddr+1)&0x1FFF]

		for col := 0; col < 8; col++ {
			px := sx + col
			if px < 0 || px >= screenWidth {
				continue
			}
			bit := uint8(col)
			if !flipX {
				bit = 7 - uint8(col)
			}
			colorIdx := bits.Val(lo, bit) | bits.Val(hi, bit)<<1
			if colorIdx == 0 {
				continue // sprite palette index 0 always transparent
			}
			if behindBG && bgColorIndex[px] != 0 {
				continue
			}
			p.setPixel(px, int(line), paletteShade(palette, colorIdx))
		}
	}
}
