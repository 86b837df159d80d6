// Package renderer is the ebiten-backed front end for a chip8.Machine: an
// ebiten.Game implementation that drives Machine.Step/TickTimers at a
// fixed cadence, blits its framebuffer, polls the host keyboard into the
// engine's keypad, and drives the beeper off the sound timer.
package renderer

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gopherdev/chip8vm/internal/beep"
	"github.com/gopherdev/chip8vm/internal/chip8"
	"github.com/gopherdev/chip8vm/internal/chip8/video"
)

// ====================
// keyboard key mapping
// ====================
//
//	1 2 3 C  -> 1 2 3 4
//	4 5 6 D  -> Q W E R
//	7 8 9 E  -> A S D F
//	A 0 B F  -> Z X C V
var keyboardMapping = map[uint8]ebiten.Key{
	0x1: ebiten.Key1, 0x2: ebiten.Key2, 0x3: ebiten.Key3, 0xC: ebiten.Key4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

var keyboardPosition = map[uint8]uint8{
	0x0: 0x1, 0x1: 0x2, 0x2: 0x3, 0x3: 0xC,
	0x4: 0x4, 0x5: 0x5, 0x6: 0x6, 0x7: 0xD,
	0x8: 0x7, 0x9: 0x8, 0xA: 0x9, 0xB: 0xE,
	0xC: 0xA, 0xD: 0x0, 0xE: 0xB, 0xF: 0xF,
}

var (
	buttonReleasedColor color.Color = MustDecodeColorFromHex("999999")
	buttonPressedColor  color.Color = MustDecodeColorFromHex("65f057")
)

// EbitenDisplay adapts video.TermDisplay's framebuffer and draw semantics
// into the renderer's concrete video.Display implementation: ebiten reads
// pixels straight out of the embedded TermDisplay each frame instead of
// the engine needing a second, GUI-specific draw routine.
type EbitenDisplay struct {
	*video.TermDisplay
}

// NewEbitenDisplay returns an EbitenDisplay with every pixel unset.
func NewEbitenDisplay() *EbitenDisplay {
	return &EbitenDisplay{TermDisplay: video.NewTermDisplay()}
}

// Config holds the renderer's own presentation settings, independent of
// the Machine it drives.
type Config struct {
	FgColor color.Color
	BgColor color.Color
	// ClockHz is the instruction clock rate; Game runs ClockHz/60
	// Machine.Step calls per Update, since ebiten drives Update at 60 TPS
	// and TickTimers must fire once per Update to stay at 60 Hz.
	ClockHz int
}

// Game is the ebiten.Game implementation: one Machine, one EbitenDisplay,
// one Beep, driven at Config.ClockHz instructions per second and 60 Hz
// timer ticks.
type Game struct {
	machine *chip8.Machine
	disp    *EbitenDisplay
	beeper  *beep.Beep
	romName string

	cfg Config

	paused     bool
	keypadMode bool
}

// New returns a Game ready to Run.
func New(machine *chip8.Machine, disp *EbitenDisplay, beeper *beep.Beep, romName string, cfg Config) *Game {
	return &Game{
		machine: machine,
		disp:    disp,
		beeper:  beeper,
		romName: romName,
		cfg:     cfg,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.setWindowTitle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		g.keypadMode = !g.keypadMode
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		g.beeper.VolumeUp()
	case inpututil.IsKeyJustPressed(ebiten.Key9):
		g.beeper.VolumeDown()
	}

	for code, ebitenKey := range keyboardMapping {
		if ebiten.IsKeyPressed(ebitenKey) {
			g.machine.KeyDownCode(code)
		} else {
			g.machine.KeyUpCode(code)
		}
	}

	if !g.paused {
		instructionsPerTick := g.cfg.ClockHz / 60
		if instructionsPerTick < 1 {
			instructionsPerTick = 1
		}
		for i := 0; i < instructionsPerTick; i++ {
			if err := g.machine.Step(); err != nil {
				log.Printf("chip8: fatal step error, pausing: %s", err.Error())
				g.paused = true
				g.setWindowTitle()
				break
			}
		}
		g.machine.TickTimers()
	}

	g.beeper.Sync(g.machine.SoundActive())

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	for y := 0; y < video.Height; y++ {
		for x := 0; x < video.Width; x++ {
			pixelColor := g.cfg.BgColor
			if g.disp.PixelAt(x, y) {
				pixelColor = g.cfg.FgColor
			}
			screen.Set(x, y, pixelColor)
		}
	}

	if g.keypadMode {
		buttonsInRow := 4
		buttonSize := 4

		offsetX := (video.Width - (buttonsInRow*buttonSize + buttonsInRow - 1)) >> 1
		offsetY := video.Height + 1

		for x := 0; x < 4; x++ {
			for y := 0; y < 4; y++ {
				pixelColor := buttonReleasedColor
				key := y<<2 | x&0xf
				if g.machine.KeyCodePressed(keyboardPosition[uint8(key)]) {
					pixelColor = buttonPressedColor
				}

				posX := offsetX + (x * (buttonSize + 1))
				posY := offsetY + (y * (buttonSize + 1))

				vector.DrawFilledRect(screen,
					float32(posX), float32(posY),
					float32(buttonSize), float32(buttonSize),
					pixelColor, false,
				)
			}
		}
	}
}

func (g *Game) Layout(int, int) (int, int) {
	if g.keypadMode {
		return video.Width, video.Height + 22
	}
	return video.Width, video.Height
}

// Run starts the ebiten event loop. It blocks until the window closes or
// Update returns ebiten.Termination.
func (g *Game) Run() error {
	ebiten.SetTPS(60)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.setWindowTitle()

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run renderer: %w", err)
	}
	return nil
}

func (g *Game) setWindowTitle() {
	state := "running"
	if g.paused {
		state = "paused"
	}
	ebiten.SetWindowTitle("CHIP8 Emulator: " + g.romName + " " + state)
}

// MustDecodeColorFromHex is DecodeColorFromHex, panicking (well, logging
// and exiting) on a malformed hex string. Used only for this package's own
// default button colors, which are constants known to parse.
func MustDecodeColorFromHex(s string) color.Color {
	c, err := DecodeColorFromHex(s)
	if err != nil {
		log.Fatal(err.Error())
	}
	return c
}

// DecodeColorFromHex parses a 3- or 4-byte (rgb/rgba) hex string into a
// color.RGBA. A 3-byte string defaults alpha to opaque.
func DecodeColorFromHex(s string) (color.Color, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("couldn't decode a hex string: %w", err)
	}
	if len(data) != 3 && len(data) != 4 {
		return nil, fmt.Errorf("color must be in rgb or rgba format")
	}

	c := color.RGBA{R: data[0], G: data[1], B: data[2], A: 0xff}
	if len(data) == 4 {
		c.A = data[3]
	}
	return c, nil
}
