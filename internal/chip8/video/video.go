// Package video defines the framebuffer contract the execution engine
// draws against, and a headless reference implementation.
package video

const (
	// Width is the CHIP-8 framebuffer width in pixels.
	Width = 64
	// Height is the CHIP-8 framebuffer height in pixels.
	Height = 32
)

// Display is the capability set the execution engine requires of any
// display collaborator: clear the screen, XOR-draw a sprite and report
// collision, and flush to the real output device.
type Display interface {
	// Clear sets every pixel to unset.
	Clear()
	// Draw XORs an 8-pixel-wide, len(sprite)-row sprite onto the
	// framebuffer at (x, y), wrapping at the screen edges, and reports
	// whether any pixel flipped from set to unset.
	Draw(x, y int, sprite []byte) bool
	// Refresh flushes the framebuffer to the real output device. For a
	// headless collaborator this may be a no-op.
	Refresh()
}

// TermDisplay is a headless Display that renders to an in-memory
// [Height][Width]bool grid. It implements the wrap-and-XOR draw contract
// and serves as both the engine's own test double and a real ASCII-art
// terminal front end.
type TermDisplay struct {
	pixels [Height][Width]bool
}

// NewTermDisplay returns a TermDisplay with every pixel unset.
func NewTermDisplay() *TermDisplay {
	return &TermDisplay{}
}

// Clear sets every pixel to unset.
func (d *TermDisplay) Clear() {
	d.pixels = [Height][Width]bool{}
}

// Draw XORs sprite onto the framebuffer at (x, y), wrapping coordinates at
// the screen edges per the original CHIP-8 spec, and returns true if any
// pixel flipped from set to unset (a collision).
func (d *TermDisplay) Draw(x, y int, sprite []byte) bool {
	collision := false
	startX, startY := x%Width, y%Height

	for row, b := range sprite {
		py := (startY + row) % Height
		for col := 0; col < 8; col++ {
			if b&(0x80>>col) == 0 {
				continue
			}
			px := (startX + col) % Width
			if d.pixels[py][px] {
				collision = true
			}
			d.pixels[py][px] = !d.pixels[py][px]
		}
	}

	return collision
}

// Refresh is a no-op: TermDisplay has no separate output buffer to flush.
func (d *TermDisplay) Refresh() {}

// PixelAt reports whether the pixel at (x, y) is set.
func (d *TermDisplay) PixelAt(x, y int) bool {
	return d.pixels[y%Height][x%Width]
}

// Snapshot returns a copy of the framebuffer, safe for the caller to
// retain or mutate without aliasing TermDisplay's internal state.
func (d *TermDisplay) Snapshot() [Height][Width]bool {
	return d.pixels
}

// Render draws the framebuffer as a block of '#'/' ' characters, one line
// per row, with no trailing newline on the last line.
func (d *TermDisplay) Render() string {
	buf := make([]byte, 0, Height*(Width+1))
	for y := 0; y < Height; y++ {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for x := 0; x < Width; x++ {
			if d.pixels[y][x] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, ' ')
			}
		}
	}
	return string(buf)
}
