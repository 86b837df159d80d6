package chip8

import (
	"fmt"
	"os"
	"path"
)

// Rom is a ROM image read from disk: its base filename (for window
// titles/logging) and the raw big-endian byte stream LoadROM copies into
// memory at EntryPoint.
type Rom struct {
	Name string
	Data []byte
}

// NewRomFromFile reads path and returns a Rom, failing if the file cannot
// be read or does not fit in the space between EntryPoint and the end of
// memory.
func NewRomFromFile(romPath string) (Rom, error) {
	data, err := os.ReadFile(romPath)
	if err != nil {
		return Rom{}, fmt.Errorf("read data from rom file %s: %w", romPath, err)
	}

	if len(data) > RomMaxSize {
		return Rom{}, fmt.Errorf("rom file %s is too large. actual size is %d bytes, max size is %d bytes",
			romPath, len(data), RomMaxSize,
		)
	}

	return Rom{
		Name: path.Base(romPath),
		Data: data,
	}, nil
}
