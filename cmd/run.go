package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gopherdev/chip8vm/internal/beep"
	"github.com/gopherdev/chip8vm/internal/chip8"
	"github.com/gopherdev/chip8vm/internal/chip8/video"
	"github.com/gopherdev/chip8vm/internal/config"
	"github.com/gopherdev/chip8vm/internal/renderer"
)

var runCmd = &cobra.Command{
	Use:   "run path/to/rom",
	Short: "run a ROM in the chip8vm emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  runRom,
}

func init() {
	flags := runCmd.Flags()
	flags.String("fg-color", config.Default().FgColor, "rgb(a) foreground color in hex")
	flags.String("bg-color", config.Default().BgColor, "rgb(a) background color in hex")
	flags.Int("tps", config.Default().TPS, "instruction clock rate, in Hz")
	flags.Float64("volume", config.Default().Volume, "beeper volume, 0.0-1.0")
	flags.Bool("headless", config.Default().Headless, "run without a GUI, rendering ASCII frames to stdout")
}

func runRom(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg.RomPath = args[0]

	rom, err := chip8.NewRomFromFile(cfg.RomPath)
	if err != nil {
		return fmt.Errorf("couldn't create a rom from the file: %w", err)
	}

	if cfg.Headless {
		return runHeadless(rom, cfg)
	}
	return runWindowed(rom, cfg)
}

func runHeadless(rom chip8.Rom, cfg config.Config) error {
	display := video.NewTermDisplay()
	machine := chip8.NewMachine(display)
	if err := machine.LoadROM(rom.Data); err != nil {
		return fmt.Errorf("load rom: %w", err)
	}

	instructionsPerTick := cfg.TPS / 60
	if instructionsPerTick < 1 {
		instructionsPerTick = 1
	}

	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	for range ticker.C {
		for i := 0; i < instructionsPerTick; i++ {
			if err := machine.Step(); err != nil {
				fmt.Fprintf(os.Stderr, "%s\n", err.Error())
				return nil
			}
		}
		machine.TickTimers()

		fmt.Print("\033[H\033[2J")
		fmt.Println(rom.Name)
		fmt.Println(display.Render())
	}
	return nil
}

func runWindowed(rom chip8.Rom, cfg config.Config) error {
	fgColor, err := renderer.DecodeColorFromHex(cfg.FgColor)
	if err != nil {
		return fmt.Errorf("couldn't decode fg color from hex %s: %w", cfg.FgColor, err)
	}
	bgColor, err := renderer.DecodeColorFromHex(cfg.BgColor)
	if err != nil {
		return fmt.Errorf("couldn't decode bg color from hex %s: %w", cfg.BgColor, err)
	}

	display := renderer.NewEbitenDisplay()
	machine := chip8.NewMachine(display)
	if err := machine.LoadROM(rom.Data); err != nil {
		return fmt.Errorf("load rom: %w", err)
	}

	beeper, err := beep.New()
	if err != nil {
		return fmt.Errorf("couldn't create a beeper: %w", err)
	}
	beeper.SetVolume(cfg.Volume)

	game := renderer.New(machine, display, beeper, rom.Name, renderer.Config{
		FgColor: fgColor,
		BgColor: bgColor,
		ClockHz: cfg.TPS,
	})
	if err := game.Run(); err != nil {
		return fmt.Errorf("couldn't run a renderer: %w", err)
	}
	return nil
}
