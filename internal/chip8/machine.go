// Package chip8 wires the decoder, memory, register file, keypad, and
// display sub-packages into a single CHIP-8 execution engine: fetch,
// decode, and dispatch against the shared machine state, with a typed
// error on an unrecognized opcode rather than logging and continuing.
package chip8

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/gopherdev/chip8vm/internal/chip8/cpu"
	"github.com/gopherdev/chip8vm/internal/chip8/keypad"
	"github.com/gopherdev/chip8vm/internal/chip8/memory"
	"github.com/gopherdev/chip8vm/internal/chip8/opcode"
	"github.com/gopherdev/chip8vm/internal/chip8/video"
)

// font is the built-in 16-glyph, 5-byte-per-glyph hex digit font, preloaded
// at the bottom of memory so FX29 can look up glyph I by V[X]*5.
//
// http://devernay.free.fr/hacks/chip8/C8TECH10.HTM#font
var font = []byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

const (
	// EntryPoint is the address a loaded ROM starts executing at.
	EntryPoint = 0x200
	// RomMaxSize is the largest ROM that fits between EntryPoint and the
	// end of memory.
	RomMaxSize = memory.Size - EntryPoint
)

// ErrorKind tags the one way the engine itself (as opposed to one of its
// memory/cpu collaborators) can fail: decoding an instruction word with no
// known meaning.
type ErrorKind int

// InvalidOperationCode names a fetched word that opcode.Decode could not
// recognize.
const InvalidOperationCode ErrorKind = 0

// VMError is the error Step returns for its own InvalidOperationCode case.
// Failures reported by the memory/cpu collaborators are not converted to
// VMError: Step returns them as *memory.Error or *cpu.Error.
type VMError struct {
	Kind ErrorKind
	Code uint16
}

func (e *VMError) Error() string {
	return fmt.Sprintf("illegal operation code '%04X'!", e.Code)
}

// Machine is a complete CHIP-8 interpreter: memory, registers, a call
// stack, timers, a keypad latch, and a display collaborator it draws
// against.
type Machine struct {
	mem  *memory.Memory
	reg  *cpu.Registers
	keys *keypad.Bank
	disp video.Display
	rng  *rand.Rand

	i  uint16
	pc uint16

	dt uint8
	st uint8
}

// NewMachine returns a Machine in its reset state: font sprites preloaded
// at 0x000-0x04F, PC at EntryPoint, everything else zeroed. display is the
// collaborator Step's DRW/CLS instructions draw against. CXNN's PRNG is
// seeded from the current time: a fixed seed would make RND replay
// identically across every run of the program, regressing any ROM that
// uses CXNN for enemy or item placement.
func NewMachine(display video.Display) *Machine {
	return NewMachineWithRand(display, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewMachineWithRand is NewMachine with an injectable RNG, for tests that
// need CXNN to be deterministic.
func NewMachineWithRand(display video.Display, rng *rand.Rand) *Machine {
	m := &Machine{
		mem:  memory.New(),
		reg:  cpu.New(),
		keys: keypad.NewBank(),
		disp: display,
		rng:  rng,
		pc:   EntryPoint,
	}
	// Size is fixed and font is 80 bytes long; this can never fail.
	_ = m.mem.Write(0, len(font), font)
	return m
}

// LoadROM copies data into memory starting at EntryPoint. It fails if data
// does not fit in the space between EntryPoint and the end of memory.
func (m *Machine) LoadROM(data []byte) error {
	if len(data) > RomMaxSize {
		return fmt.Errorf("rom is too large: %d bytes, max is %d bytes", len(data), RomMaxSize)
	}
	return m.mem.Write(EntryPoint, EntryPoint+len(data), data)
}

// KeyDown latches k as pressed.
func (m *Machine) KeyDown(k keypad.Key) {
	m.keys.SetKey(k, true)
}

// KeyUp latches k as released.
func (m *Machine) KeyUp(k keypad.Key) {
	m.keys.SetKey(k, false)
}

// KeyDownCode latches the hex digit code (0x0-0xF) as pressed, reaching
// hex digit 0, which keypad.Key itself has no variant for.
func (m *Machine) KeyDownCode(code uint8) {
	m.keys.Set(code, true)
}

// KeyUpCode latches the hex digit code (0x0-0xF) as released.
func (m *Machine) KeyUpCode(code uint8) {
	m.keys.Set(code, false)
}

// KeyCodePressed reports whether the hex digit code (0x0-0xF) is currently
// latched down, for hosts that want to query keypad state directly (e.g. a
// keypad overlay) rather than through the Key enum.
func (m *Machine) KeyCodePressed(code uint8) bool {
	return m.keys.PressedCode(code)
}

// TickTimers decrements DT and ST by one each, if nonzero. The host calls
// this at 60 Hz; it never fails.
func (m *Machine) TickTimers() {
	if m.dt > 0 {
		m.dt--
	}
	if m.st > 0 {
		m.st--
	}
}

// SoundActive reports whether the sound timer is nonzero, i.e. whether the
// beeper should be on.
func (m *Machine) SoundActive() bool {
	return m.st > 0
}

// FramebufferSnapshot returns a copy of the current framebuffer. Only
// meaningful when the Machine's display is a *video.TermDisplay; a
// GUI-backed Display should be queried through its own API instead.
func (m *Machine) FramebufferSnapshot() [video.Height][video.Width]bool {
	if td, ok := m.disp.(*video.TermDisplay); ok {
		return td.Snapshot()
	}
	return [video.Height][video.Width]bool{}
}

// PC returns the current program counter, for tests and diagnostics.
func (m *Machine) PC() uint16 { return m.pc }

// Step runs one fetch/decode/execute cycle: fetch the big-endian word at
// PC, advance PC by 2, decode it, and dispatch. An unrecognized opcode
// returns a *VMError; any out-of-range memory or register/stack access
// returns the underlying memory.Error or cpu.Error, wrapped with context
// for fetch, stack and memory failures and returned as is for register
// index failures.
func (m *Machine) Step() error {
	hi, err := m.mem.Get(int(m.pc))
	if err != nil {
		return fmt.Errorf("fetch at pc=%04X: %w", m.pc, err)
	}
	lo, err := m.mem.Get(int(m.pc) + 1)
	if err != nil {
		return fmt.Errorf("fetch at pc=%04X: %w", m.pc, err)
	}
	code := uint16(hi)<<8 | uint16(lo)
	m.pc += 2

	in := opcode.Decode(code)

	switch in.Kind {
	case opcode.Unknown:
		return &VMError{Kind: InvalidOperationCode, Code: code}
	case opcode.CLS:
		m.disp.Clear()
	case opcode.RET:
		addr, err := m.reg.StackPop()
		if err != nil {
			return fmt.Errorf("RET: %w", err)
		}
		m.pc = addr
	case opcode.JP:
		m.pc = in.NNN
	case opcode.CALL:
		if err := m.reg.StackPush(m.pc); err != nil {
			return fmt.Errorf("CALL: %w", err)
		}
		m.pc = in.NNN
	case opcode.SEVxNN:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		if vx == in.NN {
			m.pc += 2
		}
	case opcode.SNEVxNN:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		if vx != in.NN {
			m.pc += 2
		}
	case opcode.SEVxVy:
		vx, vy, err := m.regPair(in.X, in.Y)
		if err != nil {
			return err
		}
		if vx == vy {
			m.pc += 2
		}
	case opcode.LDVxNN:
		if err := m.reg.RegPut(int(in.X), in.NN); err != nil {
			return err
		}
	case opcode.AddVxNN:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		if err := m.reg.RegPut(int(in.X), vx+in.NN); err != nil {
			return err
		}
	case opcode.LDVxVy:
		vy, err := m.reg.RegGet(int(in.Y))
		if err != nil {
			return err
		}
		if err := m.reg.RegPut(int(in.X), vy); err != nil {
			return err
		}
	case opcode.OR:
		if err := m.bitwise(in.X, in.Y, func(a, b uint8) uint8 { return a | b }); err != nil {
			return err
		}
	case opcode.AND:
		if err := m.bitwise(in.X, in.Y, func(a, b uint8) uint8 { return a & b }); err != nil {
			return err
		}
	case opcode.XOR:
		if err := m.bitwise(in.X, in.Y, func(a, b uint8) uint8 { return a ^ b }); err != nil {
			return err
		}
	case opcode.AddVxVy:
		vx, vy, err := m.regPair(in.X, in.Y)
		if err != nil {
			return err
		}
		sum := uint16(vx) + uint16(vy)
		if err := m.reg.RegPut(int(in.X), uint8(sum)); err != nil {
			return err
		}
		if sum > 0xFF {
			m.reg.RegPutVF(1)
		} else {
			m.reg.RegPutVF(0)
		}
	case opcode.SUB:
		vx, vy, err := m.regPair(in.X, in.Y)
		if err != nil {
			return err
		}
		if err := m.reg.RegPut(int(in.X), vx-vy); err != nil {
			return err
		}
		if vx >= vy {
			m.reg.RegPutVF(1)
		} else {
			m.reg.RegPutVF(0)
		}
	case opcode.SHR:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		lsb := vx & 0x1
		if err := m.reg.RegPut(int(in.X), vx>>1); err != nil {
			return err
		}
		m.reg.RegPutVF(lsb)
	case opcode.SUBN:
		vx, vy, err := m.regPair(in.X, in.Y)
		if err != nil {
			return err
		}
		if err := m.reg.RegPut(int(in.X), vy-vx); err != nil {
			return err
		}
		if vy >= vx {
			m.reg.RegPutVF(1)
		} else {
			m.reg.RegPutVF(0)
		}
	case opcode.SHL:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		msb := (vx & 0x80) >> 7
		if err := m.reg.RegPut(int(in.X), vx<<1); err != nil {
			return err
		}
		m.reg.RegPutVF(msb)
	case opcode.SNEVxVy:
		vx, vy, err := m.regPair(in.X, in.Y)
		if err != nil {
			return err
		}
		if vx != vy {
			m.pc += 2
		}
	case opcode.LDINNN:
		m.i = in.NNN
	case opcode.JPV0NNN:
		v0, err := m.reg.RegGet(0)
		if err != nil {
			return err
		}
		m.pc = in.NNN + uint16(v0)
	case opcode.RND:
		if err := m.reg.RegPut(int(in.X), uint8(m.rng.Intn(256))&in.NN); err != nil {
			return err
		}
	case opcode.DRW:
		if err := m.execDraw(in); err != nil {
			return err
		}
	case opcode.SKP:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		if m.keys.Pressed(keypad.FromByte(vx)) {
			m.pc += 2
		}
	case opcode.SKNP:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		if !m.keys.Pressed(keypad.FromByte(vx)) {
			m.pc += 2
		}
	case opcode.LDVxDT:
		if err := m.reg.RegPut(int(in.X), m.dt); err != nil {
			return err
		}
	case opcode.LDVxK:
		if k, ok := m.keys.AnyPressed(); ok {
			if err := m.reg.RegPut(int(in.X), k.Byte()); err != nil {
				return err
			}
		} else {
			m.pc -= 2
		}
	case opcode.LDDTVx:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		m.dt = vx
	case opcode.LDSTVx:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		m.st = vx
	case opcode.AddIVx:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		m.i = (m.i + uint16(vx)) & 0x0FFF
	case opcode.LDFVx:
		vx, err := m.reg.RegGet(int(in.X))
		if err != nil {
			return err
		}
		m.i = uint16(vx) * 5
	case opcode.LDBVx:
		if err := m.execBCD(in); err != nil {
			return err
		}
	case opcode.LDIVx:
		if err := m.execStore(in); err != nil {
			return err
		}
	case opcode.LDVxI:
		if err := m.execLoad(in); err != nil {
			return err
		}
	}

	return nil
}

func (m *Machine) regPair(x, y uint8) (uint8, uint8, error) {
	vx, err := m.reg.RegGet(int(x))
	if err != nil {
		return 0, 0, err
	}
	vy, err := m.reg.RegGet(int(y))
	if err != nil {
		return 0, 0, err
	}
	return vx, vy, nil
}

func (m *Machine) bitwise(x, y uint8, f func(a, b uint8) uint8) error {
	vx, vy, err := m.regPair(x, y)
	if err != nil {
		return err
	}
	return m.reg.RegPut(int(x), f(vx, vy))
}

func (m *Machine) execDraw(in opcode.Instruction) error {
	vx, vy, err := m.regPair(in.X, in.Y)
	if err != nil {
		return err
	}
	sprite, err := m.mem.Read(int(m.i), int(m.i)+int(in.N))
	if err != nil {
		return fmt.Errorf("DRW sprite fetch: %w", err)
	}
	collision := m.disp.Draw(int(vx), int(vy), sprite)
	if collision {
		m.reg.RegPutVF(1)
	} else {
		m.reg.RegPutVF(0)
	}
	return nil
}

func (m *Machine) execBCD(in opcode.Instruction) error {
	vx, err := m.reg.RegGet(int(in.X))
	if err != nil {
		return err
	}
	digits := [3]byte{vx / 100, (vx / 10) % 10, vx % 10}
	if err := m.mem.Write(int(m.i), int(m.i)+3, digits[:]); err != nil {
		return fmt.Errorf("BCD store: %w", err)
	}
	return nil
}

func (m *Machine) execStore(in opcode.Instruction) error {
	for x := 0; x <= int(in.X); x++ {
		v, err := m.reg.RegGet(x)
		if err != nil {
			return err
		}
		if err := m.mem.Put(int(m.i)+x, v); err != nil {
			return fmt.Errorf("register store at I+%d: %w", x, err)
		}
	}
	return nil
}

func (m *Machine) execLoad(in opcode.Instruction) error {
	for x := 0; x <= int(in.X); x++ {
		v, err := m.mem.Get(int(m.i) + x)
		if err != nil {
			return fmt.Errorf("register load at I+%d: %w", x, err)
		}
		if err := m.reg.RegPut(x, v); err != nil {
			return err
		}
	}
	return nil
}
