// Package keypad translates between the engine's closed Key enumeration
// and the 16-key hex keypad contract CHIP-8 programs expect. Key has no
// variant for hex digit 0: only Key1..KeyF are real keys, and Unknown
// doubles as "the zero key, as far as the Key type is concerned" — that
// asymmetry is deliberate, not an oversight.
package keypad

// Key is one of the 15 addressable hex keys (1-F), or Unknown — which also
// stands in for hex digit 0, since Key itself has no variant for it.
type Key int

const (
	Unknown Key = iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// numKeys is the size of the physical keypad latch array: one slot per
// hex digit 0x0-0xF.
const numKeys = 16

var indexOf = map[Key]int{
	Key1: 0, Key2: 1, Key3: 2, Key4: 3,
	Key5: 4, Key6: 5, Key7: 6, Key8: 7,
	Key9: 8, KeyA: 9, KeyB: 10, KeyC: 11,
	KeyD: 12, KeyE: 13, KeyF: 14,
}

// FromByte maps a hex nibble to its Key. 0x1-0xF map to the corresponding
// key; 0x0 and any other value map to Unknown.
func FromByte(b uint8) Key {
	switch b {
	case 0x1:
		return Key1
	case 0x2:
		return Key2
	case 0x3:
		return Key3
	case 0x4:
		return Key4
	case 0x5:
		return Key5
	case 0x6:
		return Key6
	case 0x7:
		return Key7
	case 0x8:
		return Key8
	case 0x9:
		return Key9
	case 0xA:
		return KeyA
	case 0xB:
		return KeyB
	case 0xC:
		return KeyC
	case 0xD:
		return KeyD
	case 0xE:
		return KeyE
	case 0xF:
		return KeyF
	default:
		return Unknown
	}
}

// Byte is the inverse of FromByte; Unknown maps to 0x0.
func (k Key) Byte() uint8 {
	switch k {
	case Key1:
		return 0x1
	case Key2:
		return 0x2
	case Key3:
		return 0x3
	case Key4:
		return 0x4
	case Key5:
		return 0x5
	case Key6:
		return 0x6
	case Key7:
		return 0x7
	case Key8:
		return 0x8
	case Key9:
		return 0x9
	case KeyA:
		return 0xA
	case KeyB:
		return 0xB
	case KeyC:
		return 0xC
	case KeyD:
		return 0xD
	case KeyE:
		return 0xE
	case KeyF:
		return 0xF
	default:
		return 0x0
	}
}

// Index returns a dense index in [0,14] for one of the 15 real keys, or
// false for Unknown.
func (k Key) Index() (int, bool) {
	i, ok := indexOf[k]
	return i, ok
}

// Bank is the 16-slot latched "is pressed" state the engine reads from and
// the host writes to via Set. Slot 0 (hex digit 0) is reachable only by
// its raw byte code: Key itself has no variant for it.
type Bank struct {
	pressed [numKeys]bool
}

// NewBank returns a Bank with every key released.
func NewBank() *Bank {
	return &Bank{}
}

// Set latches or releases the key identified by its hex byte value
// (0x0-0xF); values outside that range are ignored.
func (b *Bank) Set(code uint8, isPressed bool) {
	if code >= numKeys {
		return
	}
	b.pressed[code] = isPressed
}

// SetKey latches or releases k by its Key value. Unknown is a no-op: it
// carries no information about which physical key to affect.
func (b *Bank) SetKey(k Key, isPressed bool) {
	if k == Unknown {
		return
	}
	b.pressed[k.Byte()] = isPressed
}

// PressedCode reports whether the key at the given hex byte value is
// currently latched down.
func (b *Bank) PressedCode(code uint8) bool {
	if code >= numKeys {
		return false
	}
	return b.pressed[code]
}

// Pressed reports whether k is currently latched down. Unknown is never
// reported pressed through this method, even though hex digit 0 may be
// latched — query PressedCode(0) for that.
func (b *Bank) Pressed(k Key) bool {
	if k == Unknown {
		return false
	}
	return b.pressed[k.Byte()]
}

// AnyPressed returns the lowest-Key-valued, currently-latched key, or
// (Unknown, false) if nothing among Key1..KeyF is pressed. Hex digit 0
// alone being pressed is not observable through this method, since Key
// has no variant to name it.
func (b *Bank) AnyPressed() (Key, bool) {
	for code := uint8(0x1); code <= 0xF; code++ {
		if b.pressed[code] {
			return FromByte(code), true
		}
	}
	return Unknown, false
}
