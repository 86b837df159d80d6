package keypad

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromByte_RealKeysRoundTrip(t *testing.T) {
	t.Parallel()

	for b := uint8(0x1); b <= 0xF; b++ {
		k := FromByte(b)
		require.NotEqual(t, Unknown, k)
		require.Equal(t, b, k.Byte())
	}
}

func TestFromByte_ZeroAndOutOfRangeAreUnknown(t *testing.T) {
	t.Parallel()

	require.Equal(t, Unknown, FromByte(0x0))
	require.Equal(t, Unknown, FromByte(0x10))
	require.Equal(t, Unknown, FromByte(0xFF))
}

func TestKey_ByteUnknownIsZero(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(0x0), Unknown.Byte())
}

func TestKey_IndexRealKeysAreDense(t *testing.T) {
	t.Parallel()

	seen := make(map[int]bool)
	for b := uint8(0x1); b <= 0xF; b++ {
		i, ok := FromByte(b).Index()
		require.True(t, ok)
		require.GreaterOrEqual(t, i, 0)
		require.LessOrEqual(t, i, 14)
		require.False(t, seen[i], "index %d reused", i)
		seen[i] = true
	}
	require.Len(t, seen, 15)
}

func TestKey_IndexUnknown(t *testing.T) {
	t.Parallel()

	_, ok := Unknown.Index()
	require.False(t, ok)
}

func TestBank_SetAndPressedCode(t *testing.T) {
	t.Parallel()

	b := NewBank()
	require.False(t, b.PressedCode(0x5))

	b.Set(0x5, true)
	require.True(t, b.PressedCode(0x5))

	b.Set(0x5, false)
	require.False(t, b.PressedCode(0x5))
}

func TestBank_SetOutOfRangeIsIgnored(t *testing.T) {
	t.Parallel()

	b := NewBank()
	b.Set(0x10, true)
	require.False(t, b.PressedCode(0x10))
}

func TestBank_SetKeyAndPressed(t *testing.T) {
	t.Parallel()

	b := NewBank()
	require.False(t, b.Pressed(KeyA))

	b.SetKey(KeyA, true)
	require.True(t, b.Pressed(KeyA))
	require.True(t, b.PressedCode(0xA))

	b.SetKey(KeyA, false)
	require.False(t, b.Pressed(KeyA))
}

func TestBank_SetKeyUnknownIsNoop(t *testing.T) {
	t.Parallel()

	b := NewBank()
	b.Set(0x0, true)
	require.True(t, b.PressedCode(0x0), "digit 0 is reachable only by raw code")

	b.SetKey(Unknown, false)
	require.True(t, b.PressedCode(0x0), "SetKey(Unknown, ...) must not touch slot 0")
}

func TestBank_PressedUnknownIsAlwaysFalse(t *testing.T) {
	t.Parallel()

	b := NewBank()
	b.Set(0x0, true)
	require.False(t, b.Pressed(Unknown), "Pressed(Unknown) can't observe digit 0")
}

func TestBank_AnyPressedNothingDown(t *testing.T) {
	t.Parallel()

	b := NewBank()
	k, ok := b.AnyPressed()
	require.False(t, ok)
	require.Equal(t, Unknown, k)
}

func TestBank_AnyPressedLowestKeyWins(t *testing.T) {
	t.Parallel()

	b := NewBank()
	b.Set(0x9, true)
	b.Set(0x3, true)
	b.Set(0xF, true)

	k, ok := b.AnyPressed()
	require.True(t, ok)
	require.Equal(t, Key3, k)
}

func TestBank_AnyPressedIgnoresDigitZero(t *testing.T) {
	t.Parallel()

	b := NewBank()
	b.Set(0x0, true)

	k, ok := b.AnyPressed()
	require.False(t, ok)
	require.Equal(t, Unknown, k)
}
