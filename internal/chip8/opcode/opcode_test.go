package opcode

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		code uint16
		want Instruction
	}{
		{"00E0 CLS", 0x00E0, Instruction{Kind: CLS, Code: 0x00E0, X: 0x0, Y: 0xE, N: 0x0, NN: 0xE0, NNN: 0x0E0}},
		{"00EE RET", 0x00EE, Instruction{Kind: RET, Code: 0x00EE, X: 0x0, Y: 0xE, N: 0xE, NN: 0xEE, NNN: 0x0EE}},
		{"1NNN JP", 0x1234, Instruction{Kind: JP, Code: 0x1234, X: 0x2, Y: 0x3, N: 0x4, NN: 0x34, NNN: 0x234}},
		{"2NNN CALL", 0x2ABC, Instruction{Kind: CALL, Code: 0x2ABC, X: 0xA, Y: 0xB, N: 0xC, NN: 0xBC, NNN: 0xABC}},
		{"3XNN SE", 0x3A11, Instruction{Kind: SEVxNN, Code: 0x3A11, X: 0xA, Y: 0x1, N: 0x1, NN: 0x11, NNN: 0xA11}},
		{"4XNN SNE", 0x4A11, Instruction{Kind: SNEVxNN, Code: 0x4A11, X: 0xA, Y: 0x1, N: 0x1, NN: 0x11, NNN: 0xA11}},
		{"5XY0 SE reg", 0x5120, Instruction{Kind: SEVxVy, Code: 0x5120, X: 0x1, Y: 0x2, N: 0x0, NN: 0x20, NNN: 0x120}},
		{"5XY1 undocumented -> unknown", 0x5121, Instruction{Kind: Unknown, Code: 0x5121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"6XNN LD", 0x6A11, Instruction{Kind: LDVxNN, Code: 0x6A11, X: 0xA, Y: 0x1, N: 0x1, NN: 0x11, NNN: 0xA11}},
		{"7XNN ADD", 0x7A11, Instruction{Kind: AddVxNN, Code: 0x7A11, X: 0xA, Y: 0x1, N: 0x1, NN: 0x11, NNN: 0xA11}},
		{"8XY0 LD reg", 0x8120, Instruction{Kind: LDVxVy, Code: 0x8120, X: 0x1, Y: 0x2, N: 0x0, NN: 0x20, NNN: 0x120}},
		{"8XY1 OR", 0x8121, Instruction{Kind: OR, Code: 0x8121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"8XY2 AND", 0x8122, Instruction{Kind: AND, Code: 0x8122, X: 0x1, Y: 0x2, N: 0x2, NN: 0x22, NNN: 0x122}},
		{"8XY3 XOR", 0x8123, Instruction{Kind: XOR, Code: 0x8123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
		{"8XY4 ADD carry", 0x8124, Instruction{Kind: AddVxVy, Code: 0x8124, X: 0x1, Y: 0x2, N: 0x4, NN: 0x24, NNN: 0x124}},
		{"8XY5 SUB", 0x8125, Instruction{Kind: SUB, Code: 0x8125, X: 0x1, Y: 0x2, N: 0x5, NN: 0x25, NNN: 0x125}},
		{"8XY6 SHR", 0x8126, Instruction{Kind: SHR, Code: 0x8126, X: 0x1, Y: 0x2, N: 0x6, NN: 0x26, NNN: 0x126}},
		{"8XY7 SUBN", 0x8127, Instruction{Kind: SUBN, Code: 0x8127, X: 0x1, Y: 0x2, N: 0x7, NN: 0x27, NNN: 0x127}},
		{"8XYE SHL", 0x812E, Instruction{Kind: SHL, Code: 0x812E, X: 0x1, Y: 0x2, N: 0xE, NN: 0x2E, NNN: 0x12E}},
		{"8XY8 undocumented -> unknown", 0x8128, Instruction{Kind: Unknown, Code: 0x8128, X: 0x1, Y: 0x2, N: 0x8, NN: 0x28, NNN: 0x128}},
		{"9XY0 SNE reg", 0x9120, Instruction{Kind: SNEVxVy, Code: 0x9120, X: 0x1, Y: 0x2, N: 0x0, NN: 0x20, NNN: 0x120}},
		{"9XY1 undocumented -> unknown", 0x9121, Instruction{Kind: Unknown, Code: 0x9121, X: 0x1, Y: 0x2, N: 0x1, NN: 0x21, NNN: 0x121}},
		{"ANNN LD I", 0xA123, Instruction{Kind: LDINNN, Code: 0xA123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
		{"BNNN JP V0", 0xB123, Instruction{Kind: JPV0NNN, Code: 0xB123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
		{"CXNN RND", 0xC1FF, Instruction{Kind: RND, Code: 0xC1FF, X: 0x1, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0x1FF}},
		{"DXYN DRW", 0xD125, Instruction{Kind: DRW, Code: 0xD125, X: 0x1, Y: 0x2, N: 0x5, NN: 0x25, NNN: 0x125}},
		{"EX9E SKP", 0xE19E, Instruction{Kind: SKP, Code: 0xE19E, X: 0x1, Y: 0x9, N: 0xE, NN: 0x9E, NNN: 0x19E}},
		{"EXA1 SKNP", 0xE1A1, Instruction{Kind: SKNP, Code: 0xE1A1, X: 0x1, Y: 0xA, N: 0x1, NN: 0xA1, NNN: 0x1A1}},
		{"EX00 undocumented -> unknown", 0xE100, Instruction{Kind: Unknown, Code: 0xE100, X: 0x1, Y: 0x0, N: 0x0, NN: 0x00, NNN: 0x100}},
		{"FX07 LD Vx,DT", 0xF107, Instruction{Kind: LDVxDT, Code: 0xF107, X: 0x1, Y: 0x0, N: 0x7, NN: 0x07, NNN: 0x107}},
		{"FX0A LD Vx,K", 0xF10A, Instruction{Kind: LDVxK, Code: 0xF10A, X: 0x1, Y: 0x0, N: 0xA, NN: 0x0A, NNN: 0x10A}},
		{"FX15 LD DT,Vx", 0xF115, Instruction{Kind: LDDTVx, Code: 0xF115, X: 0x1, Y: 0x1, N: 0x5, NN: 0x15, NNN: 0x115}},
		{"FX18 LD ST,Vx", 0xF118, Instruction{Kind: LDSTVx, Code: 0xF118, X: 0x1, Y: 0x1, N: 0x8, NN: 0x18, NNN: 0x118}},
		{"FX1E ADD I,Vx", 0xF11E, Instruction{Kind: AddIVx, Code: 0xF11E, X: 0x1, Y: 0x1, N: 0xE, NN: 0x1E, NNN: 0x11E}},
		{"FX29 LD F,Vx", 0xF129, Instruction{Kind: LDFVx, Code: 0xF129, X: 0x1, Y: 0x2, N: 0x9, NN: 0x29, NNN: 0x129}},
		{"FX33 LD B,Vx", 0xF133, Instruction{Kind: LDBVx, Code: 0xF133, X: 0x1, Y: 0x3, N: 0x3, NN: 0x33, NNN: 0x133}},
		{"FX55 LD [I],Vx", 0xF155, Instruction{Kind: LDIVx, Code: 0xF155, X: 0x1, Y: 0x5, N: 0x5, NN: 0x55, NNN: 0x155}},
		{"FX65 LD Vx,[I]", 0xF165, Instruction{Kind: LDVxI, Code: 0xF165, X: 0x1, Y: 0x6, N: 0x5, NN: 0x65, NNN: 0x165}},
		{"FXFF undocumented -> unknown", 0xF1FF, Instruction{Kind: Unknown, Code: 0xF1FF, X: 0x1, Y: 0xF, N: 0xF, NN: 0xFF, NNN: 0x1FF}},
		{"0NNN machine code -> unknown", 0x0123, Instruction{Kind: Unknown, Code: 0x0123, X: 0x1, Y: 0x2, N: 0x3, NN: 0x23, NNN: 0x123}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Decode(tc.code))
		})
	}
}

func TestDecodeIsTotal(t *testing.T) {
	t.Parallel()

	// every possible word decodes without panicking, and every Kind has a name
	for code := 0; code <= 0xFFFF; code++ {
		in := Decode(uint16(code))
		require.NotEmpty(t, in.Kind.String())
	}
}
