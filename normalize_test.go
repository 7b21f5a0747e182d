package unicol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFCDCheck(t *testing.T) {
	t.Parallel()

	fcd := map[uint32]uint16{
		// U+00E9 decomposes to e + combining acute: lead 0, trail 230.
		0x00E9: 0x00E6,
	}

	tests := []struct {
		name string
		cv   []uint32
		want bool
	}{
		{"empty", nil, true},
		{"ascii", []uint32{'a', 'b', 'c'}, true},
		{"hangul always decomposes", []uint32{0xAC00}, false},
		{"tibetan 0F81 always decomposes", []uint32{0x0F81}, false},
		{"ordered marks", []uint32{'e', 0x0334, 0x0306}, true},
		{"disordered marks", []uint32{'e', 0x0306, 0x0334}, false},
		{"composed with trailing ccc", []uint32{0x00E9, 0x0301}, true},
		// A mark of class 1 after the trail class 230 of U+00E9 means
		// decomposition would reorder.
		{"mark blocked by trail", []uint32{0x00E9, 0x0334}, false},
		// Low code points reset the combining state.
		{"ascii resets trail", []uint32{0x00E9, 'x', 0x0334}, true},
		{"surrogate tolerated", []uint32{0xD800, 'a'}, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, fcdOK(tt.cv, fcd))
		})
	}
}

func TestToNFDCodePoints(t *testing.T) {
	t.Parallel()

	fcd := map[uint32]uint16{0x00E9: 0x00E6}

	// FCD passes: code points come back verbatim, composed form intact.
	assert.Equal(t, []uint32{0x00E9}, toNFDCodePoints("é", fcd))

	// FCD fails on disordered marks: full decomposition reorders them.
	got := toNFDCodePoints("e\u0306\u0334", fcd)
	assert.Equal(t, []uint32{'e', 0x0334, 0x0306}, got)

	// Hangul is always decomposed.
	assert.Equal(t, []uint32{0x1100, 0x1161}, toNFDCodePoints("가", fcd))
}

func TestCCC(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint8(0), ccc('a'))
	assert.Equal(t, uint8(0), ccc(0x0438))
	assert.Equal(t, uint8(1), ccc(0x0334))
	assert.Equal(t, uint8(202), ccc(0x0327))
	assert.Equal(t, uint8(230), ccc(0x0306))
	assert.Equal(t, uint8(0), ccc(0xD800))
	assert.Equal(t, uint8(0), ccc(0x110000))
}
