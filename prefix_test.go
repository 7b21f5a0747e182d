package unicol

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theodore-s-beers/unicol/internal/table"
)

func TestSafePrefix(t *testing.T) {
	t.Parallel()

	singles := map[uint32][]table.Weights{
		'a': row(0x2075, 0x20, 0x2),
		'b': row(0x2086, 0x20, 0x2),
		'c': row(0x2097, 0x20, 0x2),
		'-': variableRow(0x0209, 0x20, 0x2),
		// A primary ignorable.
		0x0301: row(0, 0x24, 0x2),
		0x0438: row(0x20B4, 0x20, 0x2),
	}
	multis := []table.MultiEntry{
		{Key: []uint32{0x0438, 0x0306}, Rows: row(0x20BB, 0x20, 0x2)},
	}
	tab := mustTable(t, false, singles, multis)

	tests := []struct {
		name string
		a, b []uint32
		want int
	}{
		{"identical prefix", []uint32{'a', 'b', 'c'}, []uint32{'a', 'b', 'x'}, 2},
		{"no common prefix", []uint32{'a'}, []uint32{'b'}, 0},
		{"whole shorter string", []uint32{'a', 'b'}, []uint32{'a', 'b', 'c'}, 2},
		// A contraction starter ends the prefix scan.
		{"stops before contraction starter", []uint32{'a', 0x0438, 'b'}, []uint32{'a', 0x0438, 'c'}, 1},
		// The code point before the cut must not be variable.
		{"variable before cut", []uint32{'a', '-', 'b'}, []uint32{'a', '-', 'c'}, 0},
		// Nor a primary ignorable.
		{"ignorable before cut", []uint32{'a', 0x0301, 'b'}, []uint32{'a', 0x0301, 'c'}, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, safePrefix(tt.a, tt.b, tab))
		})
	}
}
