package unicol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenSortKey(t *testing.T) {
	t.Parallel()

	ces := []ce{
		{0x2075, 0x20, 0x2},
		{0, 0x24, 0x2},
		{0x2086, 0x20, 0x8},
	}

	// Level-major, zero weights dropped, one zero between levels.
	assert.Equal(t, []uint16{
		0x2075, 0x2086,
		0,
		0x20, 0x24, 0x20,
		0,
		0x2, 0x2, 0x8,
	}, flattenSortKey(ces, false))
}

func TestFlattenSortKeyShifted(t *testing.T) {
	t.Parallel()

	ces := []ce{
		{0, 0, 0, 0x0209},
		{0x2075, 0x20, 0x2, 0xFFFF},
		{0, 0, 0, 0},
	}

	assert.Equal(t, []uint16{
		0x2075,
		0,
		0x20,
		0,
		0x2,
		0,
		0x0209, 0xFFFF,
	}, flattenSortKey(ces, true))
}

func TestFlattenSortKeyEmpty(t *testing.T) {
	t.Parallel()

	// Only the level separators remain.
	assert.Equal(t, []uint16{0, 0}, flattenSortKey(nil, false))
	assert.Equal(t, []uint16{0, 0, 0}, flattenSortKey(nil, true))
}

func TestFlattenSortKeySeparatorCount(t *testing.T) {
	t.Parallel()

	ces := []ce{
		{0x2075, 0x20, 0x2, 0xFFFF},
		{0x2086, 0x20, 0x2, 0xFFFF},
	}

	for _, shifting := range []bool{false, true} {
		levels := 3
		if shifting {
			levels = 4
		}
		key := flattenSortKey(ces, shifting)
		zeros := 0
		for _, w := range key {
			if w == 0 {
				zeros++
			}
		}
		assert.Equal(t, levels-1, zeros, "shifting=%v", shifting)
	}
}

func TestCompareSortKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CompareSortKeys(nil, nil))
	assert.Equal(t, 0, CompareSortKeys([]uint16{1, 2}, []uint16{1, 2}))
	assert.Equal(t, -1, CompareSortKeys([]uint16{1, 2}, []uint16{1, 3}))
	assert.Equal(t, 1, CompareSortKeys([]uint16{2}, []uint16{1, 9}))
	assert.Equal(t, -1, CompareSortKeys([]uint16{1}, []uint16{1, 0}))
	assert.Equal(t, 1, CompareSortKeys([]uint16{1, 0}, []uint16{1}))
}
