// Package table holds the collation weight tables and the FCD table
// consumed by the unicol package. Tables are decoded once from embedded
// blobs and are immutable afterwards; concurrent readers share them.
package table

import (
	"encoding/binary"
	"fmt"
)

// Weights is one row of collation weights for a table entry. A key may
// map to several rows (an expansion).
type Weights struct {
	Variable  bool
	Primary   uint16
	Secondary uint16
	Tertiary  uint16
}

// MultiEntry is a contraction: a key of two or three code points mapped
// to its weight rows.
type MultiEntry struct {
	Key  []uint32
	Rows []Weights
}

// lowLimit bounds the fast-path array for frequent low code points.
// U+004C and U+006C are excluded because they can start contractions.
const lowLimit = 183

// Table is one fully assembled weight table (DUCET or CLDR root).
type Table struct {
	cldr    bool
	singles map[uint32][]Weights
	multis  map[string][]Weights

	// low holds the single weight row for code points below lowLimit,
	// except U+004C and U+006C. Derived from singles.
	low [lowLimit][]Weights

	// needTwo and needThree hold the code points that can begin a
	// contraction of two or three code points. Derived from the multis
	// keys, so the sets stay correct for both table sources.
	needTwo   map[uint32]bool
	needThree map[uint32]bool
}

// New assembles a Table from singles and multis entries. It is called by
// the blob decoder; tests use it to build small synthetic tables.
func New(cldr bool, singles map[uint32][]Weights, multis []MultiEntry) (*Table, error) {
	t := &Table{
		cldr:      cldr,
		singles:   singles,
		multis:    make(map[string][]Weights, len(multis)),
		needTwo:   make(map[uint32]bool),
		needThree: make(map[uint32]bool),
	}

	for _, m := range multis {
		switch len(m.Key) {
		case 2:
			t.needTwo[m.Key[0]] = true
		case 3:
			t.needThree[m.Key[0]] = true
		default:
			return nil, fmt.Errorf("contraction key %v: length must be 2 or 3", m.Key)
		}
		t.multis[multiKey(m.Key)] = m.Rows
	}

	for cp := uint32(0); cp < lowLimit; cp++ {
		if cp == 'L' || cp == 'l' {
			continue
		}
		t.low[cp] = singles[cp]
	}

	return t, nil
}

// CLDR reports whether the table is the CLDR root table.
func (t *Table) CLDR() bool { return t.cldr }

// Singles returns the weight rows for a single code point.
func (t *Table) Singles(cp uint32) ([]Weights, bool) {
	rows, ok := t.singles[cp]
	return rows, ok
}

// Low returns the fast-path weight rows for cp, or nil when cp is not
// covered by the fast path. Callers must have checked cp < 183.
func (t *Table) Low(cp uint32) []Weights {
	return t.low[cp]
}

// Multis returns the weight rows for a contraction key. Keys of any
// length may be probed; only lengths 2 and 3 can match.
func (t *Table) Multis(key []uint32) ([]Weights, bool) {
	if len(key) < 2 || len(key) > 3 {
		return nil, false
	}
	rows, ok := t.multis[multiKey(key)]
	return rows, ok
}

// NeedTwo reports whether cp can begin a two-code-point contraction.
func (t *Table) NeedTwo(cp uint32) bool { return t.needTwo[cp] }

// NeedThree reports whether cp can begin a three-code-point contraction.
func (t *Table) NeedThree(cp uint32) bool { return t.needThree[cp] }

// multiKey packs a contraction key into a comparable map key.
func multiKey(cps []uint32) string {
	b := make([]byte, 4*len(cps))
	for i, cp := range cps {
		binary.BigEndian.PutUint32(b[i*4:], cp)
	}
	return string(b)
}
