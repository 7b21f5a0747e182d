package unicol

import (
	"github.com/theodore-s-beers/unicol/internal/table"
)

// ce is one collation element. The first three values are the primary,
// secondary, and tertiary weights; the fourth is the quaternary weight
// and is meaningful only when shifting.
type ce [4]uint16

// ceGen walks a normalized code point sequence and emits collation
// elements. The input buffer is mutated: code points absorbed by a
// discontiguous contraction match are removed in place.
type ceGen struct {
	cv       []uint32
	t        *table.Table
	shifting bool

	// lastVariable tracks whether the last significant element emitted
	// was a variable, which makes a following primary ignorable fully
	// ignorable under shifting.
	lastVariable bool

	ces []ce
}

// generateCEs produces the collation element sequence for cv. It takes
// ownership of cv.
func generateCEs(cv []uint32, t *table.Table, shifting bool) []ce {
	g := ceGen{
		cv:       cv,
		t:        t,
		shifting: shifting,
		ces:      make([]ce, 0, 2*len(cv)),
	}
	return g.run()
}

func (g *ceGen) run() []ce {
	left := 0

outer:
	for left < len(g.cv) {
		cp := g.cv[left]

		// Fast path for frequent low code points. U+004C and U+006C are
		// excluded because they can begin contractions.
		if cp < 183 && cp != 'L' && cp != 'l' {
			if rows := g.t.Low(cp); rows != nil {
				g.emit(rows)
				left++
				continue
			}
		}

		lookahead := 1
		switch {
		case g.t.NeedThree(cp):
			lookahead = 3
		case g.t.NeedTwo(cp):
			lookahead = 2
		}

		if lookahead == 1 || len(g.cv)-left < 2 {
			if rows, ok := g.t.Singles(cp); ok {
				g.emit(rows)
				left++
				continue
			}
			g.implicit(cp)
			left++
			continue
		}

		right := left + lookahead
		if right > len(g.cv) {
			right = len(g.cv)
		}

		for right > left {
			if right-left == 1 {
				rows, ok := g.t.Singles(cp)
				if !ok {
					break // implicit weights below
				}
				if g.discontiguous(left, right) {
					left++
					continue outer
				}
				g.emit(rows)
				left++
				continue outer
			}

			if rows, ok := g.t.Multis(g.cv[left:right]); ok {
				if g.discontiguous(left, right) {
					left = right
					continue outer
				}
				g.emit(rows)
				left = right
				continue outer
			}

			right--
		}

		g.implicit(g.cv[left])
		left++
	}

	return g.ces
}

// discontiguous tries to extend the match over cv[left:right] by
// absorbing one or two later non-starters, per UCA rule S2.1. On
// success the matched weights are emitted, the absorbed code points are
// removed from the buffer, and true is returned.
func (g *ceGen) discontiguous(left, right int) bool {
	maxRight := right
	switch {
	case right+2 < len(g.cv):
		maxRight = right + 2
	case right+1 < len(g.cv):
		maxRight = right + 1
	}

	// Only the CLDR table has contractions long enough to absorb two
	// code points at once.
	tryTwo := maxRight == right+2 && g.t.CLDR()

	for maxRight > right {
		// The window cv[right..maxRight] must be all non-starters with
		// strictly increasing combining classes.
		valid := true
		var prev uint8
		for i := right; i <= maxRight; i++ {
			cc := ccc(g.cv[i])
			if cc == 0 || cc <= prev {
				valid = false
				break
			}
			prev = cc
		}
		if !valid {
			tryTwo = false
			maxRight--
			continue
		}

		key := make([]uint32, 0, right-left+2)
		key = append(key, g.cv[left:right]...)
		if tryTwo {
			key = append(key, g.cv[maxRight-1])
		}
		key = append(key, g.cv[maxRight])

		if rows, ok := g.t.Multis(key); ok {
			g.emit(rows)
			g.remove(maxRight)
			if tryTwo {
				g.remove(maxRight - 1)
			}
			return true
		}

		if tryTwo {
			// Retry the same position as a one-code-point extension.
			tryTwo = false
			continue
		}
		maxRight--
	}

	return false
}

func (g *ceGen) remove(i int) {
	g.cv = append(g.cv[:i], g.cv[i+1:]...)
}

// emit appends the collation elements for a matched weight row list,
// applying the variable weighting rules when shifting.
func (g *ceGen) emit(rows []table.Weights) {
	for _, w := range rows {
		if !g.shifting {
			g.ces = append(g.ces, ce{w.Primary, w.Secondary, w.Tertiary})
			continue
		}

		switch {
		case w.Primary == 0 && w.Secondary == 0 && w.Tertiary == 0:
			g.ces = append(g.ces, ce{})
		case w.Variable:
			g.ces = append(g.ces, ce{0, 0, 0, w.Primary})
			g.lastVariable = true
		case g.lastVariable && w.Primary == 0 && w.Tertiary != 0:
			// A primary ignorable directly after a variable becomes
			// fully ignorable.
			g.ces = append(g.ces, ce{})
		default:
			g.ces = append(g.ces, ce{w.Primary, w.Secondary, w.Tertiary, 0xFFFF})
			if w.Primary != 0 {
				g.lastVariable = false
			}
		}
	}
}

// implicit appends the two derived collation elements for a code point
// with no table entry.
func (g *ceGen) implicit(cp uint32) {
	g.ces = append(g.ces, implicitA(cp, g.shifting), implicitB(cp, g.shifting))
}
