package unicol

import (
	"strings"
	"sync"

	"github.com/theodore-s-beers/unicol/internal/table"
)

var (
	tableOnce [2]sync.Once
	tableVal  [2]*table.Table

	fcdOnce sync.Once
	fcdVal  map[uint32]uint16
)

func source(k KeysSource) table.Source {
	if k == KeysCLDR {
		return table.CLDR
	}
	return table.DUCET
}

// tables returns the weight table for k, loading it on first use. A
// corrupt or missing blob is a fatal condition.
func tables(k KeysSource) *table.Table {
	i := int(k)
	tableOnce[i].Do(func() {
		t, err := table.Load(source(k))
		if err != nil {
			panic("unicol: " + err.Error())
		}
		tableVal[i] = t
	})
	return tableVal[i]
}

func fcdTable() map[uint32]uint16 {
	fcdOnce.Do(func() {
		m, err := table.LoadFCD()
		if err != nil {
			panic("unicol: " + err.Error())
		}
		fcdVal = m
	})
	return fcdVal
}

// Collate compares two strings under opts and returns -1, 0, or +1.
// Strings whose sort keys are equal are tiebroken by a plain comparison
// of the original strings, so Collate is a total order: it returns 0
// only for identical strings.
func Collate(a, b string, opts Options) int {
	if a == b {
		return 0
	}
	if res := collate(a, b, opts); res != 0 {
		return res
	}
	return strings.Compare(a, b)
}

// CollateNoTiebreak is Collate without the final tiebreak: canonically
// equivalent strings compare equal. This is the comparison the UCA
// conformance files are checked with.
func CollateNoTiebreak(a, b string, opts Options) int {
	if a == b {
		return 0
	}
	return collate(a, b, opts)
}

func collate(a, b string, opts Options) int {
	t := tables(opts.Keys)
	fcd := fcdTable()

	nfdA := toNFDCodePoints(a, fcd)
	nfdB := toNFDCodePoints(b, fcd)

	if equalCodePoints(nfdA, nfdB) {
		return 0
	}

	if p := safePrefix(nfdA, nfdB, t); p > 0 {
		nfdA = nfdA[p:]
		nfdB = nfdB[p:]
	}

	keyA := flattenSortKey(generateCEs(nfdA, t, opts.Shifting), opts.Shifting)
	keyB := flattenSortKey(generateCEs(nfdB, t, opts.Shifting), opts.Shifting)

	return CompareSortKeys(keyA, keyB)
}

// SortKey returns the binary sort key for s under opts. Comparing keys
// with CompareSortKeys orders them exactly as CollateNoTiebreak orders
// the strings they came from.
func SortKey(s string, opts Options) []uint16 {
	t := tables(opts.Keys)
	cv := toNFDCodePoints(s, fcdTable())
	return flattenSortKey(generateCEs(cv, t, opts.Shifting), opts.Shifting)
}

func equalCodePoints(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// safePrefix returns the length of a shared prefix of a and b that
// cannot influence the comparison of what follows, so that both
// sequences may be trimmed before key generation. Code points that can
// begin a contraction stop the prefix, since dropping them could hide a
// match with the first differing code point. The code point just before
// the cut must map to weights that are position-independent at the
// primary level: all non-variable, no zero primaries. Otherwise no
// trimming happens.
func safePrefix(a, b []uint32, t *table.Table) int {
	max := len(a)
	if len(b) < max {
		max = len(b)
	}

	p := 0
	for p < max && a[p] == b[p] && !t.NeedTwo(a[p]) && !t.NeedThree(a[p]) {
		p++
	}
	if p == 0 {
		return 0
	}

	rows, ok := t.Singles(a[p-1])
	if !ok {
		return 0
	}
	for _, w := range rows {
		if w.Variable || w.Primary == 0 {
			return 0
		}
	}

	return p
}
