package unicol

import (
	"path/filepath"
	"testing"

	"github.com/theodore-s-beers/unicol/internal/table"
)

func benchConformance(b *testing.B, file string, opts Options) {
	for _, src := range []table.Source{table.DUCET, table.CLDR} {
		if _, err := table.Load(src); err != nil {
			b.Skipf("weight tables unavailable: %v", err)
		}
	}
	if _, err := table.LoadFCD(); err != nil {
		b.Skipf("FCD table unavailable: %v", err)
	}

	lines := conformanceLines(b, filepath.Join("testdata", file))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		var prev []uint16
		for _, s := range lines {
			key := SortKey(s, opts)
			if prev != nil && CompareSortKeys(prev, key) > 0 {
				b.Fatal("out of order")
			}
			prev = key
		}
	}
}

func BenchmarkDucetNonIgnorable(b *testing.B) {
	benchConformance(b, "CollationTest_NON_IGNORABLE_SHORT.txt",
		Options{Keys: KeysDUCET, Shifting: false})
}

func BenchmarkDucetShifted(b *testing.B) {
	benchConformance(b, "CollationTest_SHIFTED_SHORT.txt",
		Options{Keys: KeysDUCET, Shifting: true})
}

func BenchmarkCldrNonIgnorable(b *testing.B) {
	benchConformance(b, "CollationTest_CLDR_NON_IGNORABLE_SHORT.txt",
		Options{Keys: KeysCLDR, Shifting: false})
}

func BenchmarkCldrShifted(b *testing.B) {
	benchConformance(b, "CollationTest_CLDR_SHIFTED_SHORT.txt",
		Options{Keys: KeysCLDR, Shifting: true})
}
