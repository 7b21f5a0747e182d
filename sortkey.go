package unicol

// flattenSortKey projects a collation element sequence into a sort key:
// level-major, zero weights skipped, a single zero separating adjacent
// levels, no terminator.
func flattenSortKey(ces []ce, shifting bool) []uint16 {
	levels := 3
	if shifting {
		levels = 4
	}

	key := make([]uint16, 0, len(ces)+levels)
	for i := 0; i < levels; i++ {
		if i > 0 {
			key = append(key, 0)
		}
		for _, e := range ces {
			if e[i] != 0 {
				key = append(key, e[i])
			}
		}
	}

	return key
}

// CompareSortKeys lexicographically compares two sort keys produced by
// SortKey. It returns -1, 0, or +1. Keys are only comparable when they
// were generated with the same Options.
func CompareSortKeys(a, b []uint16) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
