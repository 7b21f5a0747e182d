package unicol

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ccc returns the canonical combining class of a code point. Values
// outside the scalar range (the conformance files contain surrogates on
// purpose) have class zero.
func ccc(cp uint32) uint8 {
	if cp < 0x300 {
		return 0
	}
	if cp > unicode.MaxRune || (cp >= 0xD800 && cp <= 0xDFFF) {
		return 0
	}
	return norm.NFD.PropertiesString(string(rune(cp))).CCC()
}

// codePoints decodes a string into its code points.
func codePoints(s string) []uint32 {
	cv := make([]uint32, 0, len(s))
	for _, r := range s {
		cv = append(cv, uint32(r))
	}
	return cv
}

// fcdOK implements the FCD ("fast C or D") quick check: it reports
// whether the sequence is already canonically ordered, so that NFD
// would return it unchanged. fcd maps a code point to the packed
// (lead CCC << 8 | trail CCC) of its full canonical decomposition; code
// points absent from the map use their own combining class at both
// ends.
func fcdOK(cv []uint32, fcd map[uint32]uint16) bool {
	var prevTrail uint8

	for _, cp := range cv {
		if cp < 192 {
			prevTrail = 0
			continue
		}

		// U+0F81 and the Hangul syllables always decompose.
		if cp == 0x0F81 || (cp >= 0xAC00 && cp <= 0xD7A3) {
			return false
		}

		var lead, trail uint8
		if packed, ok := fcd[cp]; ok {
			lead = uint8(packed >> 8)
			trail = uint8(packed)
		} else {
			cc := ccc(cp)
			lead, trail = cc, cc
		}

		if lead != 0 && lead < prevTrail {
			return false
		}
		prevTrail = trail
	}

	return true
}

// toNFDCodePoints returns the NFD expansion of s as code points. When
// the FCD check passes, the code points of s are returned verbatim and
// no decomposition runs.
func toNFDCodePoints(s string, fcd map[uint32]uint16) []uint32 {
	cv := codePoints(s)
	if fcdOK(cv, fcd) {
		return cv
	}
	return codePoints(norm.NFD.String(s))
}
