package unicol

// includedUnassigned lists code points that fall inside an implicit
// weight range below but are unassigned, so they take the unassigned
// formula instead.
var includedUnassigned = map[uint32]bool{
	177977: true,
	178206: true,
	183970: true,
	191457: true,
}

// implicitPrimaries derives the two primary weights for a code point
// that is absent from the weight table, per UTS #10 §10.1. The second
// primary already carries its high bit.
func implicitPrimaries(cp uint32) (aaaa, bbbb uint16) {
	if includedUnassigned[cp] {
		return uint16(64448 + cp>>15), uint16(cp&32767) | 0x8000
	}

	switch {
	case cp >= 13312 && cp <= 19903: // CJK extension A
		aaaa = uint16(64384 + cp>>15)
		bbbb = uint16(cp & 32767)
	case cp >= 19968 && cp <= 40959, cp >= 63744 && cp <= 64255: // CJK unified, compatibility
		aaaa = uint16(64320 + cp>>15)
		bbbb = uint16(cp & 32767)
	case cp >= 94208 && cp <= 101119, cp >= 101632 && cp <= 101775: // Tangut, Tangut supplement
		aaaa = 64256
		bbbb = uint16(cp - 94208)
	case cp >= 101120 && cp <= 101631: // Khitan small script
		aaaa = 64258
		bbbb = uint16(cp - 101120)
	case cp >= 110960 && cp <= 111359: // Nushu
		aaaa = 64257
		bbbb = uint16(cp - 110960)
	case cp >= 131072 && cp <= 173791, cp >= 173824 && cp <= 191471, cp >= 196608 && cp <= 201551: // CJK extensions B-G
		aaaa = uint16(64384 + cp>>15)
		bbbb = uint16(cp & 32767)
	default: // unassigned
		aaaa = uint16(64448 + cp>>15)
		bbbb = uint16(cp & 32767)
	}

	return aaaa, bbbb | 0x8000
}

// implicitA returns the first collation element of the implicit pair.
func implicitA(cp uint32, shifting bool) ce {
	aaaa, _ := implicitPrimaries(cp)
	if shifting {
		return ce{aaaa, 32, 2, 0xFFFF}
	}
	return ce{aaaa, 32, 2}
}

// implicitB returns the second collation element of the implicit pair.
func implicitB(cp uint32, shifting bool) ce {
	_, bbbb := implicitPrimaries(cp)
	if shifting {
		return ce{bbbb, 0, 0, 0xFFFF}
	}
	return ce{bbbb, 0, 0}
}
