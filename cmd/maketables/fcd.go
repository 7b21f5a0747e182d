package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// buildFCD derives the FCD table from UnicodeData.txt: for every code
// point whose full canonical decomposition starts or ends with a
// combining class different from its own, store the packed
// (lead CCC << 8 | trail CCC) pair. Code points absent from the table
// use their own class at both ends, so only the exceptions are stored.
func buildFCD(ucdDir string, log *zap.SugaredLogger) (map[uint32]uint16, error) {
	r, err := sourceFile(ucdDir, "UnicodeData.txt")
	if err != nil {
		return nil, err
	}
	defer r.Close()

	classes := make(map[uint32]uint8)
	decomp := make(map[uint32][]uint32)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 6 {
			return nil, fmt.Errorf("UnicodeData.txt:%d: %d fields", lineNo, len(fields))
		}

		cp64, err := strconv.ParseUint(fields[0], 16, 32)
		if err != nil {
			return nil, fmt.Errorf("UnicodeData.txt:%d: %w", lineNo, err)
		}
		cp := uint32(cp64)

		if cc, err := strconv.ParseUint(fields[3], 10, 8); err == nil && cc != 0 {
			classes[cp] = uint8(cc)
		}

		// Compatibility mappings are tagged with <...> and do not apply
		// to canonical decomposition.
		mapping := fields[5]
		if mapping == "" || strings.HasPrefix(mapping, "<") {
			continue
		}
		var d []uint32
		for _, hex := range strings.Fields(mapping) {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, fmt.Errorf("UnicodeData.txt:%d: decomposition %q: %w", lineNo, hex, err)
			}
			d = append(d, uint32(v))
		}
		decomp[cp] = d
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("UnicodeData.txt: %w", err)
	}

	var full func(cp uint32) []uint32
	full = func(cp uint32) []uint32 {
		d, ok := decomp[cp]
		if !ok {
			return []uint32{cp}
		}
		var out []uint32
		for _, c := range d {
			out = append(out, full(c)...)
		}
		return out
	}

	fcd := make(map[uint32]uint16)
	for cp := range decomp {
		d := full(cp)
		lead := classes[d[0]]
		trail := classes[d[len(d)-1]]
		if own := classes[cp]; lead == own && trail == own {
			continue
		}
		fcd[cp] = uint16(lead)<<8 | uint16(trail)
	}

	log.Infow("built FCD table", "entries", len(fcd), "decompositions", len(decomp))
	return fcd, nil
}
