package main

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/theodore-s-beers/unicol/internal/table"
)

var (
	reKey     = regexp.MustCompile(`[0-9A-F]{4,5}`)
	reWeights = regexp.MustCompile(`[*.0-9A-F]{15}`)
	reValue   = regexp.MustCompile(`[0-9A-F]{4}`)
)

// parseAllkeys reads an allkeys-format weight table. Single-code-point
// keys land in the singles map; longer keys become contraction entries.
func parseAllkeys(ucdDir, file string) (map[uint32][]table.Weights, []table.MultiEntry, error) {
	r, err := sourceFile(ucdDir, file)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()

	singles := make(map[uint32][]table.Weights)
	var multis []table.MultiEntry

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || line[0] == '#' || line[0] == '@' {
			continue
		}

		keyPart, rest, found := strings.Cut(line, ";")
		if !found {
			return nil, nil, fmt.Errorf("%s:%d: no semicolon", file, lineNo)
		}
		weightPart, _, _ := strings.Cut(rest, "#")

		var key []uint32
		for _, hex := range reKey.FindAllString(keyPart, -1) {
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return nil, nil, fmt.Errorf("%s:%d: key %q: %w", file, lineNo, hex, err)
			}
			key = append(key, uint32(v))
		}
		if len(key) == 0 || len(key) > 3 {
			return nil, nil, fmt.Errorf("%s:%d: key has %d code points", file, lineNo, len(key))
		}

		var rows []table.Weights
		for _, body := range reWeights.FindAllString(weightPart, -1) {
			vals := reValue.FindAllString(body, -1)
			if len(vals) != 3 {
				return nil, nil, fmt.Errorf("%s:%d: weight body %q", file, lineNo, body)
			}
			var w table.Weights
			w.Variable = strings.Contains(body, "*")
			for i, field := range []*uint16{&w.Primary, &w.Secondary, &w.Tertiary} {
				v, err := strconv.ParseUint(vals[i], 16, 16)
				if err != nil {
					return nil, nil, fmt.Errorf("%s:%d: weight %q: %w", file, lineNo, vals[i], err)
				}
				*field = uint16(v)
			}
			rows = append(rows, w)
		}
		if len(rows) == 0 {
			return nil, nil, fmt.Errorf("%s:%d: no weights", file, lineNo)
		}

		if len(key) == 1 {
			singles[key[0]] = rows
		} else {
			multis = append(multis, table.MultiEntry{Key: key, Rows: rows})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", file, err)
	}

	return singles, multis, nil
}
