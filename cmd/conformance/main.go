// Command conformance runs the four official UCA/CLDR collation test
// files against the library. Each file lists test strings in expected
// order; adjacent lines must never compare Greater.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theodore-s-beers/unicol"
)

type suite struct {
	file string
	opts unicol.Options
}

var suites = []suite{
	{"CollationTest_NON_IGNORABLE_SHORT.txt", unicol.Options{Keys: unicol.KeysDUCET, Shifting: false}},
	{"CollationTest_SHIFTED_SHORT.txt", unicol.Options{Keys: unicol.KeysDUCET, Shifting: true}},
	{"CollationTest_CLDR_NON_IGNORABLE_SHORT.txt", unicol.Options{Keys: unicol.KeysCLDR, Shifting: false}},
	{"CollationTest_CLDR_SHIFTED_SHORT.txt", unicol.Options{Keys: unicol.KeysCLDR, Shifting: true}},
}

func main() {
	var dataDir string

	cmd := &cobra.Command{
		Use:           "conformance",
		Short:         "Run the UCA/CLDR conformance test files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(dataDir)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "testdata", "directory holding the CollationTest files")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "conformance:", err)
		os.Exit(1)
	}
}

func run(dataDir string) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	for _, s := range suites {
		path := filepath.Join(dataDir, s.file)
		lines, skipped, err := checkFile(path, s.opts)
		if err != nil {
			return err
		}
		log.Infow("passed",
			"file", s.file,
			"keys", s.opts.Keys.String(),
			"shifting", s.opts.Shifting,
			"lines", lines,
			"skipped", skipped)
	}

	return nil
}

// checkFile verifies that the significant lines of one test file are in
// non-descending collation order. Lines containing surrogate code
// points are skipped: they cannot round-trip through a Go string.
func checkFile(path string, opts unicol.Options) (lines, skipped int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	var prev []uint16
	scanner := bufio.NewScanner(f)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		s, ok, err := parseLine(line)
		if err != nil {
			return lines, skipped, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		if !ok {
			skipped++
			continue
		}

		key := unicol.SortKey(s, opts)
		if prev != nil && unicol.CompareSortKeys(prev, key) > 0 {
			return lines, skipped, fmt.Errorf("%s:%d: out of order", path, lineNo)
		}
		prev = key
		lines++
	}

	return lines, skipped, scanner.Err()
}

// parseLine builds the test string from a line of space-separated hex
// code points. ok is false when the line contains a surrogate.
func parseLine(line string) (s string, ok bool, err error) {
	var sb strings.Builder
	for _, hex := range strings.Fields(line) {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return "", false, fmt.Errorf("code point %q: %w", hex, err)
		}
		if v >= 0xD800 && v <= 0xDFFF {
			return "", false, nil
		}
		sb.WriteRune(rune(v))
	}
	return sb.String(), true, nil
}
