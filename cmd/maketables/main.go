// Command maketables builds the binary weight and FCD table blobs
// embedded by internal/table. It parses allkeys.txt (DUCET),
// allkeys_CLDR.txt, and UnicodeData.txt, fetching them from the Unicode
// servers when they are not present in the source directory.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theodore-s-beers/unicol/internal/table"
)

const unicodeVersion = "14.0.0"

var urls = map[string]string{
	"allkeys.txt":      "https://www.unicode.org/Public/UCA/" + unicodeVersion + "/allkeys.txt",
	"allkeys_CLDR.txt": "https://raw.githubusercontent.com/unicode-org/cldr/release-41/common/uca/allkeys_CLDR.txt",
	"UnicodeData.txt":  "https://www.unicode.org/Public/" + unicodeVersion + "/ucd/UnicodeData.txt",
}

func main() {
	var (
		ucdDir string
		outDir string
		check  bool
	)

	cmd := &cobra.Command{
		Use:           "maketables",
		Short:         "Build the collation and FCD table blobs",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(ucdDir, outDir, check)
		},
	}
	cmd.Flags().StringVar(&ucdDir, "ucd", "ucd-data", "directory holding the Unicode source files; missing files are downloaded into it")
	cmd.Flags().StringVar(&outDir, "out", "internal/table/data", "directory the blobs are written to")
	cmd.Flags().BoolVar(&check, "check", true, "re-decode each blob after writing")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "maketables:", err)
		os.Exit(1)
	}
}

func run(ucdDir, outDir string, check bool) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()
	log := logger.Sugar()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	fcd, err := buildFCD(ucdDir, log)
	if err != nil {
		return err
	}
	fcdBlob, err := table.EncodeFCD(fcd)
	if err != nil {
		return err
	}
	if err := writeBlob(outDir, "fcd", fcdBlob, log); err != nil {
		return err
	}

	for name, file := range map[string]string{"ducet": "allkeys.txt", "cldr": "allkeys_CLDR.txt"} {
		singles, multis, err := parseAllkeys(ucdDir, file)
		if err != nil {
			return err
		}
		log.Infow("parsed weight table",
			"table", name, "singles", len(singles), "contractions", len(multis))

		singlesBlob, err := table.EncodeSingles(singles)
		if err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
		if err := writeBlob(outDir, name+"-singles", singlesBlob, log); err != nil {
			return err
		}

		multisBlob, err := table.EncodeMultis(multis)
		if err != nil {
			return fmt.Errorf("table %s: %w", name, err)
		}
		if err := writeBlob(outDir, name+"-multis", multisBlob, log); err != nil {
			return err
		}

		if check {
			if err := verify(outDir, name, len(singles), len(multis), len(fcd)); err != nil {
				return err
			}
		}
	}

	return nil
}

// sourceFile opens a Unicode data file from dir, downloading it first
// when absent.
func sourceFile(dir, name string) (io.ReadCloser, error) {
	path := filepath.Join(dir, name)
	if f, err := os.Open(path); err == nil {
		return f, nil
	}

	url, ok := urls[name]
	if !ok {
		return nil, fmt.Errorf("no source URL for %s", name)
	}

	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", name, resp.Status)
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeBlob(outDir, name string, payload []byte, log *zap.SugaredLogger) error {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	compressed := enc.EncodeAll(payload, nil)
	if err := enc.Close(); err != nil {
		return err
	}

	path := filepath.Join(outDir, name+".bin.zst")
	if err := os.WriteFile(path, compressed, 0o644); err != nil {
		return fmt.Errorf("table %s: %w", name, err)
	}
	log.Infow("wrote blob",
		"path", path,
		"raw", humanize.Bytes(uint64(len(payload))),
		"compressed", humanize.Bytes(uint64(len(compressed))))
	return nil
}

// verify re-decodes the written blobs and compares entry counts.
func verify(outDir, name string, singles, multis, fcd int) error {
	read := func(blob string) ([]byte, error) {
		compressed, err := os.ReadFile(filepath.Join(outDir, blob+".bin.zst"))
		if err != nil {
			return nil, err
		}
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(compressed, nil)
	}

	payload, err := read(name + "-singles")
	if err != nil {
		return err
	}
	s, err := table.DecodeSingles(name+"-singles", payload)
	if err != nil {
		return err
	}
	if len(s) != singles {
		return fmt.Errorf("table %s-singles: decoded %d entries, wrote %d", name, len(s), singles)
	}

	if payload, err = read(name + "-multis"); err != nil {
		return err
	}
	m, err := table.DecodeMultis(name+"-multis", payload)
	if err != nil {
		return err
	}
	if len(m) != multis {
		return fmt.Errorf("table %s-multis: decoded %d entries, wrote %d", name, len(m), multis)
	}

	if payload, err = read("fcd"); err != nil {
		return err
	}
	f, err := table.DecodeFCD("fcd", payload)
	if err != nil {
		return err
	}
	if len(f) != fcd {
		return fmt.Errorf("table fcd: decoded %d entries, wrote %d", len(f), fcd)
	}

	return nil
}
