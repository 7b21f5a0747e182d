package table

import (
	"embed"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// The blobs under data/ are products of cmd/maketables, derived from the
// UCA allkeys files and UnicodeData.txt. Run
//
//	go run ./cmd/maketables --out internal/table/data
//
// to (re)generate them.
//
//go:embed data
var dataFS embed.FS

// Source names a weight table source.
type Source string

const (
	DUCET Source = "ducet"
	CLDR  Source = "cldr"
)

type lazyTable struct {
	once sync.Once
	tab  *Table
	err  error
}

var (
	ducetState lazyTable
	cldrState  lazyTable

	fcdOnce    sync.Once
	fcdLoaded  map[uint32]uint16
	fcdLoadErr error
)

func readBlob(name string) ([]byte, error) {
	blob, err := dataFS.ReadFile("data/" + name + ".bin.zst")
	if err != nil {
		return nil, fmt.Errorf("table %s: blob not embedded (generate with cmd/maketables): %w", name, err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", name, err)
	}
	defer dec.Close()
	payload, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return nil, fmt.Errorf("table %s: decompress: %w", name, err)
	}
	return payload, nil
}

func load(src Source) (*Table, error) {
	singlesName := string(src) + "-singles"
	payload, err := readBlob(singlesName)
	if err != nil {
		return nil, err
	}
	singles, err := DecodeSingles(singlesName, payload)
	if err != nil {
		return nil, err
	}

	multisName := string(src) + "-multis"
	if payload, err = readBlob(multisName); err != nil {
		return nil, err
	}
	multis, err := DecodeMultis(multisName, payload)
	if err != nil {
		return nil, err
	}

	return New(src == CLDR, singles, multis)
}

// Load returns the weight table for src, decoding the embedded blobs on
// first use. Subsequent calls return the same immutable table; a load
// failure is sticky.
func Load(src Source) (*Table, error) {
	var state *lazyTable
	switch src {
	case DUCET:
		state = &ducetState
	case CLDR:
		state = &cldrState
	default:
		return nil, fmt.Errorf("unknown table source %q", src)
	}
	state.once.Do(func() {
		state.tab, state.err = load(src)
	})
	return state.tab, state.err
}

// LoadFCD returns the FCD table, decoding the embedded blob on first
// use.
func LoadFCD() (map[uint32]uint16, error) {
	fcdOnce.Do(func() {
		payload, err := readBlob("fcd")
		if err != nil {
			fcdLoadErr = err
			return
		}
		fcdLoaded, fcdLoadErr = DecodeFCD("fcd", payload)
	})
	return fcdLoaded, fcdLoadErr
}
