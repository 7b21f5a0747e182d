package table

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Blob layout, after zstd decompression, all little-endian:
//
//	magic "UCOL", version byte, kind byte, u32 entry count, entries.
//
// Singles entry: u32 code point, u8 row count, rows.
// Multis entry:  u8 key length (2 or 3), key code points, u8 row count, rows.
// FCD entry:     u32 code point, u16 packed (lead CCC << 8 | trail CCC).
//
// A row is u8 flags (bit 0 = variable), u16 primary, u16 secondary,
// u16 tertiary.
const (
	codecVersion = 1

	kindSingles = 1
	kindMultis  = 2
	kindFCD     = 3
)

var codecMagic = []byte("UCOL")

type encoder struct {
	buf []byte
}

func (e *encoder) u8(v uint8)   { e.buf = append(e.buf, v) }
func (e *encoder) u16(v uint16) { e.buf = binary.LittleEndian.AppendUint16(e.buf, v) }
func (e *encoder) u32(v uint32) { e.buf = binary.LittleEndian.AppendUint32(e.buf, v) }

func (e *encoder) header(kind uint8, count int) {
	e.buf = append(e.buf, codecMagic...)
	e.u8(codecVersion)
	e.u8(kind)
	e.u32(uint32(count))
}

func (e *encoder) rows(rows []Weights) error {
	if len(rows) > 255 {
		return fmt.Errorf("entry has %d weight rows; limit is 255", len(rows))
	}
	e.u8(uint8(len(rows)))
	for _, w := range rows {
		var flags uint8
		if w.Variable {
			flags |= 1
		}
		e.u8(flags)
		e.u16(w.Primary)
		e.u16(w.Secondary)
		e.u16(w.Tertiary)
	}
	return nil
}

// EncodeSingles serializes a singles table. Entries are written in code
// point order so the output is reproducible.
func EncodeSingles(singles map[uint32][]Weights) ([]byte, error) {
	cps := make([]uint32, 0, len(singles))
	for cp := range singles {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })

	var e encoder
	e.header(kindSingles, len(cps))
	for _, cp := range cps {
		e.u32(cp)
		if err := e.rows(singles[cp]); err != nil {
			return nil, fmt.Errorf("singles %04X: %w", cp, err)
		}
	}
	return e.buf, nil
}

// EncodeMultis serializes a contractions table in key order.
func EncodeMultis(multis []MultiEntry) ([]byte, error) {
	sorted := make([]MultiEntry, len(multis))
	copy(sorted, multis)
	sort.Slice(sorted, func(i, j int) bool {
		return multiKey(sorted[i].Key) < multiKey(sorted[j].Key)
	})

	var e encoder
	e.header(kindMultis, len(sorted))
	for _, m := range sorted {
		if len(m.Key) < 2 || len(m.Key) > 3 {
			return nil, fmt.Errorf("contraction key %v: length must be 2 or 3", m.Key)
		}
		e.u8(uint8(len(m.Key)))
		for _, cp := range m.Key {
			e.u32(cp)
		}
		if err := e.rows(m.Rows); err != nil {
			return nil, fmt.Errorf("contraction %v: %w", m.Key, err)
		}
	}
	return e.buf, nil
}

// EncodeFCD serializes the FCD table in code point order.
func EncodeFCD(fcd map[uint32]uint16) ([]byte, error) {
	cps := make([]uint32, 0, len(fcd))
	for cp := range fcd {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })

	var e encoder
	e.header(kindFCD, len(cps))
	for _, cp := range cps {
		e.u32(cp)
		e.u16(fcd[cp])
	}
	return e.buf, nil
}

type decoder struct {
	name string
	buf  []byte
	off  int
}

func (d *decoder) need(n int) error {
	if len(d.buf)-d.off < n {
		return fmt.Errorf("table %s: truncated at offset %d", d.name, d.off)
	}
	return nil
}

func (d *decoder) u8() (uint8, error) {
	if err := d.need(1); err != nil {
		return 0, err
	}
	v := d.buf[d.off]
	d.off++
	return v, nil
}

func (d *decoder) u16() (uint16, error) {
	if err := d.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v, nil
}

func (d *decoder) u32() (uint32, error) {
	if err := d.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) header(kind uint8) (int, error) {
	if err := d.need(len(codecMagic)); err != nil {
		return 0, err
	}
	if string(d.buf[d.off:d.off+len(codecMagic)]) != string(codecMagic) {
		return 0, fmt.Errorf("table %s: bad magic", d.name)
	}
	d.off += len(codecMagic)

	version, err := d.u8()
	if err != nil {
		return 0, err
	}
	if version != codecVersion {
		return 0, fmt.Errorf("table %s: unsupported format version %d", d.name, version)
	}

	gotKind, err := d.u8()
	if err != nil {
		return 0, err
	}
	if gotKind != kind {
		return 0, fmt.Errorf("table %s: kind %d, want %d", d.name, gotKind, kind)
	}

	count, err := d.u32()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (d *decoder) rows() ([]Weights, error) {
	n, err := d.u8()
	if err != nil {
		return nil, err
	}
	rows := make([]Weights, n)
	for i := range rows {
		flags, err := d.u8()
		if err != nil {
			return nil, err
		}
		rows[i].Variable = flags&1 != 0
		if rows[i].Primary, err = d.u16(); err != nil {
			return nil, err
		}
		if rows[i].Secondary, err = d.u16(); err != nil {
			return nil, err
		}
		if rows[i].Tertiary, err = d.u16(); err != nil {
			return nil, err
		}
	}
	return rows, nil
}

func (d *decoder) finish() error {
	if d.off != len(d.buf) {
		return fmt.Errorf("table %s: %d trailing bytes", d.name, len(d.buf)-d.off)
	}
	return nil
}

// DecodeSingles parses a singles blob payload.
func DecodeSingles(name string, data []byte) (map[uint32][]Weights, error) {
	d := decoder{name: name, buf: data}
	count, err := d.header(kindSingles)
	if err != nil {
		return nil, err
	}
	singles := make(map[uint32][]Weights, count)
	for i := 0; i < count; i++ {
		cp, err := d.u32()
		if err != nil {
			return nil, err
		}
		if singles[cp], err = d.rows(); err != nil {
			return nil, fmt.Errorf("table %s, code point %04X: %w", name, cp, err)
		}
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return singles, nil
}

// DecodeMultis parses a contractions blob payload.
func DecodeMultis(name string, data []byte) ([]MultiEntry, error) {
	d := decoder{name: name, buf: data}
	count, err := d.header(kindMultis)
	if err != nil {
		return nil, err
	}
	multis := make([]MultiEntry, 0, count)
	for i := 0; i < count; i++ {
		klen, err := d.u8()
		if err != nil {
			return nil, err
		}
		if klen < 2 || klen > 3 {
			return nil, fmt.Errorf("table %s: contraction key length %d", name, klen)
		}
		key := make([]uint32, klen)
		for j := range key {
			if key[j], err = d.u32(); err != nil {
				return nil, err
			}
		}
		rows, err := d.rows()
		if err != nil {
			return nil, fmt.Errorf("table %s, contraction %v: %w", name, key, err)
		}
		multis = append(multis, MultiEntry{Key: key, Rows: rows})
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return multis, nil
}

// DecodeFCD parses an FCD blob payload.
func DecodeFCD(name string, data []byte) (map[uint32]uint16, error) {
	d := decoder{name: name, buf: data}
	count, err := d.header(kindFCD)
	if err != nil {
		return nil, err
	}
	fcd := make(map[uint32]uint16, count)
	for i := 0; i < count; i++ {
		cp, err := d.u32()
		if err != nil {
			return nil, err
		}
		if fcd[cp], err = d.u16(); err != nil {
			return nil, err
		}
	}
	if err := d.finish(); err != nil {
		return nil, err
	}
	return fcd, nil
}
