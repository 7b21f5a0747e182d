// Package unicol implements the Unicode Collation Algorithm: a total,
// culture-neutral ordering over arbitrary Unicode strings. Strings can
// be compared directly or turned into binary sort keys whose
// lexicographic order matches the algorithm's.
//
// Two weight tables are supported, the Default Unicode Collation
// Element Table and the CLDR root, and variables (punctuation and
// whitespace) can be handled as shifted or non-ignorable.
package unicol

// KeysSource selects the weight table used for collation.
type KeysSource int

const (
	// KeysDUCET selects the Default Unicode Collation Element Table.
	KeysDUCET KeysSource = iota
	// KeysCLDR selects the CLDR root table, which modifies the DUCET.
	KeysCLDR
)

func (k KeysSource) String() string {
	if k == KeysCLDR {
		return "CLDR"
	}
	return "DUCET"
}

// Options configures collation. The zero value selects DUCET weights
// with non-ignorable variable handling; DefaultOptions is the
// recommended configuration.
type Options struct {
	// Keys selects the weight table.
	Keys KeysSource

	// Shifting demotes variable weights (punctuation, whitespace) to a
	// fourth level, so that they are ignored at the primary through
	// tertiary levels. Comparison then runs over four levels instead of
	// three.
	Shifting bool
}

// DefaultOptions returns the recommended configuration: CLDR root
// weights with shifted variable handling.
func DefaultOptions() Options {
	return Options{Keys: KeysCLDR, Shifting: true}
}
