package offshore

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ID is a normalized entity identifier (CNPJ, or CPF padded to the CNPJ width):
// always exactly 14 digits.
type ID string

// idLength is the width of a CNPJ.
const idLength = 14

// InvalidID is what any unparseable identifier normalizes to. It never matches.
const InvalidID ID = "00000000000000"

var (
	// numeric text in exponential notation, as written by spreadsheets and float
	// columns, with either decimal separator.
	exponentPattern = regexp.MustCompile(`^[+-]?(\d+[.,]?\d*|[.,]\d+)[eE][+-]?\d+$`)
	// float text whose fractional part is only zeros, e.g. "1234567890123.0".
	zeroFractionPattern = regexp.MustCompile(`^(\d+)\.0+$`)
	nonDigits           = regexp.MustCompile(`[^0-9]`)
)

// NormalizeID canonicalizes a raw identifier into its 14-digit form.
//
// Exponential notation is first expanded to an integer, punctuation is
// stripped, a 13-digit value gets the leading zero one registry systematically
// drops, and the result is left-padded or truncated to 14 digits.
// Anything without digits normalizes to InvalidID.
func NormalizeID(raw string) ID {
	s := strings.TrimSpace(raw)
	switch {
	case exponentPattern.MatchString(s):
		d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
		if err != nil {
			return InvalidID
		}
		s = expand(d)
	case zeroFractionPattern.MatchString(s):
		s = zeroFractionPattern.ReplaceAllString(s, "$1")
	}

	digits := nonDigits.ReplaceAllString(s, "")
	if digits == "" {
		return InvalidID
	}
	if len(digits) == idLength-1 {
		digits = "0" + digits
	}
	if len(digits) < idLength {
		digits = strings.Repeat("0", idLength-len(digits)) + digits
	}
	return ID(digits[:idLength])
}

// expand writes d as an integer. Trailing zeros past the identifier width are
// never kept by the truncation, so a large exponent adds at most idLength of them.
func expand(d decimal.Decimal) string {
	if exp := d.Exponent(); exp > 0 {
		return d.Coefficient().String() + strings.Repeat("0", min(int(exp), idLength))
	}
	return d.Round(0).String()
}

// NormalizeIDs normalizes a whole identifier column.
func NormalizeIDs(raw []string) []ID {
	ids := make([]ID, len(raw))
	for i, r := range raw {
		ids[i] = NormalizeID(r)
	}
	return ids
}

// Valid reports whether id can take part in a join.
func (id ID) Valid() bool {
	if len(id) != idLength || id == InvalidID {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func (id ID) String() string { return string(id) }

// Format returns the usual CNPJ mask "00.000.000/0000-00", or "" for an invalid id.
func (id ID) Format() string {
	if !id.Valid() {
		return ""
	}
	s := string(id)
	return s[0:2] + "." + s[2:5] + "." + s[5:8] + "/" + s[8:12] + "-" + s[12:14]
}

// NormalizeName is the key used by name based matching: trimmed and uppercased.
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
