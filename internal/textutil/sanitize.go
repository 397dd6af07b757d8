package textutil

import "strings"

// Identifier converts value into a token usable as a bare DOT or file-name
// identifier. ASCII letters are lowercased, digits and underscores are kept,
// and every other rune becomes an underscore. Returns "unknown" for empty
// input. A leading digit is prefixed with "n" so the result never parses as
// a numeral.
func Identifier(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unknown"
	}
	if out[0] >= '0' && out[0] <= '9' {
		out = "n" + out
	}
	return out
}

// Plural returns singular when n == 1 and plural otherwise.
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// OrDash returns value, or "-" when it is blank, for table cells.
func OrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
