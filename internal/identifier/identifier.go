package identifier

import (
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// RegistryWidth is the fixed width of a zero-padded CIK.
const RegistryWidth = 10

// Kind identifies what an Identifier names.
type Kind int

const (
	PersonName Kind = iota
	TickerSymbol
	RegistryID
)

func (k Kind) String() string {
	switch k {
	case PersonName:
		return "name"
	case TickerSymbol:
		return "ticker"
	case RegistryID:
		return "cik"
	default:
		return "unknown"
	}
}

// Identifier is a normalized lookup key. The zero value is inert.
type Identifier struct {
	kind       Kind
	raw        string
	normalized string
	stripped   string // RegistryID only
}

// Normalize canonicalizes raw for the given kind.
func Normalize(raw string, kind Kind) Identifier {
	id := Identifier{kind: kind, raw: raw}

	switch kind {
	case PersonName:
		id.normalized = normalizeName(raw)
	case TickerSymbol:
		id.normalized = normalizeTicker(raw)
	case RegistryID:
		id.normalized = normalizeRegistryID(raw)
		if id.normalized != "" {
			id.stripped = Strip(id.normalized)
		}
	}

	return id
}

// Kind returns the identifier kind.
func (i Identifier) Kind() Kind { return i.kind }

// Raw returns the input exactly as entered.
func (i Identifier) Raw() string { return i.raw }

// Empty reports whether the identifier is inert and must not be queried.
func (i Identifier) Empty() bool { return i.normalized == "" }

// Normalized returns the canonical form: the whitespace-collapsed name, the
// upper-case ticker, or the trimmed CIK with its leading zeros as entered.
// Tickers are alphanumeric except for single interior '.' or '-' share-class
// separators, as in "BRK.B" and "BF-B".
func (i Identifier) Normalized() string { return i.normalized }

// Transport returns the form used inside a URL query string. Spaces in names
// become "+".
func (i Identifier) Transport() string {
	return url.QueryEscape(i.normalized)
}

// AsEntered returns the CIK with leading zeros preserved.
func (i Identifier) AsEntered() string {
	if i.kind != RegistryID {
		return ""
	}
	return i.normalized
}

// Stripped returns the CIK with leading zeros removed.
func (i Identifier) Stripped() string {
	if i.kind != RegistryID {
		return ""
	}
	return i.stripped
}

// Padded returns the CIK zero-padded to width. It never truncates.
func (i Identifier) Padded(width int) string {
	if i.kind != RegistryID || i.stripped == "" {
		return ""
	}
	return Pad(i.stripped, width)
}

func (i Identifier) String() string {
	return i.kind.String() + ":" + i.normalized
}

func normalizeName(raw string) string {
	return strings.Join(strings.Fields(norm.NFC.String(raw)), " ")
}

func normalizeTicker(raw string) string {
	t := upper(strings.TrimSpace(width.Narrow.String(raw)))
	if t == "" {
		return ""
	}
	for i := 0; i < len(t); i++ {
		c := t[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '.' || c == '-':
			// Share-class separator: BRK.B, BF-B.
			if i == 0 || i == len(t)-1 || t[i-1] == '.' || t[i-1] == '-' {
				return ""
			}
		default:
			return ""
		}
	}
	return t
}

// upper builds a fresh Caser per call; a Caser holds state and cannot be
// shared between goroutines.
func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func normalizeRegistryID(raw string) string {
	id := strings.TrimSpace(width.Narrow.String(raw))
	if id == "" {
		return ""
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return ""
		}
	}
	return id
}

// Strip removes leading zeros from a numeric id. An all-zero id strips to "0".
func Strip(id string) string {
	s := strings.TrimLeft(id, "0")
	if s == "" && id != "" {
		return "0"
	}
	return s
}

// Pad left-pads id with zeros to width.
func Pad(id string, width int) string {
	if len(id) >= width {
		return id
	}
	return strings.Repeat("0", width-len(id)) + id
}
