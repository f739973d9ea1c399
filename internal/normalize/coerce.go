package normalize

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/rickgao/disclosure-data/internal/model"
)

// Numbers beyond these bounds are treated as malformed.
const (
	maxExponent = 64
	maxDigits   = 64
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// coerce converts a raw leaf to the column type. Unusable input is Missing;
// nothing is guessed.
func coerce(v gjson.Result, ok bool, t model.ColumnType) model.Value {
	if !ok || v.Type == gjson.Null {
		return model.Value{}
	}
	switch t {
	case model.NumberColumn:
		if d, ok := parseNumber(v); ok {
			return model.Number(d)
		}
	case model.DateColumn:
		if ts, ok := parseDate(v); ok {
			return model.Date(ts)
		}
	default:
		s := v.Raw
		if v.Type == gjson.String {
			s = strings.TrimSpace(v.Str)
		}
		if s != "" {
			return model.Str(s)
		}
	}
	return model.Value{}
}

func parseNumber(v gjson.Result) (decimal.Decimal, bool) {
	var s string
	switch v.Type {
	case gjson.Number:
		s = v.Raw
	case gjson.String:
		s = cleanNumber(v.Str)
	default:
		return decimal.Decimal{}, false
	}
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent || d.NumDigits() > maxDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}

// cleanNumber strips currency symbols, thousands separators and spaces.
// Accounting negatives like "(1,200)" become "-1200".
func cleanNumber(s string) string {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', ' ':
			return -1
		}
		return r
	}, s)
	if neg && s != "" {
		s = "-" + s
	}
	return s
}

func parseDate(v gjson.Result) (time.Time, bool) {
	if v.Type != gjson.String {
		return time.Time{}, false
	}
	s := strings.TrimSpace(v.Str)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
