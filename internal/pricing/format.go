package pricing

import (
	"strconv"
	"strings"
)

var currencyGlyphs = map[string]string{
	"USD": "$",
	"JPY": "¥",
	"GBP": "£",
	"EUR": "€",
	"AUD": "A$",
	"CAD": "C$",
}

// FormatTotal renders an amount as the currency glyph followed by the
// integer part with thousands separators. The fraction is truncated, not
// rounded. Currencies without a known glyph use the code as prefix.
func FormatTotal(amount float64, currency string) string {
	glyph, ok := currencyGlyphs[currency]
	if !ok {
		glyph = currency + " "
	}
	return glyph + groupThousands(int64(amount))
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
