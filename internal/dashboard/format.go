package dashboard

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const (
	tableDateLayout  = "Jan 2, 2006, 03:04 PM"
	detailDateLayout = "Monday, January 2, 2006 at 03:04:05 PM MST"
)

// Symbols for the currencies en-US displays with a symbol instead of the code.
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CAD": "CA$",
	"AUD": "A$",
	"NZD": "NZ$",
	"HKD": "HK$",
	"MXN": "MX$",
	"TWD": "NT$",
	"BRL": "R$",
	"CNY": "CN¥",
	"INR": "₹",
	"KRW": "₩",
	"ILS": "₪",
	"PHP": "₱",
	"VND": "₫",
}

// FormatAmount renders an amount of minor units in en-US currency style, e.g.
// 123456 usd -> "$1,234.56" and 500 chf -> "CHF 5.00".
func FormatAmount(amount int64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	scale := 2
	if unit, err := currency.ParseISO(code); err == nil {
		scale, _ = currency.Standard.Rounding(unit)
	}

	value := decimal.New(amount, -int32(scale))
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Neg()
	}
	number := groupDigits(value.StringFixed(int32(scale)))

	switch symbol, ok := currencySymbols[code]; {
	case ok:
		return sign + symbol + number
	case code == "":
		return sign + number
	default:
		return sign + code + " " + number
	}
}

// groupDigits inserts thousands separators into the integer part of s.
func groupDigits(s string) string {
	whole, frac, hasFrac := strings.Cut(s, ".")
	if len(whole) > 3 {
		var b strings.Builder
		lead := len(whole) % 3
		if lead > 0 {
			b.WriteString(whole[:lead])
		}
		for i := lead; i < len(whole); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(whole[i : i+3])
		}
		whole = b.String()
	}
	if hasFrac {
		return whole + "." + frac
	}
	return whole
}

// FormatTableDate is the short form used in the payments table.
func FormatTableDate(t time.Time, loc *time.Location) string {
	return formatDate(t, loc, tableDateLayout)
}

// FormatDetailDate is the long form used in the detail panel.
func FormatDetailDate(t time.Time, loc *time.Location) string {
	return formatDate(t, loc, detailDateLayout)
}

func formatDate(t time.Time, loc *time.Location, layout string) string {
	if t.IsZero() {
		return notAvailable
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(layout)
}

// capitalize upper-cases the first letter only: "requires_action" -> "Requires_action".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
