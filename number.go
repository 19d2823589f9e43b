package calcline

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// ErrorText is the display text of a result that is not a finite number.
const ErrorText = "Error"

// FormatNumberToken renders a single number-like token for display. Group
// separators are recomputed, the decimal separator is normalized, and the
// sign is kept. A token containing the decimal separator is treated as
// possibly partial input, so its fractional digits, including trailing zeros
// or none at all, are kept exactly as typed. A token that is not a number is
// returned unchanged.
func FormatNumberToken(raw string) string {
	n := normalizeNumeric(raw)
	if ip, fp, ok := strings.Cut(n, string(canonicalSeparator)); ok && !strings.ContainsRune(fp, canonicalSeparator) {
		sign := ""
		if strings.HasPrefix(ip, "-") {
			sign, ip = "-", ip[1:]
		}
		if ip == "" && sign == "" {
			ip = "0"
		}
		if !allDigits(ip) || !allDigits(fp) {
			return raw
		}
		return sign + groupDigits(ip) + string(DecimalSeparator) + fp
	}
	if digits := strings.TrimPrefix(n, "-"); digits != "" && allDigits(digits) {
		sign := n[:len(n)-len(digits)]
		digits = strings.TrimLeft(digits, "0")
		if digits == "" {
			digits = "0"
		}
		return sign + groupDigits(digits)
	}
	d, _, err := apd.NewFromString(n)
	if err != nil || d.Form != apd.Finite {
		return raw
	}
	return FormatDecimal(d)
}

// FormatDecimal renders an evaluated value for display: grouped integer part,
// DecimalSeparator, and the fractional digits without trailing zeros. Values
// that are nil or not finite render as ErrorText.
func FormatDecimal(d *apd.Decimal) string {
	if d == nil || d.Form != apd.Finite {
		return ErrorText
	}
	s := d.Text('f')
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	ip, fp, _ := strings.Cut(s, string(canonicalSeparator))
	fp = strings.TrimRight(fp, "0")
	if d.IsZero() {
		sign = ""
	}
	if fp == "" {
		return sign + groupDigits(ip)
	}
	return sign + groupDigits(ip) + string(DecimalSeparator) + fp
}

func allDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}
	return true
}
