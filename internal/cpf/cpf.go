// Package cpf cleans, formats and validates Brazilian individual taxpayer
// identifiers (CPF).
//
// A CPF is 11 digits: nine base digits followed by two check digits, each
// derived from the preceding digits with a weighted sum modulo 11.
package cpf

import (
	"strings"
)

// Length is the canonical number of digits in a CPF.
const Length = 11

// Result is the outcome of validating one raw identifier.
type Result struct {
	Digits    string `json:"digits"`    // cleaned and zero-padded digits
	Formatted string `json:"formatted"` // XXX.XXX.XXX-XX when Digits has 11 digits
	Valid     bool   `json:"valid"`
	Empty     bool   `json:"empty"` // input had no digits at all
}

// Clean strips every non-digit character from raw.
func Clean(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		if c := raw[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// Pad left-pads digits with zeros up to Length. Longer input is returned as-is.
func Pad(digits string) string {
	if len(digits) >= Length {
		return digits
	}
	return strings.Repeat("0", Length-len(digits)) + digits
}

// Format groups an 11-digit string as XXX.XXX.XXX-XX.
// Any other length is returned unchanged.
func Format(digits string) string {
	if len(digits) != Length {
		return digits
	}
	return digits[0:3] + "." + digits[3:6] + "." + digits[6:9] + "-" + digits[9:11]
}

// Validate cleans, pads and check-digit-validates raw.
func Validate(raw string) Result {
	digits := Clean(raw)
	if digits == "" {
		return Result{Empty: true}
	}
	digits = Pad(digits)
	return Result{
		Digits:    digits,
		Formatted: Format(digits),
		Valid:     IsValid(digits),
	}
}

// IsValid reports whether digits is exactly 11 ASCII digits, not all the
// same digit, with both check digits correct.
func IsValid(digits string) bool {
	if len(digits) != Length || !allDigits(digits) {
		return false
	}
	if repeated(digits) {
		return false
	}
	if checkDigit(digits, 10) != int(digits[9]-'0') {
		return false
	}
	return checkDigit(digits, 11) == int(digits[10]-'0')
}

// CheckDigits returns the two check digits for a 9-digit base.
func CheckDigits(base string) (string, bool) {
	if len(base) != 9 || !allDigits(base) {
		return "", false
	}
	d1 := checkDigit(base+"0", 10)
	d2 := checkDigit(base+string(rune('0'+d1)), 11)
	return string([]byte{byte('0' + d1), byte('0' + d2)}), true
}

// checkDigit computes Σ d[i]*(weight-i) over the first weight-1 digits,
// then (sum*10) mod 11 with 10 folded to 0.
func checkDigit(digits string, weight int) int {
	sum := 0
	for i := 0; i < weight-1; i++ {
		sum += int(digits[i]-'0') * (weight - i)
	}
	r := (sum * 10) % 11
	if r == 10 {
		return 0
	}
	return r
}

func repeated(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
