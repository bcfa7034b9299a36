// Package phone formats Brazilian phone numbers as (DD)DDDDD-DDDD.
package phone

import "strings"

// Format rewrites a phone number by its digit count:
//
//	fewer than 10  left-pad with zeros to 10, then as 10
//	10             (DD)DDDDD-DDD
//	11             (DD)DDDDD-DDDD
//	more than 11   keep the last 10, then as 10
func Format(raw string) string {
	digits := digitsOf(raw)

	switch n := len(digits); {
	case n < 10:
		digits = strings.Repeat("0", 10-n) + digits
	case n > 11:
		digits = digits[n-10:]
	}

	return "(" + digits[:2] + ")" + digits[2:7] + "-" + digits[7:]
}

// FormatLine formats a trimmed line; a blank line stays blank.
func FormatLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	return Format(line)
}

func digitsOf(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b = append(b, s[i])
		}
	}
	return string(b)
}
