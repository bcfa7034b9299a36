// Package email performs a pragmatic syntax check of e-mail addresses.
//
// It does not implement RFC 5322. It rejects common typing mistakes in
// contact lists and enforces the RFC 5321 length limits.
package email

import (
	"regexp"
	"strings"
)

const (
	maxLength       = 254
	maxLocalLength  = 64
	maxDomainLength = 253
)

var shape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Valid reports whether addr, trimmed, is a plausible e-mail address.
func Valid(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" || !shape.MatchString(addr) {
		return false
	}

	if strings.Contains(addr, "..") ||
		strings.HasPrefix(addr, ".") || strings.HasSuffix(addr, ".") ||
		strings.Contains(addr, "@.") || strings.Contains(addr, ".@") {
		return false
	}

	if len(addr) > maxLength {
		return false
	}

	local, domain, _ := strings.Cut(addr, "@")
	if len(local) == 0 || len(local) > maxLocalLength {
		return false
	}
	if len(domain) == 0 || len(domain) > maxDomainLength {
		return false
	}
	return !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

// CheckLine renders "<addr> - VÁLIDO" or "<addr> - INVÁLIDO" for a trimmed
// line. A blank line stays blank.
func CheckLine(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if Valid(line) {
		return line + " - VÁLIDO"
	}
	return line + " - INVÁLIDO"
}
