package logger

import (
	"strings"
	"unicode/utf8"
)

// MaskEmail keeps the first character of the local part and the domain, so
// sign-up attempts can be correlated in logs without recording the address.
// jane.doe@example.com becomes j***@example.com.
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok || strings.Contains(domain, "@") {
		return "***@***"
	}

	first, size := utf8.DecodeRuneInString(local)
	if size == 0 || first == utf8.RuneError {
		return "***@" + domain
	}
	return string(first) + "***@" + domain
}
