package util

import (
	"strings"
	"unicode/utf8"
)

// SanitizeText makes text extracted from a PDF safe to store. Invalid UTF-8
// is dropped, as are C0 control characters other than tab, newline and
// carriage return. Postgres rejects null bytes in TEXT and JSONB, and PDF
// text layers often carry form feeds and other page-layout controls.
func SanitizeText(value string) string {
	if value == "" {
		return value
	}
	if utf8.ValidString(value) && strings.IndexFunc(value, isStrippedControl) < 0 {
		return value
	}

	var b strings.Builder
	b.Grow(len(value))
	for _, r := range strings.ToValidUTF8(value, "") {
		if isStrippedControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isStrippedControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}
