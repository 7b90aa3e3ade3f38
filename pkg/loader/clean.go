package loader

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/OFFIS-RIT/paperkg/internal/util"
)

// DefaultMinTextLength is the shortest cleaned text worth sending to
// extraction. Shorter output usually means a scanned or broken PDF.
const DefaultMinTextLength = 500

// ErrUnreadableDocument is returned when a document yields no usable text.
var ErrUnreadableDocument = errors.New("unreadable document")

// CleanText prepares extracted text for extraction and persistence: it drops
// control characters and invalid UTF-8, turns tabs into spaces and trims it.
func CleanText(raw string) string {
	text := util.SanitizeText(raw)
	text = strings.ReplaceAll(text, "\t", " ")
	return strings.TrimSpace(text)
}

// PrepareText cleans raw and enforces minLength (in characters). Documents
// below the threshold fail with ErrUnreadableDocument.
func PrepareText(raw string, minLength int) (string, error) {
	text := CleanText(raw)
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return "", fmt.Errorf("%w: no text", ErrUnreadableDocument)
	}
	if n < minLength {
		return "", fmt.Errorf("%w: %d characters, need %d", ErrUnreadableDocument, n, minLength)
	}
	return text, nil
}
