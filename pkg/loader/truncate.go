package loader

import "unicode/utf8"

const (
	// DefaultTextLimit is the number of characters handed to extraction.
	DefaultTextLimit = 40000
	// TailLength is the number of trailing characters always kept, which
	// usually covers the conclusion of a paper.
	TailLength = 5000
	// TruncationMarker replaces the discarded middle of an oversized text.
	TruncationMarker = "\n\n...[SECTION SKIPPED FOR TOKEN LIMIT]...\n\n"
)

// Truncate bounds text to limit characters by keeping its head and its tail
// and dropping the middle. Characters are counted as runes.
//
// When text fits, it is returned unchanged. Otherwise the result is the first
// limit-TailLength characters, TruncationMarker, then the last TailLength
// characters. The tail is fixed; for limit <= TailLength only the head
// shrinks, to nothing.
func Truncate(text string, limit int) string {
	total := utf8.RuneCountInString(text)
	if total <= limit {
		return text
	}

	tailLen := min(TailLength, total)
	headLen := max(limit-TailLength, 0)

	runes := []rune(text)
	head := string(runes[:headLen])
	tail := string(runes[total-tailLen:])

	return head + TruncationMarker + tail
}
