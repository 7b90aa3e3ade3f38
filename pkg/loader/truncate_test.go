package loader

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func makeText(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	return b.String()
}

func TestTruncate_LongDocument(t *testing.T) {
	text := makeText(100000)

	got := Truncate(text, 40000)

	if n := utf8.RuneCountInString(got); n > 40000+len(TruncationMarker) {
		t.Fatalf("length %d exceeds limit plus marker", n)
	}
	if !strings.HasPrefix(got, text[:35000]+TruncationMarker) {
		t.Fatal("expected first 35000 characters followed by the marker")
	}
	if !strings.HasSuffix(got, TruncationMarker+text[len(text)-5000:]) {
		t.Fatal("expected marker followed by last 5000 characters")
	}
	if len(got) != 40000+len(TruncationMarker) {
		t.Fatalf("len = %d, want %d", len(got), 40000+len(TruncationMarker))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "empty",
			text:  "",
			limit: 10,
			want:  "",
		},
		{
			name:  "under limit",
			text:  "short paper",
			limit: 100,
			want:  "short paper",
		},
		{
			name:  "exactly at limit",
			text:  "abcde",
			limit: 5,
			want:  "abcde",
		},
		{
			name:  "short text over small limit keeps whole tail",
			text:  "abcdefghij",
			limit: 4,
			want:  TruncationMarker + "abcdefghij",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.text, tt.limit); got != tt.want {
				t.Fatalf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncate_LimitEqualToTail(t *testing.T) {
	text := makeText(TailLength + 10)
	got := Truncate(text, TailLength)
	want := TruncationMarker + text[10:]
	if got != want {
		t.Fatalf("expected empty head and full tail, got %d chars", len(got))
	}
}

func TestTruncate_SmallLimitKeepsFullTail(t *testing.T) {
	text := strings.Repeat("a", 1000) + strings.Repeat("b", TailLength)

	for _, limit := range []int{3000, 0} {
		got := Truncate(text, limit)
		if got != TruncationMarker+strings.Repeat("b", TailLength) {
			t.Fatalf("limit %d: expected empty head and the last %d characters, got %d chars",
				limit, TailLength, utf8.RuneCountInString(got))
		}
	}
}

func TestTruncate_CountsRunes(t *testing.T) {
	text := strings.Repeat("ü", TailLength+100) + strings.Repeat("ß", 10)
	got := Truncate(text, TailLength+50)

	if !utf8.ValidString(got) {
		t.Fatal("truncation split a multi-byte character")
	}
	want := strings.Repeat("ü", 50) + TruncationMarker + strings.Repeat("ü", TailLength-10) + strings.Repeat("ß", 10)
	if got != want {
		t.Fatalf("unexpected rune-based truncation, got %d runes", utf8.RuneCountInString(got))
	}
}
