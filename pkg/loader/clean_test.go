package loader

import (
	"errors"
	"strings"
	"testing"
)

func TestCleanText(t *testing.T) {
	got := CleanText("  \tAbstract\x00:\tWe present\x00 NeRF.\n\n ")
	want := "Abstract: We present NeRF."
	if got != want {
		t.Fatalf("CleanText() = %q, want %q", got, want)
	}
}

func TestPrepareText(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		minLength  int
		unreadable bool
	}{
		{name: "empty", raw: "", minLength: 500, unreadable: true},
		{name: "whitespace only", raw: " \n\t\x00 ", minLength: 500, unreadable: true},
		{name: "below minimum", raw: strings.Repeat("x", 300), minLength: 500, unreadable: true},
		{name: "at minimum", raw: strings.Repeat("x", 500), minLength: 500},
		{name: "padding does not count", raw: "  " + strings.Repeat("x", 499) + "\t\t", minLength: 500, unreadable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PrepareText(tt.raw, tt.minLength)
			if tt.unreadable {
				if !errors.Is(err, ErrUnreadableDocument) {
					t.Fatalf("expected ErrUnreadableDocument, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
