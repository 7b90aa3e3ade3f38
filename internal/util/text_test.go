package util

import "testing"

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain utf8", input: "3D Gaussian Splatting", want: "3D Gaussian Splatting"},
		{name: "null bytes", input: "Ne\x00RF\x00", want: "NeRF"},
		{name: "invalid utf8", input: string([]byte{'P', 0xff, 'S', 'N', 'R'}), want: "PSNR"},
		{name: "form feed between pages", input: "page one\fpage two", want: "page onepage two"},
		{name: "layout whitespace kept", input: "a\tb\r\nc", want: "a\tb\r\nc"},
		{name: "multibyte kept", input: "Müller–Lyer", want: "Müller–Lyer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeText(tt.input); got != tt.want {
				t.Fatalf("SanitizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
