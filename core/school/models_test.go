package school

import "testing"

func TestMakeCode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "simple", in: "Springfield High", want: "SPR"},
		{name: "lowercase", in: "mbandaka primary", want: "MBA"},
		{name: "padded", in: "  Lycée Bosangani  ", want: "LYC"},
		{name: "short name", in: "Go", want: "GO"},
		{name: "colliding prefix", in: "Springdale Academy", want: "SPR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MakeCode(tt.in); got != tt.want {
				t.Errorf("MakeCode(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}
