package charts

import (
	"errors"
	"testing"
)

func TestFormatGeneration(t *testing.T) {
	cases := map[string]string{
		"generation-i":    "Generation-I",
		"generation-iii":  "Generation-III",
		"generation-viii": "Generation-VIII",
		"GENERATION-ix":   "Generation-IX",
	}
	for in, want := range cases {
		got, err := FormatGeneration(in)
		if err != nil {
			t.Fatalf("FormatGeneration(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("FormatGeneration(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatGenerationMalformed(t *testing.T) {
	for _, in := range []string{"generationi", "generation-i-extra", "", "-i", "generation-"} {
		got, err := FormatGeneration(in)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Fatalf("FormatGeneration(%q) = %q, %v; want FormatError", in, got, err)
		}
		if fe.Value != in {
			t.Fatalf("error carries %q, want %q", fe.Value, in)
		}
		if got != "" {
			t.Fatalf("malformed input must not produce a label, got %q", got)
		}
	}
}

func TestCapitalize(t *testing.T) {
	cases := map[string]string{
		"fire":   "Fire",
		"WATER":  "Water",
		"":       "",
		"x":      "X",
		"élan":   "Élan",
		"shadow": "Shadow",
	}
	for in, want := range cases {
		if got := Capitalize(in); got != want {
			t.Fatalf("Capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}
