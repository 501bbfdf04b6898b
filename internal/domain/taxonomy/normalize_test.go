package taxonomy

import (
	"reflect"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"lowercases", "Red Shirt", "red shirt"},
		{"color synonym", "Crimson Velvet Dress", "red silk dress"},
		{"grey to gray", "grey hoodie", "gray hoodie"},
		{"material synonym", "nylon jacket", "synthetic jacket"},
		{"word boundary respected", "navya shirt", "navya shirt"},
		{"collapses whitespace", "  blue   denim\tjeans ", "blue denim jeans"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.in); got != tt.want {
				t.Errorf("NormalizeText(%q): got %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeSize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"M", "m"},
		{"One Size", "one_size"},
		{"one-size", "one_size"},
		{"onesize", "one_size"},
		{"9 UK", "9uk"},
		{"10UK", "10uk"},
		{"XL", "xl"},
	}
	for _, tt := range tests {
		if got := NormalizeSize(tt.in); got != tt.want {
			t.Errorf("NormalizeSize(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTokenize(t *testing.T) {
	got := Tokenize("  Navy  Denim Jacket ")
	want := []string{"blue", "denim", "jacket"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize: got %v, want %v", got, want)
	}

	if got := Tokenize("   "); got != nil {
		t.Errorf("blank input: got %v, want nil", got)
	}
}

func TestIn(t *testing.T) {
	if !In(NeutralColors, "black") {
		t.Error("black should be neutral")
	}
	if In(NeutralColors, "red") {
		t.Error("red should not be neutral")
	}
}
