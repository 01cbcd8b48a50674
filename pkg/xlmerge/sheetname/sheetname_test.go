package sheetname

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Report", "Report"},
		{"a:b", "a_b"},
		{`x/y\z`, "x_y_z"},
		{"[draft]?*", "_draft___"},
		{"  padded  ", "padded"},
		{"'quoted'", "quoted"},
		{"tab\there", "tab_here"},
		{"", ""},
		{"Ventas 2024 (Q1)", "Ventas 2024 (Q1)"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.input); got != tt.expected {
			t.Errorf("Sanitize(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}

func TestUniqueFallback(t *testing.T) {
	tests := []string{"", "   ", "''"}
	for _, input := range tests {
		if got := Unique(input, Set{}); got != Fallback {
			t.Errorf("Unique(%q) = %q, expected %q", input, got, Fallback)
		}
	}
}

func TestUniqueTruncates(t *testing.T) {
	long := strings.Repeat("a", 40)
	got := Unique(long, Set{})
	if got != strings.Repeat("a", MaxLength) {
		t.Errorf("Unique(long) = %q", got)
	}
}

func TestUniqueCollision(t *testing.T) {
	used := Set{}
	first := Unique("Q1", used)
	used.Add(first)
	second := Unique("Q1", used)
	used.Add(second)
	third := Unique("Q1", used)

	if first != "Q1" || second != "Q1_2" || third != "Q1_3" {
		t.Errorf("got %q, %q, %q", first, second, third)
	}
}

func TestUniqueCaseInsensitive(t *testing.T) {
	used := Set{}
	used.Add("Report")
	if got := Unique("REPORT", used); got != "REPORT_2" {
		t.Errorf("Unique(REPORT) = %q, expected REPORT_2", got)
	}
}

func TestUniqueSanitizedCollision(t *testing.T) {
	used := Set{}
	used.Add(Unique("a:b", used))
	if got := Unique("a?b", used); got != "a_b_2" {
		t.Errorf("Unique(a?b) = %q, expected a_b_2", got)
	}
}

func TestUniqueLongCollisionStaysWithinLimit(t *testing.T) {
	long := strings.Repeat("a", 35)
	used := Set{}
	first := Unique(long, used)
	used.Add(first)
	second := Unique(long, used)

	if first != strings.Repeat("a", 31) {
		t.Errorf("first = %q", first)
	}
	if second != strings.Repeat("a", 29)+"_2" {
		t.Errorf("second = %q", second)
	}

	for i := 0; i < 120; i++ {
		name := Unique(long, used)
		if utf8.RuneCountInString(name) > MaxLength {
			t.Fatalf("name %q exceeds %d characters", name, MaxLength)
		}
		if used.Contains(name) {
			t.Fatalf("name %q already used", name)
		}
		used.Add(name)
	}
}

func TestUniqueMultibyte(t *testing.T) {
	name := strings.Repeat("売", 40)
	got := Unique(name, Set{})
	if utf8.RuneCountInString(got) != MaxLength {
		t.Errorf("expected %d runes, got %d", MaxLength, utf8.RuneCountInString(got))
	}
}

func TestUniqueIsPure(t *testing.T) {
	used := Set{}
	used.Add("Data")
	a := Unique("Data", used)
	b := Unique("Data", used)
	if a != b {
		t.Errorf("Unique not deterministic: %q vs %q", a, b)
	}
	if len(used) != 1 {
		t.Errorf("Unique modified the used set")
	}
}
