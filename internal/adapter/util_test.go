package adapter

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain html", "<p>Hello <b>world</b></p>", "Hello world"},
		{"double encoded", "&lt;p&gt;Hello&lt;/p&gt;", "Hello"},
		{"entities", "R&amp;D engineer", "R&D engineer"},
		{"whitespace collapsed", "a\n\n  b\t c", "a b c"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractText(tc.input); got != tc.want {
				t.Errorf("extractText(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestShortDescription(t *testing.T) {
	long := strings.Repeat("x", 2*maxDescriptionLen)
	got := shortDescription("<p>" + long + "</p>")
	if len([]rune(got)) != maxDescriptionLen {
		t.Fatalf("truncated length = %d, want %d", len([]rune(got)), maxDescriptionLen)
	}

	// Rune-safe: multibyte text must not be cut mid-rune.
	wide := strings.Repeat("ü", maxDescriptionLen+10)
	got = shortDescription(wide)
	if len([]rune(got)) != maxDescriptionLen {
		t.Fatalf("multibyte truncated length = %d, want %d", len([]rune(got)), maxDescriptionLen)
	}

	if got := shortDescription("short"); got != "short" {
		t.Errorf("short text altered: %q", got)
	}
}

func TestLabeledLocation(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Senior Engineer | Location: Remote | Full-time", "Remote"},
		{"location: Berlin, Germany", "Berlin, Germany"},
		{"No labels at all", ""},
	}
	for _, tc := range tests {
		if got := labeledLocation(tc.input); got != tc.want {
			t.Errorf("labeledLocation(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLabeledType(t *testing.T) {
	if got := labeledType("Employment Type: Contract"); got != "Contract" {
		t.Errorf("labeledType = %q, want Contract", got)
	}
	if got := labeledType("Type: Part-time | Location: Oslo"); got != "Part-time" {
		t.Errorf("labeledType = %q, want Part-time", got)
	}
	if got := labeledType("nothing here"); got != "" {
		t.Errorf("labeledType = %q, want empty", got)
	}
}

func TestAbsoluteURL(t *testing.T) {
	if got := absoluteURL("https://boards.greenhouse.io", "/acme/jobs/1"); got != "https://boards.greenhouse.io/acme/jobs/1" {
		t.Errorf("relative = %q", got)
	}
	if got := absoluteURL("https://boards.greenhouse.io", "https://x.io/j/1"); got != "https://x.io/j/1" {
		t.Errorf("absolute = %q", got)
	}
}

func TestClip(t *testing.T) {
	items := []int{1, 2, 3}
	if got := clip(items, 2); len(got) != 2 {
		t.Errorf("clip(3, 2) len = %d", len(got))
	}
	if got := clip(items, 5); len(got) != 3 {
		t.Errorf("clip(3, 5) len = %d", len(got))
	}
	if got := clip(items, 0); len(got) != 3 {
		t.Errorf("clip(3, 0) must not truncate, len = %d", len(got))
	}
}
