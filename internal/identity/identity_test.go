package identity

import (
	"reflect"
	"testing"
)

func TestNormalizeDomain(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantOK  bool
	}{
		{"bare host", "acme.io", "acme.io", true},
		{"full url", "https://www.acme.io/about", "acme.io", true},
		{"http scheme kept", "http://acme.io", "acme.io", true},
		{"uppercase host", "HTTPS://ACME.IO", "acme.io", true},
		{"www stripped", "www.acme.io", "acme.io", true},
		{"whitespace trimmed", "  acme.io  ", "acme.io", true},
		{"blank", "", "", false},
		{"spaces only", "   ", "", false},
		{"no-website sentinel", "No website: still stealth", "", false},
		{"garbage", "ht tp://%%%", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NormalizeDomain(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("NormalizeDomain(%q) ok = %v, want %v", tc.input, ok, tc.wantOK)
			}
			if got != tc.want {
				t.Errorf("NormalizeDomain(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestNormalizeDomainIdempotent(t *testing.T) {
	inputs := []string{"acme.io", "https://www.acme.io/careers", "HTTPS://Jobs.Acme.IO"}
	for _, in := range inputs {
		once, ok := NormalizeDomain(in)
		if !ok {
			t.Fatalf("NormalizeDomain(%q) unexpectedly failed", in)
		}
		twice, ok := NormalizeDomain(once)
		if !ok || twice != once {
			t.Errorf("NormalizeDomain not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestFirstLabel(t *testing.T) {
	if got := FirstLabel("acme.io"); got != "acme" {
		t.Errorf("FirstLabel(acme.io) = %q, want acme", got)
	}
	if got := FirstLabel("jobs.acme.io"); got != "jobs" {
		t.Errorf("FirstLabel(jobs.acme.io) = %q, want jobs", got)
	}
	if got := FirstLabel(""); got != "" {
		t.Errorf("FirstLabel(\"\") = %q, want empty", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Acme Robotics", "acme-robotics"},
		{"Acme, Inc.", "acme-inc"},
		{"  Acme  ", "acme"},
		{"Crypto.com", "crypto-com"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Slugify(tc.input); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestSlugVariantsOrder(t *testing.T) {
	got := SlugVariants("Acme Robotics", "acme")
	want := []string{
		"acme",
		"acme-robotics",
		"acme-robotics-labs",
		"acme-robotics-foundation",
		"acme-robotics-protocol",
		"acme-robotics-network",
		"acme-robotics-team",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SlugVariants = %v, want %v", got, want)
	}
}

func TestSlugVariantsDedup(t *testing.T) {
	// Domain label equal to the name slug must not appear twice.
	got := SlugVariants("Acme", "acme")
	if got[0] != "acme" {
		t.Fatalf("first candidate = %q, want acme", got[0])
	}
	seen := make(map[string]int)
	for _, c := range got {
		seen[c]++
		if seen[c] > 1 {
			t.Errorf("candidate %q appears more than once in %v", c, got)
		}
	}
}

func TestSlugVariantsNoDomain(t *testing.T) {
	got := SlugVariants("Acme", "")
	if len(got) == 0 || got[0] != "acme" {
		t.Fatalf("SlugVariants without domain = %v, want base slug first", got)
	}
	for _, c := range got {
		if c == "" {
			t.Error("empty candidate emitted")
		}
	}
}
