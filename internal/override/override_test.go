package override

import (
	"testing"

	"github.com/jobsift/jobsift/internal/model"
)

func TestCompany(t *testing.T) {
	tests := []struct {
		name        string
		wantBackend model.Backend
		wantToken   string
	}{
		{"Chainlink", model.BackendAshby, "chainlink-labs"},
		{"aave", model.BackendLever, "aavelabs"},
		{"Optimism", model.BackendAshby, "opfoundation"},
		{"bebop", model.BackendLever, "wintermute-trading"},
		{"bebob", model.BackendLever, "wintermute-trading"},
	}
	for _, tc := range tests {
		e, ok := Company(tc.name)
		if !ok {
			t.Fatalf("Company(%q) not found", tc.name)
		}
		if e.Backend != tc.wantBackend || e.Token != tc.wantToken {
			t.Errorf("Company(%q) = %v/%q, want %v/%q",
				tc.name, e.Backend, e.Token, tc.wantBackend, tc.wantToken)
		}
	}
}

func TestCompanyCaseAndWhitespace(t *testing.T) {
	if _, ok := Company("  CHAINLINK  "); !ok {
		t.Error("lookup should ignore case and surrounding whitespace")
	}
	if _, ok := Company("unknown co"); ok {
		t.Error("unexpected override for unknown company")
	}
}

func TestLeverSlug(t *testing.T) {
	slug, ok := LeverSlug("Sei Labs")
	if !ok || slug != "SeiLabs" {
		t.Fatalf("LeverSlug(Sei Labs) = %q/%v, want SeiLabs/true", slug, ok)
	}
	slug, ok = LeverSlug("crypto.com")
	if !ok || slug != "cryptocom" {
		t.Fatalf("LeverSlug(crypto.com) = %q/%v, want cryptocom/true", slug, ok)
	}
	if _, ok := LeverSlug("acme"); ok {
		t.Error("unexpected slug correction for acme")
	}
}
