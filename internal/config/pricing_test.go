package config

import (
	"math"
	"testing"
)

func TestLookup_NormalizesDateSuffix(t *testing.T) {
	table := NewPricingTable(PricingOverrides{})

	p, ok := table.Lookup("claude-sonnet-4-5-20250929")
	if !ok {
		t.Fatal("Lookup failed for date-suffixed model id")
	}
	if p.InputPerMTok != 3.00 {
		t.Errorf("InputPerMTok = %v, want 3.00", p.InputPerMTok)
	}
}

func TestLookup_UnknownModel(t *testing.T) {
	table := NewPricingTable(PricingOverrides{})

	if _, ok := table.Lookup("totally-unknown-model"); ok {
		t.Error("Lookup should fail for an unknown model, never report zero cost")
	}
	// A digit suffix alone must not make an unknown model match.
	if _, ok := table.Lookup("mystery-20250101"); ok {
		t.Error("Lookup matched an unknown model via suffix stripping")
	}
}

func TestNormalizeModelName(t *testing.T) {
	table := NewPricingTable(PricingOverrides{})

	tests := []struct {
		in, want string
	}{
		{"claude-sonnet-4-5", "claude-sonnet-4-5"},
		{"claude-sonnet-4-5-20250929", "claude-sonnet-4-5"},
		{"claude-opus-4-1-20250805", "claude-opus-4-1"},
		{"claude-sonnet-4-5-dev", "claude-sonnet-4-5-dev"}, // non-digit suffix kept
		{"unknown-model", "unknown-model"},
	}

	for _, tt := range tests {
		if got := table.NormalizeModelName(tt.in); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCost_AllRates(t *testing.T) {
	table := NewPricingTable(PricingOverrides{})

	cost, ok := table.Cost("claude-sonnet-4-5", 1000, 500, 200, 10_000)
	if !ok {
		t.Fatal("Cost failed for a known model")
	}
	want := 1000*3e-6 + 500*15e-6 + 200*3.75e-6 + 10_000*0.30e-6
	if math.Abs(cost-want) > 1e-12 {
		t.Errorf("Cost = %v, want %v", cost, want)
	}
}

func TestCost_UnknownModel(t *testing.T) {
	table := NewPricingTable(PricingOverrides{})

	if _, ok := table.Cost("nope", 1000, 500, 0, 0); ok {
		t.Error("Cost should fail for an unknown model")
	}
}

func TestNewPricingTable_Overrides(t *testing.T) {
	in := 9.0
	table := NewPricingTable(PricingOverrides{
		Overrides: map[string]ModelPricingOverride{
			"claude-sonnet-4-5": {InputPerMTok: &in},
		},
	})

	p, ok := table.Lookup("claude-sonnet-4-5")
	if !ok {
		t.Fatal("Lookup failed")
	}
	if p.InputPerMTok != 9.0 {
		t.Errorf("override not applied: InputPerMTok = %v", p.InputPerMTok)
	}
	if p.OutputPerMTok != 15.00 {
		t.Errorf("untouched field changed: OutputPerMTok = %v", p.OutputPerMTok)
	}
}

func TestNewPricingTable_OverrideNewModel(t *testing.T) {
	in, out := 1.0, 2.0
	table := NewPricingTable(PricingOverrides{
		Overrides: map[string]ModelPricingOverride{
			"my-local-model": {InputPerMTok: &in, OutputPerMTok: &out},
		},
	})

	cost, ok := table.Cost("my-local-model", 1_000_000, 1_000_000, 0, 0)
	if !ok {
		t.Fatal("override-only model not found")
	}
	if math.Abs(cost-3.0) > 1e-12 {
		t.Errorf("Cost = %v, want 3.0", cost)
	}
}
