package config

import "strings"

// ModelPricing holds per-million-token prices for a model. A zero cache
// rate means the model has no defined cache pricing and cache tokens are
// not charged.
type ModelPricing struct {
	InputPerMTok      float64
	OutputPerMTok     float64
	CacheWritePerMTok float64
	CacheReadPerMTok  float64
}

// defaultPricing maps model base names to their pricing.
var defaultPricing = map[string]ModelPricing{
	"claude-opus-4-5": {
		InputPerMTok: 5.00, OutputPerMTok: 25.00,
		CacheWritePerMTok: 6.25, CacheReadPerMTok: 0.50,
	},
	"claude-opus-4-1": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-opus-4": {
		InputPerMTok: 15.00, OutputPerMTok: 75.00,
		CacheWritePerMTok: 18.75, CacheReadPerMTok: 1.50,
	},
	"claude-sonnet-4-5": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-sonnet-4-1": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-sonnet-4": {
		InputPerMTok: 3.00, OutputPerMTok: 15.00,
		CacheWritePerMTok: 3.75, CacheReadPerMTok: 0.30,
	},
	"claude-haiku-4-5": {
		InputPerMTok: 1.00, OutputPerMTok: 5.00,
		CacheWritePerMTok: 1.25, CacheReadPerMTok: 0.10,
	},
	"claude-haiku-3-5": {
		InputPerMTok: 0.80, OutputPerMTok: 4.00,
		CacheWritePerMTok: 1.00, CacheReadPerMTok: 0.08,
	},
}

// PricingTable is an immutable model -> price mapping, built once at
// startup and passed by reference into the cost scanner.
type PricingTable struct {
	models map[string]ModelPricing
}

// NewPricingTable builds the pricing table from the built-in defaults
// with any user overrides from config applied on top.
func NewPricingTable(overrides PricingOverrides) *PricingTable {
	models := make(map[string]ModelPricing, len(defaultPricing))
	for name, p := range defaultPricing {
		models[name] = p
	}

	for name, o := range overrides.Overrides {
		p := models[name]
		if o.InputPerMTok != nil {
			p.InputPerMTok = *o.InputPerMTok
		}
		if o.OutputPerMTok != nil {
			p.OutputPerMTok = *o.OutputPerMTok
		}
		if o.CacheWritePerMTok != nil {
			p.CacheWritePerMTok = *o.CacheWritePerMTok
		}
		if o.CacheReadPerMTok != nil {
			p.CacheReadPerMTok = *o.CacheReadPerMTok
		}
		models[name] = p
	}

	return &PricingTable{models: models}
}

// NormalizeModelName strips date suffixes from model identifiers.
// e.g., "claude-sonnet-4-5-20250929" -> "claude-sonnet-4-5"
func (t *PricingTable) NormalizeModelName(raw string) string {
	if _, ok := t.models[raw]; ok {
		return raw
	}

	// Models can have date suffixes like -20250929 (8 digits)
	parts := strings.Split(raw, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if isAllDigits(last) && len(last) >= 8 {
			candidate := strings.Join(parts[:len(parts)-1], "-")
			if _, ok := t.models[candidate]; ok {
				return candidate
			}
		}
	}

	return raw
}

func isAllDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}

// Lookup returns the pricing for a model, normalizing the name first.
// Unknown models return zero pricing and false, never a zero-cost hit.
func (t *PricingTable) Lookup(model string) (ModelPricing, bool) {
	p, ok := t.models[t.NormalizeModelName(model)]
	return p, ok
}

// Cost computes the USD cost of a single API call. The second return is
// false when the model has no pricing; cost is never reported as zero
// for an unknown model.
func (t *PricingTable) Cost(model string, inputTokens, outputTokens, cacheWrite, cacheRead int64) (float64, bool) {
	pricing, ok := t.Lookup(model)
	if !ok {
		return 0, false
	}

	cost := float64(inputTokens) * pricing.InputPerMTok / 1_000_000
	cost += float64(outputTokens) * pricing.OutputPerMTok / 1_000_000
	if pricing.CacheWritePerMTok > 0 {
		cost += float64(cacheWrite) * pricing.CacheWritePerMTok / 1_000_000
	}
	if pricing.CacheReadPerMTok > 0 {
		cost += float64(cacheRead) * pricing.CacheReadPerMTok / 1_000_000
	}

	return cost, true
}
