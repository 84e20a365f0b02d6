package llm

import (
	"math"
	"testing"
)

func TestCostUSDKnownModel(t *testing.T) {
	// gpt-4o-mini: $0.15 in / $0.60 out per MTok
	got := CostUSD("gpt-4o-mini", 1_000_000, 1_000_000)
	want := 0.15 + 0.60
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("CostUSD = %f, want %f", got, want)
	}
}

func TestCostUSDUnknownModelUsesFallbackRate(t *testing.T) {
	got := CostUSD("some-gateway-model", 1_000_000, 1_000_000)
	want := fallbackCost.Cost(1_000_000, 1_000_000)
	if got != want {
		t.Errorf("CostUSD = %f, want fallback %f", got, want)
	}
	if got <= 0 {
		t.Errorf("unknown model billed at %f, want positive fallback cost", got)
	}
}

func TestCostUSDZeroTokens(t *testing.T) {
	if got := CostUSD("some-gateway-model", 0, 0); got != 0 {
		t.Errorf("CostUSD with zero tokens = %f, want 0", got)
	}
}

func TestLookupCostUnknownIsNil(t *testing.T) {
	if c := LookupCost("no-such-model"); c != nil {
		t.Errorf("LookupCost = %+v, want nil", c)
	}
}
