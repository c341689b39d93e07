package ai_test

import (
	"math"
	"testing"

	"github.com/DataBuoy/databuoy-cli/internal/ai"
)

func TestDefaultModelIsCataloged(t *testing.T) {
	mi, ok := ai.LookupModel(ai.DefaultModel)
	if !ok {
		t.Fatalf("default model %q not in catalog", ai.DefaultModel)
	}
	if mi.ContextTokens <= 0 {
		t.Errorf("default model has no context window: %+v", mi)
	}
}

func TestEstimateCostUSD(t *testing.T) {
	cases := []struct {
		name             string
		model            string
		prompt, complete int
		want             float64
		ok               bool
	}{
		{"gpt-4o-mini", "openai/gpt-4o-mini", 1000, 1000, 0.0006 + 0.0024, true},
		{"free model", "deepseek/deepseek-r1:free", 1000, 1000, 0, true},
		{"unknown", "nope/nothing", 1000, 1000, 0, false},
	}
	for _, c := range cases {
		got, ok := ai.EstimateCostUSD(c.model, c.prompt, c.complete)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("%s: cost = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCatalogSorted(t *testing.T) {
	cat := ai.Catalog()
	if len(cat) == 0 {
		t.Fatal("empty catalog")
	}
	for i := 1; i < len(cat); i++ {
		if cat[i-1].Name >= cat[i].Name {
			t.Errorf("catalog not sorted at %d: %q >= %q", i, cat[i-1].Name, cat[i].Name)
		}
	}
}
