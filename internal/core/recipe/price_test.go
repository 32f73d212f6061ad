package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 預期值由 pyrand 與參考 MT19937 實作交叉比對取得
func TestApproxPriceMatchesReference(t *testing.T) {
	cases := map[string]float64{
		"chicken":      431.9,
		"flour":        201.6,
		"salt":         162.9,
		"olive oil":    125.4,
		"mozzarella":   123.4,
		"tomato puree": 215.3,
		"Plain Flour":  71.8,
		"Passata":      81.5,
		"Biryani":      51.5,
		"Garlic":       448.1,
		"":             482.1,
	}

	for name, want := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, ApproxPrice(name))
		})
	}
}

func TestApproxPriceIgnoresCase(t *testing.T) {
	assert.Equal(t, ApproxPrice("chicken"), ApproxPrice("Chicken"))
	assert.Equal(t, ApproxPrice("chicken"), ApproxPrice("CHICKEN"))
	assert.Equal(t, ApproxPrice("Olive Oil"), ApproxPrice("olive oil"))
}

func TestApproxPriceIsStable(t *testing.T) {
	first := ApproxPrice("Mozzarella")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ApproxPrice("Mozzarella"))
	}
}

func TestApproxPriceRange(t *testing.T) {
	names := []string{"Water", "Sugar", "Yeast", "Basil", "Tomato", "Lamb", "Rice", "Cumin", "Egg", "Butter"}
	for _, name := range names {
		p := ApproxPrice(name)
		assert.GreaterOrEqual(t, p, MinPrice, name)
		assert.LessOrEqual(t, p, MaxPrice, name)
		assert.Equal(t, p, roundTenths(p), "%s has one decimal place", name)
	}
}

func TestRoundTenths(t *testing.T) {
	assert.Equal(t, 431.9, roundTenths(431.8811))
	assert.Equal(t, 50.0, roundTenths(50.04))
	assert.Equal(t, 500.0, roundTenths(499.96))
	assert.Equal(t, "50.0", FormatPrice(50))
}
