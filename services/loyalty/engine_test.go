package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/flashcart/lib/mytime"
	"github.com/MarcGrol/flashcart/services/pricing"
)

var (
	monday  = mytime.ExampleTime
	tuesday = mytime.ExampleTuesday
)

func TestCalculate(t *testing.T) {
	engine := NewEngine(DefaultRules())

	t.Run("Empty cart", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{}, nil, tuesday)

		// then
		assert.Equal(t, PointsBreakdown{Details: []string{}}, got)
	})

	t.Run("Base points are floored", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 90999, ItemCount: 1}, []string{"p5"}, monday)

		// then
		assert.Equal(t, PointsBreakdown{FinalPoints: 90, Details: []string{"base: 90p"}}, got)
	})

	t.Run("Tuesday doubles base only", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 202500, ItemCount: 30}, []string{"p1"}, tuesday)

		// then
		assert.Equal(t, PointsBreakdown{
			FinalPoints: 202*2 + 100,
			Details:     []string{"base: 202p", "Tuesday x2", "bulk purchase (30+) +100p"},
		}, got)
	})

	t.Run("No tuesday detail below one point", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 999, ItemCount: 1}, []string{"p1"}, tuesday)

		// then
		assert.Equal(t, PointsBreakdown{Details: []string{}}, got)
	})

	t.Run("Keyboard and mouse set", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 30000, ItemCount: 2}, []string{"p2", "p1"}, monday)

		// then
		assert.Equal(t, PointsBreakdown{
			FinalPoints: 30 + 50,
			Details:     []string{"base: 30p", "keyboard+mouse set +50p"},
		}, got)
	})

	t.Run("Full set", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 60000, ItemCount: 12}, []string{"p1", "p2", "p3"}, tuesday)

		// then
		assert.Equal(t, PointsBreakdown{
			FinalPoints: 120 + 50 + 100 + 20,
			Details:     []string{"base: 60p", "Tuesday x2", "keyboard+mouse set +50p", "full set +100p", "bulk purchase (10+) +20p"},
		}, got)
	})

	t.Run("Monitor arm without set earns nothing extra", func(t *testing.T) {
		// when
		got := engine.Calculate(pricing.DiscountBreakdown{FinalAmount: 40000, ItemCount: 2}, []string{"p1", "p3"}, monday)

		// then
		assert.Equal(t, PointsBreakdown{FinalPoints: 40, Details: []string{"base: 40p"}}, got)
	})
}

func TestQuantityBonus(t *testing.T) {
	engine := NewEngine(DefaultRules())

	testCases := []struct {
		itemCount int
		expected  int64
	}{
		{itemCount: 0, expected: 0},
		{itemCount: 9, expected: 0},
		{itemCount: 10, expected: 20},
		{itemCount: 19, expected: 20},
		{itemCount: 20, expected: 50},
		{itemCount: 29, expected: 50},
		{itemCount: 30, expected: 100},
		{itemCount: 100, expected: 100},
	}
	previous := int64(0)
	for _, tc := range testCases {
		got := engine.QuantityBonus(tc.itemCount)
		assert.Equal(t, tc.expected, got, "item count %d", tc.itemCount)
		assert.GreaterOrEqual(t, got, previous)
		previous = got
	}
}
