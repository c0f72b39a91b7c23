package loyalty

import (
	"fmt"
	"time"

	"github.com/MarcGrol/flashcart/services/pricing"
)

type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) Engine {
	return Engine{
		rules: rules,
	}
}

// Calculate is pure. Details are listed in fixed order: base, tuesday, set, full set, quantity.
func (e Engine) Calculate(breakdown pricing.DiscountBreakdown, productUIDs []string, date time.Time) PointsBreakdown {
	result := PointsBreakdown{
		Details: []string{},
	}

	base := breakdown.FinalAmount / e.rules.AmountPerPoint
	if base > 0 {
		result.FinalPoints = base
		result.Details = append(result.Details, fmt.Sprintf("base: %dp", base))
		if date.Weekday() == time.Tuesday {
			result.FinalPoints = base * e.rules.TuesdayMultiplier
			result.Details = append(result.Details, fmt.Sprintf("Tuesday x%d", e.rules.TuesdayMultiplier))
		}
	}

	inCart := map[string]bool{}
	for _, uid := range productUIDs {
		inCart[uid] = true
	}
	if e.hasSet(inCart) {
		result.FinalPoints += e.rules.SetBonus
		result.Details = append(result.Details, fmt.Sprintf("keyboard+mouse set +%dp", e.rules.SetBonus))
		if inCart[e.rules.FullSetProductUID] {
			result.FinalPoints += e.rules.FullSetBonus
			result.Details = append(result.Details, fmt.Sprintf("full set +%dp", e.rules.FullSetBonus))
		}
	}

	tier, found := e.quantityTier(breakdown.ItemCount)
	if found {
		result.FinalPoints += tier.Bonus
		result.Details = append(result.Details, fmt.Sprintf("bulk purchase (%d+) +%dp", tier.MinItems, tier.Bonus))
	}

	return result
}

// QuantityBonus is the bonus for the highest tier reached by itemCount
func (e Engine) QuantityBonus(itemCount int) int64 {
	tier, found := e.quantityTier(itemCount)
	if !found {
		return 0
	}
	return tier.Bonus
}

func (e Engine) quantityTier(itemCount int) (QuantityTier, bool) {
	for _, tier := range e.rules.QuantityTiers {
		if itemCount >= tier.MinItems {
			return tier, true
		}
	}
	return QuantityTier{}, false
}

func (e Engine) hasSet(inCart map[string]bool) bool {
	if len(e.rules.SetProductUIDs) == 0 {
		return false
	}
	for _, uid := range e.rules.SetProductUIDs {
		if !inCart[uid] {
			return false
		}
	}
	return true
}
