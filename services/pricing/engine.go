package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) Engine {
	return Engine{
		rules: rules,
	}
}

// Calculate is pure: the same items on the same weekday always give the same breakdown.
// Intermediate amounts are exact, only the final amount is rounded.
func (e Engine) Calculate(items []Item, date time.Time) DiscountBreakdown {
	result := DiscountBreakdown{
		ItemDiscounts: []ItemDiscount{},
	}

	subtotal := decimal.Zero
	discounted := decimal.Zero
	for _, item := range items {
		itemSubtotal := decimal.NewFromInt(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(itemSubtotal)
		result.ItemCount += item.Quantity

		ratePercent := e.itemRatePercent(item)
		if ratePercent > 0 {
			result.ItemDiscounts = append(result.ItemDiscounts, ItemDiscount{
				Name:        item.Name,
				RatePercent: ratePercent,
			})
		}
		discounted = discounted.Add(itemSubtotal.Mul(complement(ratePercent)))
	}

	if subtotal.IsZero() {
		return result
	}

	final := discounted
	if result.ItemCount >= e.rules.BulkThreshold {
		result.ItemDiscounts = []ItemDiscount{}
		result.BulkApplied = true
		final = subtotal.Mul(complement(e.rules.BulkRatePercent))
	}

	if date.Weekday() == time.Tuesday && final.IsPositive() {
		result.TuesdayApplied = true
		final = final.Mul(complement(e.rules.TuesdayRatePercent))
	}

	finalAmount := final.Round(0)

	result.Subtotal = subtotal.IntPart()
	result.FinalAmount = finalAmount.IntPart()
	result.DiscountRate = decimal.NewFromInt(1).Sub(final.Div(subtotal)).InexactFloat64()
	result.SavedAmount = subtotal.Sub(finalAmount).IntPart()

	return result
}

func (e Engine) itemRatePercent(item Item) int {
	if item.Quantity < e.rules.ItemDiscountThreshold {
		return 0
	}
	return e.rules.ItemRatePercent[item.ProductUID]
}

// complement turns a discount percentage into the factor to pay
func complement(ratePercent int) decimal.Decimal {
	return decimal.NewFromInt(int64(100 - ratePercent)).Div(hundred)
}
