package pricing

type Item struct {
	ProductUID string
	Name       string
	Price      int64
	Quantity   int
}

type ItemDiscount struct {
	Name        string
	RatePercent int
}

type DiscountBreakdown struct {
	Subtotal       int64
	FinalAmount    int64
	DiscountRate   float64
	ItemDiscounts  []ItemDiscount
	BulkApplied    bool
	TuesdayApplied bool
	SavedAmount    int64
	ItemCount      int
}

type Rules struct {
	// ItemDiscountThreshold is the line quantity that unlocks the item discount of a product
	ItemDiscountThreshold int
	ItemRatePercent       map[string]int
	// BulkThreshold is the total quantity at which the bulk rate replaces all item discounts
	BulkThreshold      int
	BulkRatePercent    int
	TuesdayRatePercent int
}

func DefaultRules() Rules {
	return Rules{
		ItemDiscountThreshold: 10,
		ItemRatePercent: map[string]int{
			"p1": 10,
			"p2": 15,
			"p3": 20,
			"p4": 5,
			"p5": 25,
		},
		BulkThreshold:      30,
		BulkRatePercent:    25,
		TuesdayRatePercent: 10,
	}
}
