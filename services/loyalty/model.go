package loyalty

type PointsBreakdown struct {
	FinalPoints int64
	Details     []string
}

type QuantityTier struct {
	MinItems int
	Bonus    int64
}

type Rules struct {
	// AmountPerPoint is the spent amount that earns one base point
	AmountPerPoint    int64
	TuesdayMultiplier int64
	// SetProductUIDs earn SetBonus when all are in the cart
	SetProductUIDs []string
	SetBonus       int64
	// FullSetProductUID earns FullSetBonus on top of a complete set
	FullSetProductUID string
	FullSetBonus      int64
	// QuantityTiers are ordered from highest to lowest, only the first matching tier counts
	QuantityTiers []QuantityTier
}

func DefaultRules() Rules {
	return Rules{
		AmountPerPoint:    1000,
		TuesdayMultiplier: 2,
		SetProductUIDs:    []string{"p1", "p2"},
		SetBonus:          50,
		FullSetProductUID: "p3",
		FullSetBonus:      100,
		QuantityTiers: []QuantityTier{
			{MinItems: 30, Bonus: 100},
			{MinItems: 20, Bonus: 50},
			{MinItems: 10, Bonus: 20},
		},
	}
}
