package shop

import (
	"time"

	"github.com/MarcGrol/flashcart/services/loyalty"
	"github.com/MarcGrol/flashcart/services/pricing"
)

type ProductView struct {
	UID         string
	Name        string
	Price       int64
	BasePrice   int64
	Stock       int
	StockStatus string
	Promotions  []string
	SaleLabel   string
	Selected    bool
}

type LineView struct {
	ProductUID string
	Name       string
	Price      int64
	Quantity   int
	LineTotal  int64
}

type Overview struct {
	Lines         []LineView
	Pricing       pricing.DiscountBreakdown
	Points        loyalty.PointsBreakdown
	StockWarnings []string
	TotalStock    int
}

type NotificationKind string

const (
	NotificationKindLightning NotificationKind = "lightning"
	NotificationKindSuggested NotificationKind = "suggested"
)

type Notification struct {
	Seq         int64
	Kind        NotificationKind
	ProductUID  string
	ProductName string
	Price       int64
	Message     string
	CreatedAt   time.Time
}
