package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	ProductKeyboard    = "p1"
	ProductMouse       = "p2"
	ProductMonitorArm  = "p3"
	ProductLaptopPouch = "p4"
	ProductSpeaker     = "p5"
)

type Promotion int

const (
	PromotionLightning Promotion = 1 << iota
	PromotionSuggested
)

func (p Promotion) String() string {
	switch p {
	case PromotionLightning:
		return "lightning"
	case PromotionSuggested:
		return "suggested"
	default:
		return fmt.Sprintf("promotion(%d)", int(p))
	}
}

// PromotionSet holds the promotions applied to a product. Promotions are only ever added.
type PromotionSet int

func (s PromotionSet) Has(p Promotion) bool {
	return int(s)&int(p) != 0
}

func (s PromotionSet) With(p Promotion) PromotionSet {
	return PromotionSet(int(s) | int(p))
}

func (s PromotionSet) Names() []string {
	names := []string{}
	for _, p := range []Promotion{PromotionLightning, PromotionSuggested} {
		if s.Has(p) {
			names = append(names, p.String())
		}
	}
	return names
}

type Product struct {
	UID        string
	Name       string
	Price      int64
	BasePrice  int64
	Stock      int
	Promotions PromotionSet
}

// DefaultSeed returns the fixed catalog in canonical order
func DefaultSeed() []Product {
	return []Product{
		newProduct(ProductKeyboard, "Bug-free Keyboard", 10000, 50),
		newProduct(ProductMouse, "Productivity Mouse", 20000, 30),
		newProduct(ProductMonitorArm, "Posture Monitor Arm", 30000, 20),
		newProduct(ProductLaptopPouch, "Laptop Pouch", 15000, 0),
		newProduct(ProductSpeaker, "Lo-Fi Speaker", 25000, 10),
	}
}

func newProduct(uid, name string, price int64, stock int) Product {
	return Product{
		UID:       uid,
		Name:      name,
		Price:     price,
		BasePrice: price,
		Stock:     stock,
	}
}

type StockStatus int

const (
	StockStatusInStock StockStatus = iota
	StockStatusLowStock
	StockStatusSoldOut
)

const lowStockThreshold = 5

func (s StockStatus) String() string {
	switch s {
	case StockStatusSoldOut:
		return "sold out"
	case StockStatusLowStock:
		return "low stock"
	default:
		return "in stock"
	}
}

func (p Product) StockStatus() StockStatus {
	switch {
	case p.Stock == 0:
		return StockStatusSoldOut
	case p.Stock < lowStockThreshold:
		return StockStatusLowStock
	default:
		return StockStatusInStock
	}
}

// StockWarning returns an empty string when there is enough stock
func (p Product) StockWarning() string {
	switch p.StockStatus() {
	case StockStatusSoldOut:
		return fmt.Sprintf("%s: sold out", p.Name)
	case StockStatusLowStock:
		return fmt.Sprintf("%s: low stock (%d left)", p.Name, p.Stock)
	default:
		return ""
	}
}

// PercentOffBase is the rounded percentage the current price is below the base price
func (p Product) PercentOffBase() int64 {
	if p.BasePrice == 0 {
		return 0
	}
	return decimal.NewFromInt(p.BasePrice - p.Price).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(p.BasePrice)).
		Round(0).
		IntPart()
}

// SaleLabel describes the active promotions, computed from actual prices
func (p Product) SaleLabel() string {
	lightning := p.Promotions.Has(PromotionLightning)
	suggested := p.Promotions.Has(PromotionSuggested)
	switch {
	case lightning && suggested:
		return fmt.Sprintf("SUPER SALE -%d%%", p.PercentOffBase())
	case lightning:
		return fmt.Sprintf("LIGHTNING SALE -%d%%", p.PercentOffBase())
	case suggested:
		return fmt.Sprintf("SUGGESTED -%d%%", p.PercentOffBase())
	default:
		return ""
	}
}
