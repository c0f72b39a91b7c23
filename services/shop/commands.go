package shop

import (
	"context"

	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/pricing"
)

func (s *service) listProducts(c context.Context) ([]ProductView, error) {
	products, err := s.catalog.GetAll(c)
	if err != nil {
		return nil, err
	}

	selectedUID := s.promotions.LastSelected()
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, ProductView{
			UID:         p.UID,
			Name:        p.Name,
			Price:       p.Price,
			BasePrice:   p.BasePrice,
			Stock:       p.Stock,
			StockStatus: p.StockStatus().String(),
			Promotions:  p.Promotions.Names(),
			SaleLabel:   p.SaleLabel(),
			Selected:    p.UID == selectedUID,
		})
	}
	return views, nil
}

func (s *service) selectProduct(c context.Context, productUID string) error {
	return s.promotions.SelectProduct(c, productUID)
}

func (s *service) addToCart(c context.Context, productUID string) (Overview, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Add %s to cart", productUID)

	err := s.cart.AddItem(c, productUID)
	if err != nil {
		return Overview{}, err
	}
	return s.overview(c)
}

func (s *service) changeQuantity(c context.Context, productUID string, delta int) (Overview, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Change quantity of %s by %d", productUID, delta)

	err := s.cart.ChangeQuantity(c, productUID, delta)
	if err != nil {
		return Overview{}, err
	}
	return s.overview(c)
}

func (s *service) removeFromCart(c context.Context, productUID string) (Overview, error) {
	s.logger.Log(c, productUID, mylog.SeverityInfo, "Remove %s from cart", productUID)

	err := s.cart.RemoveItem(c, productUID)
	if err != nil {
		return Overview{}, err
	}
	return s.overview(c)
}

// overview reads cart and catalog in one transaction and prices the result outside of it
func (s *service) overview(c context.Context) (Overview, error) {
	var items []pricing.Item
	var products []catalog.Product
	var totalStock int
	err := s.catalog.RunInTransaction(c, func(c context.Context) error {
		var err error
		items, err = s.cart.Snapshot(c)
		if err != nil {
			return err
		}
		products, err = s.catalog.GetAll(c)
		if err != nil {
			return err
		}
		totalStock, err = s.catalog.TotalStock(c)
		return err
	})
	if err != nil {
		return Overview{}, err
	}

	now := s.nower.Now()
	discounts := s.pricing.Calculate(items, now)

	lines := make([]LineView, 0, len(items))
	productUIDs := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, LineView{
			ProductUID: item.ProductUID,
			Name:       item.Name,
			Price:      item.Price,
			Quantity:   item.Quantity,
			LineTotal:  item.Price * int64(item.Quantity),
		})
		productUIDs = append(productUIDs, item.ProductUID)
	}

	warnings := []string{}
	for _, p := range products {
		if warning := p.StockWarning(); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return Overview{
		Lines:         lines,
		Pricing:       discounts,
		Points:        s.loyalty.Calculate(discounts, productUIDs, now),
		StockWarnings: warnings,
		TotalStock:    totalStock,
	}, nil
}
