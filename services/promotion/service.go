package promotion

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mypublisher"
	"github.com/MarcGrol/flashcart/lib/myrandom"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/promotion/promotionevents"
)

const (
	lightningPercentOff = 20
	suggestedPercentOff = 5
)

type Service struct {
	catalog    *catalog.Catalog
	publisher  mypublisher.Publisher
	randomizer myrandom.Randomizer
	logger     mylog.Logger

	sync.Mutex
	lastSelectedUID string
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cat *catalog.Catalog, publisher mypublisher.Publisher, randomizer myrandom.Randomizer) *Service {
	return &Service{
		catalog:    cat,
		publisher:  publisher,
		randomizer: randomizer,
		logger:     mylog.New("promotion"),
	}
}

// SelectProduct remembers the product the shopper looked at last. Suggested sales skip it.
func (s *Service) SelectProduct(c context.Context, productUID string) error {
	_, err := s.catalog.GetByID(c, productUID)
	if err != nil {
		return err
	}

	s.Lock()
	s.lastSelectedUID = productUID
	s.Unlock()

	s.logger.Log(c, productUID, mylog.SeverityInfo, "Selected product %s", productUID)
	return nil
}

func (s *Service) LastSelected() string {
	s.Lock()
	defer s.Unlock()

	return s.lastSelectedUID
}

// LightningTick cuts 20% off the base price of a random in-stock product that has no lightning sale yet
func (s *Service) LightningTick(c context.Context) error {
	return s.catalog.RunInTransaction(c, func(c context.Context) error {
		products, err := s.catalog.GetAll(c)
		if err != nil {
			return err
		}

		eligible := []catalog.Product{}
		for _, p := range products {
			if p.Stock > 0 && !p.Promotions.Has(catalog.PromotionLightning) {
				eligible = append(eligible, p)
			}
		}
		if len(eligible) == 0 {
			s.logger.Log(c, "", mylog.SeverityDebug, "Lightning sale skipped: no eligible product")
			return nil
		}

		picked := eligible[s.randomizer.Intn(len(eligible))]
		product, err := s.catalog.ApplyPromotion(c, picked.UID, percentOff(picked.BasePrice, lightningPercentOff), catalog.PromotionLightning)
		if err != nil {
			return err
		}

		return s.publisher.Publish(c, promotionevents.TopicName, promotionevents.LightningSaleStarted{
			ProductUID:  product.UID,
			ProductName: product.Name,
			Price:       product.Price,
		})
	})
}

// SuggestedTick cuts 5% off the current price of the first in-stock product, other than the last
// selected one, that has no suggested sale yet
func (s *Service) SuggestedTick(c context.Context) error {
	selectedUID := s.LastSelected()
	if selectedUID == "" {
		s.logger.Log(c, "", mylog.SeverityDebug, "Suggested sale skipped: nothing selected yet")
		return nil
	}

	return s.catalog.RunInTransaction(c, func(c context.Context) error {
		products, err := s.catalog.GetAll(c)
		if err != nil {
			return err
		}

		for _, p := range products {
			if p.UID == selectedUID || p.Stock == 0 || p.Promotions.Has(catalog.PromotionSuggested) {
				continue
			}

			product, err := s.catalog.ApplyPromotion(c, p.UID, percentOff(p.Price, suggestedPercentOff), catalog.PromotionSuggested)
			if err != nil {
				return err
			}

			return s.publisher.Publish(c, promotionevents.TopicName, promotionevents.SuggestedSaleStarted{
				ProductUID:  product.UID,
				ProductName: product.Name,
				Price:       product.Price,
			})
		}

		s.logger.Log(c, selectedUID, mylog.SeverityDebug, "Suggested sale skipped: no eligible product")
		return nil
	})
}

func percentOff(price int64, percent int64) int64 {
	return decimal.NewFromInt(price).
		Mul(decimal.NewFromInt(100 - percent)).
		Div(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}
