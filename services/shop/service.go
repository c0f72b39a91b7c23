package shop

import (
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mypublisher"
	"github.com/MarcGrol/flashcart/lib/mytime"
	"github.com/MarcGrol/flashcart/services/cart"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/loyalty"
	"github.com/MarcGrol/flashcart/services/pricing"
	"github.com/MarcGrol/flashcart/services/promotion"
)

type service struct {
	catalog       *catalog.Catalog
	cart          *cart.Cart
	promotions    *promotion.Service
	pricing       pricing.Engine
	loyalty       loyalty.Engine
	subscriber    mypublisher.Subscriber
	nower         mytime.Nower
	logger        mylog.Logger
	notifications *backlog
}

// Use dependency injection to isolate the infrastructure and easy testing
func newService(cat *catalog.Catalog, ct *cart.Cart, promotions *promotion.Service, subscriber mypublisher.Subscriber, nower mytime.Nower, logger mylog.Logger, backlogSize int) *service {
	return &service{
		catalog:       cat,
		cart:          ct,
		promotions:    promotions,
		pricing:       pricing.NewEngine(pricing.DefaultRules()),
		loyalty:       loyalty.NewEngine(loyalty.DefaultRules()),
		subscriber:    subscriber,
		nower:         nower,
		logger:        logger,
		notifications: newBacklog(backlogSize),
	}
}
