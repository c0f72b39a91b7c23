package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mystore"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is the single source of truth for price and stock
type Catalog struct {
	store        mystore.Store[Product]
	initialStock map[string]int
	logger       mylog.Logger
}

// New stores the seed products in the given order
func New(c context.Context, store mystore.Store[Product], seed []Product) (*Catalog, error) {
	initialStock := make(map[string]int, len(seed))
	err := store.RunInTransaction(c, func(c context.Context) error {
		for _, p := range seed {
			if _, exists := initialStock[p.UID]; exists {
				return myerrors.NewInvalidInputErrorf("duplicate product uid %s", p.UID)
			}
			if p.Stock < 0 {
				return myerrors.NewInvalidInputErrorf("product %s has negative stock", p.UID)
			}
			initialStock[p.UID] = p.Stock

			err := store.Put(c, p.UID, p)
			if err != nil {
				return myerrors.NewInternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Catalog{
		store:        store,
		initialStock: initialStock,
		logger:       mylog.New("catalog"),
	}, nil
}

// RunInTransaction serializes f with every other mutation of the catalog and the stores sharing its transactor
func (cat *Catalog) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	return cat.store.RunInTransaction(c, f)
}

// GetAll returns all products in canonical order
func (cat *Catalog) GetAll(c context.Context) ([]Product, error) {
	products, err := cat.store.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return products, nil
}

func (cat *Catalog) GetByID(c context.Context, uid string) (Product, error) {
	product, found, err := cat.store.Get(c, uid)
	if err != nil {
		return Product{}, myerrors.NewInternalError(err)
	}
	if !found {
		return Product{}, myerrors.NewNotFoundError(fmt.Errorf("%w: %s", ErrProductNotFound, uid))
	}
	return product, nil
}

// DecreaseStock returns false without mutation when the requested quantity exceeds the stock
func (cat *Catalog) DecreaseStock(c context.Context, uid string, quantity int) (bool, error) {
	if quantity < 0 {
		return false, myerrors.NewInvalidInputErrorf("invalid quantity %d", quantity)
	}

	decreased := false
	err := cat.store.RunInTransaction(c, func(c context.Context) error {
		product, err := cat.GetByID(c, uid)
		if err != nil {
			return err
		}
		if quantity > product.Stock {
			return nil
		}

		product.Stock -= quantity
		err = cat.store.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		decreased = true

		return nil
	})
	if err != nil {
		return false, err
	}

	return decreased, nil
}

func (cat *Catalog) IncreaseStock(c context.Context, uid string, quantity int) error {
	if quantity < 0 {
		return myerrors.NewInvalidInputErrorf("invalid quantity %d", quantity)
	}

	return cat.store.RunInTransaction(c, func(c context.Context) error {
		product, err := cat.GetByID(c, uid)
		if err != nil {
			return err
		}

		product.Stock += quantity
		err = cat.store.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
}

// ApplyPromotion sets the current price and adds the promotion, keeping promotions applied earlier
func (cat *Catalog) ApplyPromotion(c context.Context, uid string, newPrice int64, promotion Promotion) (Product, error) {
	if newPrice < 0 {
		return Product{}, myerrors.NewInvalidInputErrorf("invalid price %d", newPrice)
	}

	var product Product
	err := cat.store.RunInTransaction(c, func(c context.Context) error {
		var err error
		product, err = cat.GetByID(c, uid)
		if err != nil {
			return err
		}

		product.Price = newPrice
		product.Promotions = product.Promotions.With(promotion)
		err = cat.store.Put(c, uid, product)
		if err != nil {
			return myerrors.NewInternalError(err)
		}

		return nil
	})
	if err != nil {
		return Product{}, err
	}

	cat.logger.Log(c, uid, mylog.SeverityInfo, "Applied %s promotion to %s: price %d (base %d)", promotion, uid, newPrice, product.BasePrice)

	return product, nil
}

func (cat *Catalog) TotalStock(c context.Context) (int, error) {
	products, err := cat.GetAll(c)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, p := range products {
		total += p.Stock
	}
	return total, nil
}

// InitialStock is the stock a product was seeded with
func (cat *Catalog) InitialStock(uid string) (int, bool) {
	stock, found := cat.initialStock[uid]
	return stock, found
}
