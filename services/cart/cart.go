package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mystore"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/pricing"
)

var (
	ErrOutOfStock        = errors.New("out of stock")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidQuantity   = errors.New("invalid quantity")
)

type Line struct {
	ProductUID string
	Quantity   int
}

// Cart keeps its lines in insertion order. Every quantity in the cart is taken from catalog
// stock and given back on removal, within the same transaction.
type Cart struct {
	lines   mystore.Store[Line]
	catalog *catalog.Catalog
	logger  mylog.Logger
}

// New expects the line store to share its transactor with the catalog store
func New(lines mystore.Store[Line], cat *catalog.Catalog) *Cart {
	return &Cart{
		lines:   lines,
		catalog: cat,
		logger:  mylog.New("cart"),
	}
}

func (ct *Cart) AddItem(c context.Context, productUID string) error {
	err := ct.lines.RunInTransaction(c, func(c context.Context) error {
		product, err := ct.catalog.GetByID(c, productUID)
		if err != nil {
			return err
		}
		if product.Stock == 0 {
			return myerrors.NewConflictError(fmt.Errorf("%w: %s", ErrOutOfStock, product.Name))
		}

		line, found, err := ct.lines.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			line = Line{ProductUID: productUID}
		}
		line.Quantity++

		return ct.move(c, line, 1)
	})
	if err != nil {
		ct.logger.Log(c, productUID, mylog.SeverityInfo, "Add of %s rejected: %s", productUID, err)
		return err
	}

	ct.logger.Log(c, productUID, mylog.SeverityInfo, "Added %s to cart", productUID)
	return nil
}

// ChangeQuantity removes the line when its quantity would drop to zero or below
func (ct *Cart) ChangeQuantity(c context.Context, productUID string, delta int) error {
	if delta == 0 {
		return myerrors.NewInvalidInputError(fmt.Errorf("%w: delta must not be 0", ErrInvalidQuantity))
	}

	err := ct.lines.RunInTransaction(c, func(c context.Context) error {
		product, err := ct.catalog.GetByID(c, productUID)
		if err != nil {
			return err
		}

		line, found, err := ct.lines.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return myerrors.NewNotFoundError(fmt.Errorf("%w: %s is not in the cart", catalog.ErrProductNotFound, product.Name))
		}

		// positive deltas are checked against stock first so a huge delta cannot wrap the sum
		if delta > 0 {
			if product.Stock < delta {
				return myerrors.NewConflictError(fmt.Errorf("%w: %s has %d left", ErrInsufficientStock, product.Name, product.Stock))
			}
		} else if line.Quantity+delta <= 0 {
			return ct.removeLine(c, line)
		}

		line.Quantity += delta
		return ct.move(c, line, delta)
	})
	if err != nil {
		ct.logger.Log(c, productUID, mylog.SeverityInfo, "Change of %s by %d rejected: %s", productUID, delta, err)
		return err
	}

	ct.logger.Log(c, productUID, mylog.SeverityInfo, "Changed quantity of %s by %d", productUID, delta)
	return nil
}

// RemoveItem is a no-op for a known product that is not in the cart
func (ct *Cart) RemoveItem(c context.Context, productUID string) error {
	err := ct.lines.RunInTransaction(c, func(c context.Context) error {
		_, err := ct.catalog.GetByID(c, productUID)
		if err != nil {
			return err
		}

		line, found, err := ct.lines.Get(c, productUID)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		if !found {
			return nil
		}

		return ct.removeLine(c, line)
	})
	if err != nil {
		ct.logger.Log(c, productUID, mylog.SeverityInfo, "Remove of %s rejected: %s", productUID, err)
		return err
	}

	ct.logger.Log(c, productUID, mylog.SeverityInfo, "Removed %s from cart", productUID)
	return nil
}

// move stores the line and takes delta from stock, or gives it back when negative
func (ct *Cart) move(c context.Context, line Line, delta int) error {
	if delta > 0 {
		decreased, err := ct.catalog.DecreaseStock(c, line.ProductUID, delta)
		if err != nil {
			return err
		}
		if !decreased {
			return myerrors.NewConflictError(fmt.Errorf("%w: %s", ErrInsufficientStock, line.ProductUID))
		}
	} else {
		err := ct.catalog.IncreaseStock(c, line.ProductUID, -delta)
		if err != nil {
			return err
		}
	}

	err := ct.lines.Put(c, line.ProductUID, line)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

func (ct *Cart) removeLine(c context.Context, line Line) error {
	err := ct.catalog.IncreaseStock(c, line.ProductUID, line.Quantity)
	if err != nil {
		return err
	}

	err = ct.lines.Delete(c, line.ProductUID)
	if err != nil {
		return myerrors.NewInternalError(err)
	}
	return nil
}

// Lines returns the cart lines in insertion order
func (ct *Cart) Lines(c context.Context) ([]Line, error) {
	lines, err := ct.lines.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(err)
	}
	return lines, nil
}

// Snapshot joins the lines with the current product prices in one consistent read
func (ct *Cart) Snapshot(c context.Context) ([]pricing.Item, error) {
	items := []pricing.Item{}
	err := ct.lines.RunInTransaction(c, func(c context.Context) error {
		lines, err := ct.Lines(c)
		if err != nil {
			return err
		}
		for _, line := range lines {
			product, err := ct.catalog.GetByID(c, line.ProductUID)
			if err != nil {
				return err
			}
			items = append(items, pricing.Item{
				ProductUID: product.UID,
				Name:       product.Name,
				Price:      product.Price,
				Quantity:   line.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}
