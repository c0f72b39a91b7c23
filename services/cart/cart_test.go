package cart

import (
	"context"
	"errors"
	"math"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/mystore"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/pricing"
)

func setup(t *testing.T) (context.Context, *Cart, *catalog.Catalog) {
	c := context.TODO()
	tx := mystore.NewTransactor()
	productStore, _, err := mystore.New[catalog.Product](c, tx)
	assert.NoError(t, err)
	lineStore, _, err := mystore.New[Line](c, tx)
	assert.NoError(t, err)
	cat, err := catalog.New(c, productStore, catalog.DefaultSeed())
	assert.NoError(t, err)

	return c, New(lineStore, cat), cat
}

func assertConserved(t *testing.T, c context.Context, cart *Cart, cat *catalog.Catalog) {
	products, err := cat.GetAll(c)
	assert.NoError(t, err)
	lines, err := cart.Lines(c)
	assert.NoError(t, err)

	inCart := map[string]int{}
	for _, l := range lines {
		assert.GreaterOrEqual(t, l.Quantity, 1)
		inCart[l.ProductUID] = l.Quantity
	}
	for _, p := range products {
		initial, _ := cat.InitialStock(p.UID)
		assert.GreaterOrEqual(t, p.Stock, 0)
		assert.Equal(t, initial, p.Stock+inCart[p.UID], "product %s", p.UID)
	}
}

func stockOf(t *testing.T, c context.Context, cat *catalog.Catalog, uid string) int {
	p, err := cat.GetByID(c, uid)
	assert.NoError(t, err)
	return p.Stock
}

func TestAddItem(t *testing.T) {
	t.Run("New line", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// when
		err := cart.AddItem(c, catalog.ProductSpeaker)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p5", Quantity: 1}}, lines)
		assert.Equal(t, 9, stockOf(t, c, cat, catalog.ProductSpeaker))
		assertConserved(t, c, cart, cat)
	})

	t.Run("Existing line keeps its position", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductMouse))
		assert.NoError(t, cart.AddItem(c, catalog.ProductKeyboard))

		// when
		err := cart.AddItem(c, catalog.ProductMouse)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p2", Quantity: 2}, {ProductUID: "p1", Quantity: 1}}, lines)
		assertConserved(t, c, cart, cat)
	})

	t.Run("Out of stock", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// when
		err := cart.AddItem(c, catalog.ProductLaptopPouch)

		// then
		assert.True(t, errors.Is(err, ErrOutOfStock))
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		lines, _ := cart.Lines(c)
		assert.Empty(t, lines)
		assert.Equal(t, 0, stockOf(t, c, cat, catalog.ProductLaptopPouch))
	})

	t.Run("Unknown product", func(t *testing.T) {
		// setup
		c, cart, _ := setup(t)

		// when
		err := cart.AddItem(c, "p9")

		// then
		assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
		assert.Equal(t, http.StatusNotFound, myerrors.GetHTTPStatus(err))
	})

	t.Run("Until sold out", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		for i := 0; i < 10; i++ {
			assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))
		}

		// when
		err := cart.AddItem(c, catalog.ProductSpeaker)

		// then
		assert.True(t, errors.Is(err, ErrOutOfStock))
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p5", Quantity: 10}}, lines)
		assertConserved(t, c, cart, cat)
	})
}

func TestChangeQuantity(t *testing.T) {
	t.Run("Zero delta", func(t *testing.T) {
		// setup
		c, cart, _ := setup(t)

		// when
		err := cart.ChangeQuantity(c, catalog.ProductKeyboard, 0)

		// then
		assert.True(t, errors.Is(err, ErrInvalidQuantity))
		assert.Equal(t, http.StatusBadRequest, myerrors.GetHTTPStatus(err))
	})

	t.Run("Not in cart", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// when
		err := cart.ChangeQuantity(c, catalog.ProductKeyboard, 2)

		// then
		assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
		assert.Equal(t, 50, stockOf(t, c, cat, catalog.ProductKeyboard))
	})

	t.Run("Increase", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductSpeaker, 5)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p5", Quantity: 6}}, lines)
		assert.Equal(t, 4, stockOf(t, c, cat, catalog.ProductSpeaker))
		assertConserved(t, c, cart, cat)
	})

	t.Run("Increase beyond stock", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductSpeaker, 10)

		// then
		assert.True(t, errors.Is(err, ErrInsufficientStock))
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p5", Quantity: 1}}, lines)
		assert.Equal(t, 9, stockOf(t, c, cat, catalog.ProductSpeaker))
	})

	t.Run("Decrease", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))
		assert.NoError(t, cart.ChangeQuantity(c, catalog.ProductSpeaker, 9))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductSpeaker, -4)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p5", Quantity: 6}}, lines)
		assert.Equal(t, 4, stockOf(t, c, cat, catalog.ProductSpeaker))
		assertConserved(t, c, cart, cat)
	})

	t.Run("Decrease to zero removes line", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))
		assert.NoError(t, cart.AddItem(c, catalog.ProductSpeaker))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductSpeaker, -5)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Empty(t, lines)
		assert.Equal(t, 10, stockOf(t, c, cat, catalog.ProductSpeaker))
	})

	t.Run("Huge increase is rejected without change", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductKeyboard))
		assert.NoError(t, cart.AddItem(c, catalog.ProductKeyboard))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductKeyboard, math.MaxInt)

		// then
		assert.True(t, errors.Is(err, ErrInsufficientStock))
		assert.Equal(t, http.StatusConflict, myerrors.GetHTTPStatus(err))
		lines, _ := cart.Lines(c)
		assert.Equal(t, []Line{{ProductUID: "p1", Quantity: 2}}, lines)
		assert.Equal(t, 48, stockOf(t, c, cat, catalog.ProductKeyboard))
		assertConserved(t, c, cart, cat)
	})

	t.Run("Huge decrease removes line", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductKeyboard))

		// when
		err := cart.ChangeQuantity(c, catalog.ProductKeyboard, math.MinInt)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Empty(t, lines)
		assert.Equal(t, 50, stockOf(t, c, cat, catalog.ProductKeyboard))
	})
}

func TestRemoveItem(t *testing.T) {
	t.Run("Restores full quantity", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// given
		assert.NoError(t, cart.AddItem(c, catalog.ProductMouse))
		assert.NoError(t, cart.ChangeQuantity(c, catalog.ProductMouse, 11))

		// when
		err := cart.RemoveItem(c, catalog.ProductMouse)

		// then
		assert.NoError(t, err)
		lines, _ := cart.Lines(c)
		assert.Empty(t, lines)
		assert.Equal(t, 30, stockOf(t, c, cat, catalog.ProductMouse))
	})

	t.Run("Not in cart is a no-op", func(t *testing.T) {
		// setup
		c, cart, cat := setup(t)

		// when
		err := cart.RemoveItem(c, catalog.ProductMouse)

		// then
		assert.NoError(t, err)
		assert.Equal(t, 30, stockOf(t, c, cat, catalog.ProductMouse))
	})

	t.Run("Unknown product", func(t *testing.T) {
		// setup
		c, cart, _ := setup(t)

		// when
		err := cart.RemoveItem(c, "p9")

		// then
		assert.True(t, errors.Is(err, catalog.ErrProductNotFound))
	})
}

func TestSnapshot(t *testing.T) {
	// setup
	c, cart, cat := setup(t)

	// given
	assert.NoError(t, cart.AddItem(c, catalog.ProductMonitorArm))
	assert.NoError(t, cart.AddItem(c, catalog.ProductKeyboard))
	_, err := cat.ApplyPromotion(c, catalog.ProductMonitorArm, 24000, catalog.PromotionLightning)
	assert.NoError(t, err)

	// when
	items, err := cart.Snapshot(c)

	// then
	assert.NoError(t, err)
	assert.Equal(t, []pricing.Item{
		{ProductUID: "p3", Name: "Posture Monitor Arm", Price: 24000, Quantity: 1},
		{ProductUID: "p1", Name: "Bug-free Keyboard", Price: 10000, Quantity: 1},
	}, items)
}

func TestConcurrentCommandsConserveStock(t *testing.T) {
	// setup
	c, cart, cat := setup(t)

	// when
	wg := sync.WaitGroup{}
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				uid := []string{"p1", "p2", "p3", "p4", "p5"}[(i+j)%5]
				switch j % 3 {
				case 0:
					_ = cart.AddItem(c, uid)
				case 1:
					_ = cart.ChangeQuantity(c, uid, (i%4)-1)
				default:
					if i%7 == 0 {
						_ = cart.RemoveItem(c, uid)
					} else {
						_ = cart.AddItem(c, uid)
					}
				}
			}
		}(i)
	}
	wg.Wait()

	// then
	assertConserved(t, c, cart, cat)
}
