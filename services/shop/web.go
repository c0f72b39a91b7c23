package shop

import (
	"context"
	"net/http"

	formcodec "github.com/go-playground/form/v4"
	"github.com/gorilla/mux"

	"github.com/MarcGrol/flashcart/lib/mycontext"
	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/myhttp"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/lib/mypublisher"
	"github.com/MarcGrol/flashcart/lib/mytime"
	"github.com/MarcGrol/flashcart/services/cart"
	"github.com/MarcGrol/flashcart/services/catalog"
	"github.com/MarcGrol/flashcart/services/promotion"
)

type quantityChange struct {
	Delta int `form:"delta"`
}

type notificationQuery struct {
	After int64 `form:"after"`
}

type webService struct {
	logger  mylog.Logger
	service *service
	decoder *formcodec.Decoder
}

// Use dependency injection to isolate the infrastructure and easy testing
func NewService(cat *catalog.Catalog, ct *cart.Cart, promotions *promotion.Service, subscriber mypublisher.Subscriber, nower mytime.Nower, backlogSize int) *webService {
	logger := mylog.New("shop")
	return &webService{
		logger:  logger,
		service: newService(cat, ct, promotions, subscriber, nower, logger, backlogSize),
		decoder: formcodec.NewDecoder(),
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/api/products", s.productsPage()).Methods("GET")
	router.HandleFunc("/api/selection/{productUID}", s.selectProductPage()).Methods("PUT")

	router.HandleFunc("/api/cart", s.cartPage()).Methods("GET")
	router.HandleFunc("/api/cart/items/{productUID}", s.addToCartPage()).Methods("POST")
	router.HandleFunc("/api/cart/items/{productUID}", s.changeQuantityPage()).Methods("PUT")
	router.HandleFunc("/api/cart/items/{productUID}", s.removeFromCartPage()).Methods("DELETE")

	router.HandleFunc("/api/notifications", s.notificationsPage()).Methods("GET")
}

// Subscribe starts collecting promotion notifications
func (s *webService) Subscribe(c context.Context) error {
	return s.service.Subscribe(c)
}

func (s *webService) productsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.service.listProducts(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, products)
	}
}

func (s *webService) selectProductPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		err := s.service.selectProduct(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 2, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: "Selected " + productUID,
		})
	}
}

func (s *webService) cartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		overview, err := s.service.overview(c)
		if err != nil {
			errorWriter.WriteError(c, w, 3, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, overview)
	}
}

func (s *webService) addToCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		overview, err := s.service.addToCart(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 4, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, overview)
	}
}

func (s *webService) changeQuantityPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		err := r.ParseForm()
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputError(err))
			return
		}
		change := quantityChange{}
		err = s.decoder.Decode(&change, r.Form)
		if err != nil {
			errorWriter.WriteError(c, w, 5, myerrors.NewInvalidInputErrorf("error decoding form: %s", err))
			return
		}

		overview, err := s.service.changeQuantity(c, productUID, change.Delta)
		if err != nil {
			errorWriter.WriteError(c, w, 6, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, overview)
	}
}

func (s *webService) removeFromCartPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		productUID := mux.Vars(r)["productUID"]

		overview, err := s.service.removeFromCart(c, productUID)
		if err != nil {
			errorWriter.WriteError(c, w, 7, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, overview)
	}
}

func (s *webService) notificationsPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		query := notificationQuery{}
		err := s.decoder.Decode(&query, r.URL.Query())
		if err != nil {
			errorWriter.WriteError(c, w, 8, myerrors.NewInvalidInputErrorf("error decoding query: %s", err))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, s.service.notificationsAfter(c, query.After))
	}
}
