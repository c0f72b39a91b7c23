package warmup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/flashcart/lib/mycontext"
	"github.com/MarcGrol/flashcart/lib/myerrors"
	"github.com/MarcGrol/flashcart/lib/myhttp"
	"github.com/MarcGrol/flashcart/lib/mylog"
	"github.com/MarcGrol/flashcart/services/catalog"
)

type ProductLister interface {
	GetAll(c context.Context) ([]catalog.Product, error)
}

type webService struct {
	logger   mylog.Logger
	products ProductLister
}

// Use dependency injection to isolate the infrastructure and ease testing
func NewService(products ProductLister) *webService {
	return &webService{
		logger:   mylog.New("warmup"),
		products: products,
	}
}

func (s *webService) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_ah/warmup", s.warmupPage()).Methods("GET")
}

func (s *webService) warmupPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		products, err := s.products.GetAll(c)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}
		if len(products) == 0 {
			errorWriter.WriteError(c, w, 2, myerrors.NewUnavailableError(fmt.Errorf("catalog is not seeded")))
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully processed warmup request: %d products", len(products)),
		})
	}
}
