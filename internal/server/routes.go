package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mercado/internal/domain"
	"mercado/internal/domain/service/market"
	"mercado/pkg/errcodes"
	"mercado/pkg/httpx/reply"
	"mercado/pkg/rest"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/sales", func(r chi.Router) {
				r.Get("/", handler(s.getV1Sales))
				r.Get("/{saleUid}", handler(s.getV1Sale))
			})
			r.Route("/items", func(r chi.Router) {
				r.Get("/search", handler(s.getV1ItemsSearch))
				r.Get("/{uid}", handler(s.getV1Item))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			writeError(w, r, err)
		}
	}
}

// writeError maps domain errors onto the API's error payload; anything
// unrecognized falls through to the generic failure mapping.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	var ambiguous *market.AmbiguousMatchError
	if errors.As(err, &ambiguous) {
		reply.JSON(ctx, w, http.StatusConflict, rest.Error{
			Code:    rest.ErrorCode(errcodes.AmbiguousItem),
			Message: ambiguous.Error(),
		})

		return
	}

	if code, ok := domain.GetCode(err); ok {
		status := http.StatusInternalServerError

		switch code {
		case errcodes.SaleNotFound, errcodes.ItemNotFound, errcodes.NotFound:
			status = http.StatusNotFound
		case errcodes.ValidationError, errcodes.InvalidSaleArguments:
			status = http.StatusBadRequest
		}

		reply.JSON(ctx, w, status, rest.Error{
			Code:    rest.ErrorCode(code),
			Message: err.Error(),
		})

		return
	}

	reply.Error(ctx, w, err)
}
