package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mercado/internal/domain/service/market"
	"mercado/pkg/httpx/reply"
)

// getV1Sales lists ongoing sales; ?q= filters by item name or uid.
func (s Server) getV1Sales(w http.ResponseWriter, r *http.Request) error {
	var (
		listings []market.Listing
		err      error
	)

	if query := r.URL.Query().Get("q"); query != "" {
		listings, err = s.svc.List(r.Context(), query)
	} else {
		listings, err = s.svc.ListAll(r.Context())
	}

	if err != nil {
		return fmt.Errorf("list sales: %w", err)
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTSaleList(listings))

	return nil
}

func (s Server) getV1Sale(w http.ResponseWriter, r *http.Request) error {
	listing, err := s.svc.Get(r.Context(), chi.URLParam(r, "saleUid"))
	if err != nil {
		return err
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTSale(*listing))

	return nil
}
