package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"mercado/internal/domain"
	"mercado/pkg/errcodes"
	"mercado/pkg/httpx/reply"
)

// getV1ItemsSearch resolves ?q= against the catalog the same way the chat
// surface does: uid queries hit the index, everything else runs the
// exact/substring/fuzzy search.
func (s Server) getV1ItemsSearch(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query().Get("q")
	if query == "" {
		return domain.NewError(errcodes.ValidationError, "query parameter q is required")
	}

	if s.svc.IsUID(query) {
		item, ok := s.svc.LookupUID(query)
		if !ok {
			return domain.NewError(errcodes.ItemNotFound, fmt.Sprintf("no item with uid [%s]", query))
		}

		reply.JSON(r.Context(), w, http.StatusOK, newRESTItemList(item))

		return nil
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTItemList(s.svc.SearchItems(query)...))

	return nil
}

func (s Server) getV1Item(w http.ResponseWriter, r *http.Request) error {
	uid := chi.URLParam(r, "uid")

	item, ok := s.svc.LookupUID(uid)
	if !ok {
		return domain.NewError(errcodes.ItemNotFound, fmt.Sprintf("no item with uid [%s]", uid))
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTItem(item))

	return nil
}
