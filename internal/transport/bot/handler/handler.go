package handler

import (
	"sync"

	"mercado/internal/domain/service/market"
	"mercado/internal/infrastructure/notifier"
	"mercado/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type Handler struct {
	svc           *market.Market
	announcements chan<- notifier.Announcement

	// The ledger relies on mutating commands being serialized by the
	// dispatcher; mu is that serialization.
	mu sync.Mutex
}

func New(svc *market.Market, announcements chan<- notifier.Announcement) *Handler {
	return &Handler{
		svc:           svc,
		announcements: announcements,
	}
}
