package server

import (
	"mercado/internal/domain/service/market"
)

// Server exposes the read-only HTTP API over the market. Mutations stay with
// the chat dispatcher, which serializes them.
type Server struct {
	svc *market.Market
}

func NewServer(svc *market.Market) Server {
	return Server{svc: svc}
}
