package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"mercado/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler) {
	group := bh.Group(th.AnyMessage())
	group.Use(middleware.Logging())

	group.HandleMessage(h.OnStart, th.CommandEqual("start"))
	group.HandleMessage(h.OnSell, th.CommandEqual("sell"))
	group.HandleMessage(h.OnBuy, th.CommandEqual("buy"))
	group.HandleMessage(h.OnList, th.CommandEqual("list"))
	group.HandleMessage(h.OnSearch, th.CommandEqual("search"))
	group.HandleMessage(h.OnUID, th.CommandEqual("uid"))
}
