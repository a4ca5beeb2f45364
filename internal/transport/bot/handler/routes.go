package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"ah_sniper/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	adminGroup := bh.Group(th.AnyMessage())
	adminGroup.Use(middleware.AdminOnly(adminID))

	adminGroup.HandleMessage(h.OnStart, th.CommandEqual("start"))
	adminGroup.HandleMessage(h.OnStatus, th.CommandEqual("status"))
	adminGroup.HandleMessage(h.OnSession, th.CommandEqual("session"))
	adminGroup.HandleMessage(h.OnBuy, th.CommandEqual("buy"))
	adminGroup.HandleMessage(h.OnSkip, th.CommandEqual("skip"))
	adminGroup.HandleMessage(h.OnPause, th.CommandEqual("pause"))
	adminGroup.HandleMessage(h.OnResume, th.CommandEqual("resume"))
	adminGroup.HandleMessage(h.OnScan, th.CommandEqual("scan"))
}
