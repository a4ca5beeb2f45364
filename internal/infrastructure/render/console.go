package render

import (
	"context"
	"log/slog"

	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/pkg/contextx"
)

// Console renders session frames into the structured log. It stands in for
// the in-game display panel.
type Console struct {
	log *slog.Logger
}

func NewConsole(ctx context.Context) *Console {
	return &Console{log: contextx.LoggerFromContextOrDefault(ctx)}
}

func (c *Console) RenderDeal(view sniper.DealView) {
	c.log.Info("deal frame",
		"name", view.Name,
		"quality", view.Quality,
		"wanted", view.Wanted,
		"available", view.Available,
		"purchased", view.Purchased,
		"unit_price", view.UnitPrice,
		"total_price", view.TotalPrice,
	)
}

func (c *Console) RenderCleared(message string, colour sniper.Colour) {
	c.log.Info("cleared frame", "message", message, "colour", string(colour))
}

func (c *Console) RenderButtons(buttons sniper.Buttons) {
	c.log.Debug("buttons frame",
		"primary", buttons.Primary.Label,
		"primary_enabled", buttons.Primary.Enabled,
		"secondary", buttons.Secondary.Label,
		"secondary_enabled", buttons.Secondary.Enabled,
	)
}
