package sniper

import (
	"context"
	"log/slog"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/logx"
)

// Advance moves the purchase cursor. With skip=false it counts one purchased
// unit first and stays on the same deal while units remain; with skip=true
// the current deal is abandoned as-is. The cursor never moves backwards.
func (s *Session) Advance(ctx context.Context, skip bool) {
	if s.current == nil {
		return
	}

	if !skip {
		s.purchaseIndex++

		// Commodities buy their full amount in one action, so unit-by-unit
		// repetition only applies to item auctions.
		if !s.current.IsCommodity && s.purchaseIndex < s.current.WantedAmount {
			s.status = StatusReadyForPurchase
			s.renderCurrent(ctx)

			return
		}
	}

	s.dealIndex++

	if s.dealIndex >= s.totalDeals {
		s.finish(ctx, "All deals processed.")
		return
	}

	s.purchaseIndex = 0
	s.current = s.deals[s.dealIndex]
	s.status = StatusReadyForPurchase
	s.renderCurrent(ctx)
}

// Skip abandons the current deal unconditionally. Used both as the explicit
// user action and as the insufficient-funds fallback.
func (s *Session) Skip(ctx context.Context) {
	dealsSkipped.Inc()
	s.Advance(ctx, true)
}

// BuyoutItem issues a single-unit item purchase. Insufficient funds skips
// the deal permanently; it is never retried.
func (s *Session) BuyoutItem(ctx context.Context) {
	if !s.enabled {
		logger(ctx).Warn("buyout requested while session disabled")
		return
	}

	deal := s.current
	if deal == nil || s.status != StatusReadyForPurchase {
		logger(ctx).Debug("buyout ignored", slog.String(logx.FieldStatus, s.status.String()))
		return
	}

	if s.purchaser.Funds() < deal.UnitPrice {
		logger(ctx).Warn("insufficient funds, deal skipped",
			slog.Int64(logx.FieldAuctionID, deal.AuctionID),
			slog.Int64("unit-price", deal.UnitPrice),
		)
		s.Skip(ctx)

		return
	}

	s.status = StatusItemPurchaseInitialized

	if err := s.purchaser.PlaceBid(ctx, deal.AuctionID, deal.UnitPrice); err != nil {
		logger(ctx).Error("bid placement failed",
			slog.Int64(logx.FieldAuctionID, deal.AuctionID),
			logx.Error(err),
		)
		s.Skip(ctx)

		return
	}

	s.status = StatusWaitingItemPurchaseConfirmation
}

// InitiateCommoditiesPurchase starts a bulk purchase of
// min(wanted, available) units.
func (s *Session) InitiateCommoditiesPurchase(ctx context.Context) {
	if !s.enabled {
		logger(ctx).Warn("commodity purchase requested while session disabled")
		return
	}

	deal := s.current
	if deal == nil || s.status != StatusReadyForPurchase {
		logger(ctx).Debug("commodity purchase ignored", slog.String(logx.FieldStatus, s.status.String()))
		return
	}

	amount := min(deal.WantedAmount, deal.AvailableAmount)
	price := int64(amount) * deal.UnitPrice

	if s.purchaser.Funds() < price {
		logger(ctx).Warn("insufficient funds, deal skipped",
			slog.Int64(logx.FieldAuctionID, deal.AuctionID),
			slog.Int64("total-price", price),
		)
		s.Skip(ctx)

		return
	}

	// The amount is annotated for the later confirmation step.
	deal.PurchaseAmount = amount

	if err := s.purchaser.StartCommodityPurchase(ctx, deal.ItemID, amount); err != nil {
		logger(ctx).Error("commodity purchase start failed",
			slog.Int64(logx.FieldItemID, deal.ItemID),
			logx.Error(err),
		)
		s.Skip(ctx)

		return
	}

	s.status = StatusCommodityPurchaseInitialized
}

// CompleteCommoditiesPurchase confirms the previously started commodity
// purchase with the annotated amount.
func (s *Session) CompleteCommoditiesPurchase(ctx context.Context) {
	deal := s.current
	if deal == nil || s.status != StatusCommodityPurchaseInitialized {
		return
	}

	if err := s.purchaser.ConfirmCommodityPurchase(ctx, deal.ItemID, deal.PurchaseAmount); err != nil {
		logger(ctx).Error("commodity purchase confirm failed",
			slog.Int64(logx.FieldItemID, deal.ItemID),
			logx.Error(err),
		)
	}

	s.status = StatusWaitingCommodityPurchaseConfirmation
}

func (s *Session) emitPurchase(ctx context.Context) {
	deal := s.current
	if deal == nil {
		return
	}

	amount := 1
	total := deal.UnitPrice

	if deal.IsCommodity {
		amount = deal.PurchaseAmount
		total = int64(amount) * deal.UnitPrice
	}

	purchasesCompleted.WithLabelValues(purchaseKind(deal)).Inc()

	if s.purchases == nil {
		return
	}

	select {
	case s.purchases <- entity.Purchase{
		ConnectedRealmID: s.connectedRealmID,
		AuctionID:        deal.AuctionID,
		ItemID:           deal.ItemID,
		PetID:            deal.PetID,
		Commodity:        deal.IsCommodity,
		Amount:           amount,
		UnitPrice:        deal.UnitPrice,
		TotalPrice:       total,
		ItemLink:         deal.ItemLink,
	}:
	default:
		logger(ctx).Debug("purchase sink full, event dropped")
	}
}

func purchaseKind(deal *entity.Deal) string {
	if deal.IsCommodity {
		return "commodity"
	}

	return "item"
}
