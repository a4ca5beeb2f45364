// Package sniper implements the deal-resolution pipeline and purchase
// sequencer for one connected realm's shopping list.
package sniper

import (
	"context"
	"log/slog"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/keyedbag"
	"ah_sniper/pkg/logx"
)

// Session owns the mutable state of one resolution-and-purchase run. It is
// not safe for concurrent use: the host must deliver every call serially
// (see worker.Runner).
type Session struct {
	connectedRealmID int64

	cache     MetadataCache
	keys      KeyResolver
	market    Marketplace
	purchaser Purchaser
	renderer  Renderer

	status  Status
	enabled bool

	// possible holds unresolved candidates keyed by auction ID. pending
	// holds item IDs whose metadata or key info is still outstanding.
	// searchKeys holds deduplicated queries not yet dispatched.
	possible   *keyedbag.Bag[int64, entity.PossibleDeal]
	pending    *keyedbag.Bag[int64, struct{}]
	searchKeys *keyedbag.Bag[string, entity.SearchKey]

	deals         []*entity.Deal
	dealIndex     int
	purchaseIndex int
	totalDeals    int
	current       *entity.Deal

	matched   chan<- entity.Deal
	purchases chan<- entity.Purchase
}

func NewSession(
	connectedRealmID int64,
	cache MetadataCache,
	keys KeyResolver,
	market Marketplace,
	purchaser Purchaser,
	renderer Renderer,
) *Session {
	return &Session{
		connectedRealmID: connectedRealmID,
		cache:            cache,
		keys:             keys,
		market:           market,
		purchaser:        purchaser,
		renderer:         renderer,
		status:           StatusInitializing,
		possible:         keyedbag.New[int64, entity.PossibleDeal](),
		pending:          keyedbag.New[int64, struct{}](),
		searchKeys:       keyedbag.New[string, entity.SearchKey](),
	}
}

// WithMatchSink publishes every confirmed deal. Sends never block; a full
// sink drops the event.
func (s *Session) WithMatchSink(matched chan<- entity.Deal) *Session {
	s.matched = matched
	return s
}

// WithPurchaseSink publishes every issued purchase, same non-blocking
// semantics as WithMatchSink.
func (s *Session) WithPurchaseSink(purchases chan<- entity.Purchase) *Session {
	s.purchases = purchases
	return s
}

func (s *Session) ConnectedRealmID() int64 { return s.connectedRealmID }

func (s *Session) Status() Status { return s.status }

func (s *Session) Enabled() bool { return s.enabled }

// Load builds the candidate set from the raw shopping list and starts the
// item-info preload. An absent or empty list is a valid terminal outcome,
// not an error.
func (s *Session) Load(ctx context.Context, raw []entity.RawDeal) {
	s.status = StatusLoading

	for _, rd := range raw {
		wanted := rd.WantedAmount
		if wanted < 1 {
			wanted = 1
		}

		// Duplicate auction IDs: first wins.
		s.possible.Add(rd.AuctionID, entity.PossibleDeal{
			AuctionID:    rd.AuctionID,
			PetID:        rd.PetID,
			ItemID:       rd.ItemID,
			ItemLevel:    rd.ItemLevel,
			ItemSuffix:   rd.ItemSuffix,
			WantedAmount: wanted,
		})
	}

	if s.possible.Count() == 0 {
		logger(ctx).Info("no deals for this realm", slog.Int64(logx.FieldConnectedRealm, s.connectedRealmID))
		s.finish(ctx, "No deals for this realm.")

		return
	}

	logger(ctx).Info("deal candidates loaded",
		slog.Int64(logx.FieldConnectedRealm, s.connectedRealmID),
		slog.Int("candidates", s.possible.Count()),
	)

	s.preloadItemInfo(ctx)
}

// SetEnabled gates purchase actions and drives the Ready -> key-preparation
// transition. Disabling mid-search rewinds to Ready and discards the
// search-stage bags, so re-enabling rebuilds them from scratch.
func (s *Session) SetEnabled(ctx context.Context, enabled bool) {
	if s.enabled == enabled {
		return
	}

	s.enabled = enabled

	if !enabled {
		if s.status.searching() {
			s.searchKeys.Clear()
			s.pending.Clear()
			s.status = StatusReady
		}

		s.renderer.RenderButtons(Project(s.status, s.enabled))

		return
	}

	if s.status == StatusReady {
		s.prepareKeys(ctx)
	}
}

// Stage 1: item-info preload. Pets have no item metadata and skip this.
func (s *Session) preloadItemInfo(ctx context.Context) {
	for _, cand := range s.possible.All() {
		if cand.IsPet() {
			continue
		}

		if !s.cache.IsCached(cand.ItemID) {
			s.pending.Add(cand.ItemID, struct{}{})
		}
	}

	if s.pending.Count() == 0 {
		s.setReady(ctx)
		return
	}

	s.status = StatusWaitingForItemInfo

	logger(ctx).Debug("waiting for item info", slog.Int("pending", s.pending.Count()))
}

func (s *Session) onItemInfoReady(ctx context.Context, itemID int64) {
	if s.status != StatusWaitingForItemInfo || !s.pending.Has(itemID) {
		droppedNotifications.WithLabelValues(NotificationItemInfoReady.String()).Inc()
		logger(ctx).Debug("unsolicited item info dropped", slog.Int64(logx.FieldItemID, itemID))

		return
	}

	s.pending.Remove(itemID)

	if s.pending.Count() == 0 {
		s.setReady(ctx)
	}
}

// setReady is the one state-to-action coupling outside the sequencer:
// entering Ready while enabled immediately starts key preparation.
func (s *Session) setReady(ctx context.Context) {
	s.status = StatusReady
	s.renderer.RenderButtons(Project(s.status, s.enabled))

	if s.enabled {
		s.prepareKeys(ctx)
	}
}

// Stage 2: build the deduplicated search-key bag and wait for key metadata.
func (s *Session) prepareKeys(ctx context.Context) {
	s.status = StatusWaitingForItemKey
	s.searchKeys.Clear()
	s.pending.Clear()

	for _, cand := range s.possible.All() {
		var key entity.SearchKey
		if cand.IsPet() {
			key = entity.PetSearchKey(cand.PetID)
		} else {
			key = entity.ItemSearchKey(cand.ItemID, cand.ItemLevel, cand.ItemSuffix)
		}

		s.searchKeys.Add(key.Composite(), key)

		// Pet keys never block key preparation.
		if cand.IsPet() {
			continue
		}

		if _, ok := s.keys.GetKeyInfo(key); !ok {
			s.pending.Add(cand.ItemID, struct{}{})
		}
	}

	if s.pending.Count() == 0 {
		s.readyForSearch(ctx)
		return
	}

	logger(ctx).Debug("waiting for item keys", slog.Int("pending", s.pending.Count()))
}

func (s *Session) onKeyInfoReady(ctx context.Context, itemID int64) {
	if s.status != StatusWaitingForItemKey || !s.pending.Has(itemID) {
		droppedNotifications.WithLabelValues(NotificationKeyInfoReady.String()).Inc()
		logger(ctx).Debug("unsolicited key info dropped", slog.Int64(logx.FieldItemID, itemID))

		return
	}

	s.pending.Remove(itemID)

	if s.pending.Count() == 0 {
		s.readyForSearch(ctx)
	}
}

// Stage 3: dispatch the first search right away instead of waiting for an
// external trigger; subsequent searches ride ThrottleReady.
func (s *Session) readyForSearch(ctx context.Context) {
	s.status = StatusReadyForSearch
	s.dispatchNextSearch(ctx)
}

func (s *Session) dispatchNextSearch(ctx context.Context) {
	// A finished session stays finished; keys left over from an abandoned
	// search stage must not revive it.
	if s.status == StatusFinished {
		return
	}

	_, key, ok := s.searchKeys.Pop()
	if !ok {
		return
	}

	// The purchase states own the status field once the first deal is
	// confirmed; background search dispatch must not stomp them.
	if s.current == nil {
		s.status = StatusSearchInitialized
	}

	searchesDispatched.Inc()

	logger(ctx).Debug("dispatching search", slog.String(logx.FieldSearchKey, key.Composite()))

	if err := s.market.Search(ctx, key, SortSpec{Field: SortPrice, Ascending: true}, true); err != nil {
		logger(ctx).Error("market search failed",
			slog.String(logx.FieldSearchKey, key.Composite()),
			logx.Error(err),
		)
	}

	if s.current == nil {
		s.status = StatusWaitingForSearchResults
	}
}

// Stage 4: result matching. Every returned entry either consumes a live
// candidate or is logged and ignored.
func (s *Session) onItemResults(ctx context.Context, key entity.SearchKey) {
	count := s.market.ResultCount(key)
	for i := range count {
		entry, ok := s.market.ResultEntry(key, i)
		if !ok {
			break
		}

		s.matchResult(ctx, key, entry, false)
	}

	s.afterResults(ctx)
}

func (s *Session) onCommodityResults(ctx context.Context, itemID int64) {
	key := entity.ItemSearchKey(itemID, 0, "")

	count := s.market.CommodityResultCount(itemID)
	for i := range count {
		entry, ok := s.market.CommodityResultEntry(itemID, i)
		if !ok {
			break
		}

		s.matchResult(ctx, key, entry, true)
	}

	s.afterResults(ctx)
}

func (s *Session) matchResult(ctx context.Context, key entity.SearchKey, entry ResultEntry, commodity bool) {
	if s.status == StatusFinished {
		logger(ctx).Debug("result after finish ignored", slog.Int64(logx.FieldAuctionID, entry.AuctionID))
		return
	}

	cand, ok := s.possible.Remove(entry.AuctionID)
	if !ok {
		logger(ctx).Debug("result without candidate ignored", slog.Int64(logx.FieldAuctionID, entry.AuctionID))
		return
	}

	unitPrice := entry.UnitPrice
	if !commodity {
		unitPrice = entry.BuyoutAmount
	}

	deal := &entity.Deal{
		IsCommodity:     commodity,
		IsPet:           cand.IsPet(),
		AuctionID:       entry.AuctionID,
		ItemID:          cand.ItemID,
		PetID:           cand.PetID,
		Key:             key,
		WantedAmount:    cand.WantedAmount,
		AvailableAmount: entry.Quantity,
		UnitPrice:       unitPrice,
		TotalPrice:      unitPrice * int64(min(entry.Quantity, cand.WantedAmount)),
		ItemLink:        entry.ItemLink,
	}

	s.deals = append(s.deals, deal)
	s.totalDeals++
	dealsMatched.Inc()

	logger(ctx).Info("deal confirmed",
		slog.Int64(logx.FieldAuctionID, deal.AuctionID),
		slog.Int64(logx.FieldItemID, deal.ItemID),
		slog.Int64("unit-price", deal.UnitPrice),
		slog.Int("available", deal.AvailableAmount),
	)

	if s.matched != nil {
		select {
		case s.matched <- *deal:
		default:
			logger(ctx).Debug("match sink full, event dropped")
		}
	}

	// Deals are consumed as they arrive, not batched: the first confirmed
	// deal starts the purchase workflow immediately.
	if s.current == nil {
		s.current = s.deals[s.dealIndex]
		s.status = StatusReadyForPurchase
		s.renderCurrent(ctx)
	}
}

// afterResults closes the session when the last search produced no purchase
// plan at all; orphaned candidates are dropped without a report.
func (s *Session) afterResults(ctx context.Context) {
	if s.searchKeys.Count() == 0 && s.current == nil && s.totalDeals == 0 &&
		s.status == StatusWaitingForSearchResults {
		s.finish(ctx, "No deals matched the live market.")
	}
}

// onThrottleReady serves double duty: purchase confirmation when a purchase
// is in flight, next-search dispatch otherwise.
func (s *Session) onThrottleReady(ctx context.Context) {
	switch s.status {
	case StatusCommodityPurchaseInitialized:
		s.CompleteCommoditiesPurchase(ctx)
		s.emitPurchase(ctx)
		// The full commodity amount went out as one action.
		s.Advance(ctx, true)
	case StatusWaitingItemPurchaseConfirmation:
		s.emitPurchase(ctx)
		s.Advance(ctx, false)
	default:
		s.dispatchNextSearch(ctx)
	}
}

func (s *Session) finish(ctx context.Context, message string) {
	s.status = StatusFinished
	s.current = nil

	s.renderer.RenderCleared(message, ColourRed)
	s.renderer.RenderButtons(Project(s.status, s.enabled))

	logger(ctx).Info("session finished",
		slog.Int64(logx.FieldConnectedRealm, s.connectedRealmID),
		slog.Int("total-deals", s.totalDeals),
	)
}

func (s *Session) renderCurrent(ctx context.Context) {
	deal := s.current
	if deal == nil {
		return
	}

	info, ok := s.keys.GetKeyInfo(deal.Key)
	if !ok {
		info.Name = deal.ItemLink
	}

	s.renderer.RenderDeal(DealView{
		Name:       info.Name,
		Quality:    info.Quality,
		Icon:       info.Icon,
		Wanted:     deal.WantedAmount,
		Available:  deal.AvailableAmount,
		Purchased:  s.purchaseIndex,
		UnitPrice:  deal.UnitPrice,
		TotalPrice: deal.TotalPrice,
	})
	s.renderer.RenderButtons(Project(s.status, s.enabled))

	logger(ctx).Debug("deal rendered",
		slog.Int(logx.FieldDealIndex, s.dealIndex),
		slog.Int64(logx.FieldAuctionID, deal.AuctionID),
	)
}
