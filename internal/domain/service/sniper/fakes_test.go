package sniper_test

import (
	"context"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/sniper"
)

// fakeHost plays every collaborator port at once, the way the game client
// does. Searches and purchase requests are recorded; results are delivered
// by the tests via Session.Handle, mirroring the asynchronous host.
type fakeHost struct {
	cached  map[int64]bool
	keyInfo map[string]sniper.KeyInfo
	funds   int64

	itemResults      map[string][]sniper.ResultEntry
	commodityResults map[int64][]sniper.ResultEntry

	searches          []entity.SearchKey
	bids              []placedBid
	commodityStarts   []commodityRequest
	commodityConfirms []commodityRequest
}

type placedBid struct {
	auctionID int64
	price     int64
}

type commodityRequest struct {
	itemID int64
	amount int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		cached:           make(map[int64]bool),
		keyInfo:          make(map[string]sniper.KeyInfo),
		itemResults:      make(map[string][]sniper.ResultEntry),
		commodityResults: make(map[int64][]sniper.ResultEntry),
	}
}

func (h *fakeHost) IsCached(itemID int64) bool {
	return h.cached[itemID]
}

func (h *fakeHost) GetKeyInfo(key entity.SearchKey) (sniper.KeyInfo, bool) {
	if key.IsPet {
		return sniper.KeyInfo{Name: "Caged Pet"}, true
	}

	info, ok := h.keyInfo[key.Composite()]

	return info, ok
}

func (h *fakeHost) Search(_ context.Context, key entity.SearchKey, _ sniper.SortSpec, _ bool) error {
	h.searches = append(h.searches, key)
	return nil
}

func (h *fakeHost) ResultCount(key entity.SearchKey) int {
	return len(h.itemResults[key.Composite()])
}

func (h *fakeHost) ResultEntry(key entity.SearchKey, index int) (sniper.ResultEntry, bool) {
	entries := h.itemResults[key.Composite()]
	if index >= len(entries) {
		return sniper.ResultEntry{}, false
	}

	return entries[index], true
}

func (h *fakeHost) CommodityResultCount(itemID int64) int {
	return len(h.commodityResults[itemID])
}

func (h *fakeHost) CommodityResultEntry(itemID int64, index int) (sniper.ResultEntry, bool) {
	entries := h.commodityResults[itemID]
	if index >= len(entries) {
		return sniper.ResultEntry{}, false
	}

	return entries[index], true
}

func (h *fakeHost) Funds() int64 {
	return h.funds
}

func (h *fakeHost) PlaceBid(_ context.Context, auctionID int64, price int64) error {
	h.bids = append(h.bids, placedBid{auctionID: auctionID, price: price})
	return nil
}

func (h *fakeHost) StartCommodityPurchase(_ context.Context, itemID int64, amount int) error {
	h.commodityStarts = append(h.commodityStarts, commodityRequest{itemID: itemID, amount: amount})
	return nil
}

func (h *fakeHost) ConfirmCommodityPurchase(_ context.Context, itemID int64, amount int) error {
	h.commodityConfirms = append(h.commodityConfirms, commodityRequest{itemID: itemID, amount: amount})
	return nil
}

// fakeRenderer records the render stream.
type fakeRenderer struct {
	deals    []sniper.DealView
	cleared  []string
	colours  []sniper.Colour
	buttons  []sniper.Buttons
	rendered int
}

func (r *fakeRenderer) RenderDeal(view sniper.DealView) {
	r.deals = append(r.deals, view)
	r.rendered++
}

func (r *fakeRenderer) RenderCleared(message string, colour sniper.Colour) {
	r.cleared = append(r.cleared, message)
	r.colours = append(r.colours, colour)
}

func (r *fakeRenderer) RenderButtons(buttons sniper.Buttons) {
	r.buttons = append(r.buttons, buttons)
}

func newTestSession(host *fakeHost, renderer *fakeRenderer) *sniper.Session {
	return sniper.NewSession(1403, host, host, host, host, renderer)
}
