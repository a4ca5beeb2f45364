package sniper

import (
	"context"

	"ah_sniper/internal/domain/entity"
)

// SortField selects the single supported search ordering criterion.
type SortField int

const SortPrice SortField = iota

type SortSpec struct {
	Field     SortField
	Ascending bool
}

// ResultEntry is one row of a search result batch. Item auctions price via
// BuyoutAmount, commodities via UnitPrice.
type ResultEntry struct {
	AuctionID    int64
	Quantity     int
	UnitPrice    int64
	BuyoutAmount int64
	ItemID       int64
	ItemLink     string
}

// KeyInfo is display metadata resolved for a search key.
type KeyInfo struct {
	Name    string
	Quality int
	Icon    string
}

// MetadataCache is the item-metadata preload source. IsCached may flip to
// true at any time; the matching ItemInfoReady notification follows.
type MetadataCache interface {
	IsCached(itemID int64) bool
}

// KeyResolver resolves display metadata for search keys. Pet keys always
// resolve.
type KeyResolver interface {
	GetKeyInfo(key entity.SearchKey) (KeyInfo, bool)
}

// Marketplace issues searches and exposes the resulting batches. Search
// completion arrives asynchronously as ItemResults or CommodityResults
// notifications; the next search may only be issued after a ThrottleReady.
type Marketplace interface {
	Search(ctx context.Context, key entity.SearchKey, sort SortSpec, exactMatch bool) error
	ResultCount(key entity.SearchKey) int
	ResultEntry(key entity.SearchKey, index int) (ResultEntry, bool)
	CommodityResultCount(itemID int64) int
	CommodityResultEntry(itemID int64, index int) (ResultEntry, bool)
}

// Purchaser executes purchase actions. Confirmations arrive via the shared
// ThrottleReady notification.
type Purchaser interface {
	Funds() int64
	PlaceBid(ctx context.Context, auctionID int64, price int64) error
	StartCommodityPurchase(ctx context.Context, itemID int64, amount int) error
	ConfirmCommodityPurchase(ctx context.Context, itemID int64, amount int) error
}

// DealView is everything the rendering layer needs for the current deal.
type DealView struct {
	Name       string
	Quality    int
	Icon       string
	Wanted     int
	Available  int
	Purchased  int
	UnitPrice  int64
	TotalPrice int64
}

type Colour string

const (
	ColourNeutral Colour = "neutral"
	ColourRed     Colour = "red"
	ColourGreen   Colour = "green"
)

// Renderer is a consumer, not a dependency: the session pushes state into it
// and never reads back.
type Renderer interface {
	RenderDeal(view DealView)
	RenderCleared(message string, colour Colour)
	RenderButtons(buttons Buttons)
}
