package market

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/pkg/logx"
)

const (
	metadataTTL = 30 * time.Minute

	// Each search or purchase action takes one simulated server round trip
	// before the throttle opens again.
	defaultLatency = 5 * time.Millisecond

	notificationBuffer = 1024
)

// Host is the in-process marketplace backing one session: it serves searches
// and dry-run purchases out of a downloaded auction dump and feeds the
// session's notification stream. All session-facing callbacks are emitted
// asynchronously, mirroring the real auction house client.
type Host struct {
	dump    entity.AuctionDump
	latency time.Duration

	metadata  *cache.Cache
	itemNames map[int64]string

	mu               sync.Mutex
	funds            int64
	itemResults      map[string][]sniper.ResultEntry
	commodityResults map[int64][]sniper.ResultEntry

	notifications chan sniper.Notification
	closeOnce     sync.Once
}

func NewHost(dump entity.AuctionDump, funds int64) *Host {
	return &Host{
		dump:             dump,
		latency:          defaultLatency,
		metadata:         cache.New(metadataTTL, metadataTTL),
		itemNames:        map[int64]string{},
		funds:            funds,
		itemResults:      make(map[string][]sniper.ResultEntry),
		commodityResults: make(map[int64][]sniper.ResultEntry),
		notifications:    make(chan sniper.Notification, notificationBuffer),
	}
}

// WithItemNames supplies display names for known item ids. Unknown items
// render with a generated link only.
func (h *Host) WithItemNames(names map[int64]string) *Host {
	h.itemNames = names
	return h
}

func (h *Host) WithLatency(latency time.Duration) *Host {
	h.latency = latency
	return h
}

// Notifications is the stream the runner drains into the session.
func (h *Host) Notifications() <-chan sniper.Notification {
	return h.notifications
}

// Close ends the notification stream. Safe to call more than once.
func (h *Host) Close() {
	h.closeOnce.Do(func() { close(h.notifications) })
}

// IsCached reports whether item metadata is loaded. A miss schedules the
// load and the ItemInfoReady notification follows.
func (h *Host) IsCached(itemID int64) bool {
	if _, found := h.metadata.Get(itemCacheKey(itemID)); found {
		return true
	}

	go func() {
		time.Sleep(h.latency)
		h.metadata.Set(itemCacheKey(itemID), true, cache.DefaultExpiration)
		h.emit(sniper.ItemInfoReady(itemID))
	}()

	return false
}

// GetKeyInfo resolves display metadata. Pet keys resolve immediately, item
// keys resolve once their metadata load finished.
func (h *Host) GetKeyInfo(key entity.SearchKey) (sniper.KeyInfo, bool) {
	if key.IsPet {
		return sniper.KeyInfo{
			Name: fmt.Sprintf("Caged Pet #%d", key.PetID),
			Icon: "inv_pet_cage",
		}, true
	}

	if _, found := h.metadata.Get(itemCacheKey(key.ItemID)); !found {
		go func() {
			time.Sleep(h.latency)
			h.metadata.Set(itemCacheKey(key.ItemID), true, cache.DefaultExpiration)
			h.emit(sniper.KeyInfoReady(key.ItemID))
		}()

		return sniper.KeyInfo{}, false
	}

	return sniper.KeyInfo{
		Name: h.displayName(key.ItemID, fmt.Sprintf("Item #%d", key.ItemID)),
		Icon: "inv_misc_questionmark",
	}, true
}

// Search filters the dump for the key and publishes a result batch followed
// by a throttle tick.
func (h *Host) Search(ctx context.Context, key entity.SearchKey, spec sniper.SortSpec, exactMatch bool) error {
	entries, commodity := h.match(key, spec)

	h.mu.Lock()
	if commodity {
		h.commodityResults[key.ItemID] = entries
	} else {
		h.itemResults[key.Composite()] = entries
	}
	h.mu.Unlock()

	logger(ctx).Debug("search served",
		logx.FieldSearchKey, key.Composite(),
		"results", len(entries),
		"commodity", commodity,
	)

	go func() {
		time.Sleep(h.latency)
		if commodity {
			h.emit(sniper.CommodityResults(key.ItemID))
		} else {
			h.emit(sniper.ItemResults(key))
		}
		h.emit(sniper.ThrottleReady())
	}()

	return nil
}

func (h *Host) ResultCount(key entity.SearchKey) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.itemResults[key.Composite()])
}

func (h *Host) ResultEntry(key entity.SearchKey, index int) (sniper.ResultEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.itemResults[key.Composite()]
	if index < 0 || index >= len(entries) {
		return sniper.ResultEntry{}, false
	}

	return entries[index], true
}

func (h *Host) CommodityResultCount(itemID int64) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.commodityResults[itemID])
}

func (h *Host) CommodityResultEntry(itemID int64, index int) (sniper.ResultEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := h.commodityResults[itemID]
	if index < 0 || index >= len(entries) {
		return sniper.ResultEntry{}, false
	}

	return entries[index], true
}

func (h *Host) Funds() int64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.funds
}

// PlaceBid executes a dry-run item buyout. The confirmation arrives as the
// next throttle tick.
func (h *Host) PlaceBid(ctx context.Context, auctionID int64, price int64) error {
	h.mu.Lock()
	h.funds -= price
	h.mu.Unlock()

	logger(ctx).Info("dry-run bid placed",
		logx.FieldAuctionID, auctionID,
		"price", price,
	)

	go func() {
		time.Sleep(h.latency)
		h.emit(sniper.ThrottleReady())
	}()

	return nil
}

func (h *Host) StartCommodityPurchase(ctx context.Context, itemID int64, amount int) error {
	logger(ctx).Info("dry-run commodity purchase started",
		logx.FieldItemID, itemID,
		"amount", amount,
	)

	go func() {
		time.Sleep(h.latency)
		h.emit(sniper.ThrottleReady())
	}()

	return nil
}

func (h *Host) ConfirmCommodityPurchase(ctx context.Context, itemID int64, amount int) error {
	h.mu.Lock()
	entries := h.commodityResults[itemID]
	if len(entries) > 0 {
		h.funds -= int64(amount) * entries[0].UnitPrice
	}
	h.mu.Unlock()

	logger(ctx).Info("dry-run commodity purchase confirmed",
		logx.FieldItemID, itemID,
		"amount", amount,
	)

	return nil
}

// match collects dump listings for a key, cheapest first. A key whose
// listings carry unit prices is a commodity.
func (h *Host) match(key entity.SearchKey, spec sniper.SortSpec) ([]sniper.ResultEntry, bool) {
	var matched []entity.Auction
	commodity := false

	for _, auction := range h.dump.Auctions {
		if !keyMatches(key, auction) {
			continue
		}
		if auction.UnitPrice > 0 {
			commodity = true
		}
		matched = append(matched, auction)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if spec.Ascending {
			return matched[i].Price() < matched[j].Price()
		}
		return matched[i].Price() > matched[j].Price()
	})

	entries := make([]sniper.ResultEntry, 0, len(matched))
	for _, auction := range matched {
		entries = append(entries, sniper.ResultEntry{
			AuctionID:    auction.ID,
			Quantity:     int(auction.Quantity),
			UnitPrice:    auction.UnitPrice,
			BuyoutAmount: auction.Buyout,
			ItemID:       auction.ItemID,
			ItemLink:     itemLink(auction),
		})
	}

	return entries, commodity
}

func keyMatches(key entity.SearchKey, auction entity.Auction) bool {
	if key.IsPet {
		return auction.IsPet() && auction.PetSpeciesID == key.PetID
	}

	if auction.IsPet() || auction.ItemID != key.ItemID {
		return false
	}

	if key.ItemLevel != 0 && auction.ItemLevel != key.ItemLevel {
		return false
	}

	if key.ItemSuffix != "" && auction.ItemSuffix != key.ItemSuffix {
		return false
	}

	return true
}

func itemLink(auction entity.Auction) string {
	if auction.IsPet() {
		return fmt.Sprintf("[pet:%d]", auction.PetSpeciesID)
	}

	return fmt.Sprintf("[item:%d]", auction.ItemID)
}

func (h *Host) displayName(itemID int64, fallback string) string {
	if name, ok := h.itemNames[itemID]; ok {
		return name
	}

	return fallback
}

func (h *Host) emit(n sniper.Notification) {
	defer func() {
		// The stream closes when the runner is done, late async emits from
		// metadata loads are irrelevant by then.
		_ = recover()
	}()

	h.notifications <- n
}

func itemCacheKey(itemID int64) string {
	return fmt.Sprintf("item:%d", itemID)
}
