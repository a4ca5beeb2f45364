package scan

import (
	"context"
	"slices"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"

	"ah_sniper/internal/domain/entity"
)

const processedDumpTTL = 4 * time.Hour

// Finder filters auction house dumps against a realm's shopping list and
// produces raw deal candidates for session resolution.
type Finder struct {
	processedDumps *cache.Cache
}

func NewFinder() *Finder {
	return &Finder{
		processedDumps: cache.New(processedDumpTTL, time.Hour),
	}
}

// SeenDump reports whether a dump with this hash was already processed for
// the realm. Blizzard occasionally re-serves stale data past the
// If-Modified-Since window, the hash catches those.
func (f *Finder) SeenDump(connectedRealmID int64, hash string) bool {
	if hash == "" {
		return false
	}

	key := dumpKey(connectedRealmID, hash)
	if _, found := f.processedDumps.Get(key); found {
		return true
	}

	f.processedDumps.Set(key, true, cache.DefaultExpiration)
	return false
}

// FindDeals checks every auction of the dump against the shopping list and
// returns the ones worth pursuing, cheapest first per key.
func (f *Finder) FindDeals(ctx context.Context, dump entity.AuctionDump, list entity.ShoppingList) []entity.RawDeal {
	if list.Empty() || len(dump.Auctions) == 0 {
		return nil
	}

	index := indexAuctions(dump.Auctions)

	var deals []entity.RawDeal

	for _, want := range list.Items {
		for _, auction := range index.items[want.ItemID] {
			if !itemMatches(auction, want) {
				continue
			}
			deals = append(deals, entity.RawDeal{
				AuctionID:    auction.ID,
				ItemID:       auction.ItemID,
				ItemLevel:    auction.ItemLevel,
				ItemSuffix:   auction.ItemSuffix,
				WantedAmount: int(want.WantedAmount),
			})
		}
	}

	for _, want := range list.Pets {
		for _, auction := range index.pets[want.SpeciesID] {
			if !petMatches(auction, want) {
				continue
			}
			deals = append(deals, entity.RawDeal{
				AuctionID: auction.ID,
				ItemID:    entity.PetCageItemID,
				PetID:     auction.PetSpeciesID,
			})
		}
	}

	logger(ctx).Info("dump scanned",
		"connected_realm_id", dump.ConnectedRealmID,
		"auctions", len(dump.Auctions),
		"deals", len(deals),
	)

	return deals
}

type auctionIndex struct {
	items map[int64][]entity.Auction
	pets  map[int64][]entity.Auction
}

// indexAuctions splits a dump into per-item and per-species buckets in a
// single pass, each bucket sorted cheapest first.
func indexAuctions(auctions []entity.Auction) auctionIndex {
	index := auctionIndex{
		items: make(map[int64][]entity.Auction),
		pets:  make(map[int64][]entity.Auction),
	}

	for _, auction := range auctions {
		if auction.IsPet() {
			index.pets[auction.PetSpeciesID] = append(index.pets[auction.PetSpeciesID], auction)
		} else {
			index.items[auction.ItemID] = append(index.items[auction.ItemID], auction)
		}
	}

	for _, bucket := range index.items {
		slices.SortStableFunc(bucket, byPrice)
	}
	for _, bucket := range index.pets {
		slices.SortStableFunc(bucket, byPrice)
	}

	return index
}

func byPrice(a, b entity.Auction) int {
	switch {
	case a.Price() < b.Price():
		return -1
	case a.Price() > b.Price():
		return 1
	default:
		return 0
	}
}

func itemMatches(auction entity.Auction, want entity.ShoppingItem) bool {
	if want.Budget > 0 && auction.Price() > want.Budget {
		return false
	}

	if len(want.ItemLevels) > 0 && !lo.Contains(want.ItemLevels, auction.ItemLevel) {
		return false
	}

	if len(want.Suffixes) > 0 && !lo.Contains(want.Suffixes, auction.ItemSuffix) {
		return false
	}

	return true
}

func petMatches(auction entity.Auction, want entity.ShoppingPet) bool {
	if want.Budget > 0 && auction.Price() > want.Budget {
		return false
	}

	if len(want.Qualities) > 0 && !lo.Contains(want.Qualities, auction.PetQualityID) {
		return false
	}

	if len(want.Breeds) > 0 && !lo.Contains(want.Breeds, auction.PetBreedID) {
		return false
	}

	if want.Level > 0 && auction.PetLevel != want.Level {
		return false
	}

	return true
}

func dumpKey(connectedRealmID int64, hash string) string {
	return strconv.FormatInt(connectedRealmID, 10) + ":" + hash
}
