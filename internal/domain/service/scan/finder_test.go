package scan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain/entity"
)

func TestFindDeals_ItemBudgetAndLevel(t *testing.T) {
	rq := require.New(t)

	dump := entity.AuctionDump{
		ConnectedRealmID: 1403,
		Auctions: []entity.Auction{
			{ID: 1, ItemID: 19019, Buyout: 900_0000, ItemLevel: 80},
			{ID: 2, ItemID: 19019, Buyout: 100_0000, ItemLevel: 80},
			{ID: 3, ItemID: 19019, Buyout: 100_0000, ItemLevel: 60},
			{ID: 4, ItemID: 11111, Buyout: 1_0000},
		},
	}

	list := entity.ShoppingList{
		Items: []entity.ShoppingItem{
			{ItemID: 19019, Budget: 500_0000, ItemLevels: []int{80}},
		},
	}

	deals := NewFinder().FindDeals(context.Background(), dump, list)

	rq.Len(deals, 1)
	rq.Equal(int64(2), deals[0].AuctionID)
	rq.Equal(int64(19019), deals[0].ItemID)
	rq.Equal(80, deals[0].ItemLevel)
}

func TestFindDeals_PetFilters(t *testing.T) {
	rq := require.New(t)

	dump := entity.AuctionDump{
		Auctions: []entity.Auction{
			{ID: 10, ItemID: entity.PetCageItemID, PetSpeciesID: 40, Buyout: 50_0000, PetQualityID: 3, PetBreedID: 4, PetLevel: 25},
			{ID: 11, ItemID: entity.PetCageItemID, PetSpeciesID: 40, Buyout: 50_0000, PetQualityID: 1, PetBreedID: 4, PetLevel: 25},
			{ID: 12, ItemID: entity.PetCageItemID, PetSpeciesID: 40, Buyout: 50_0000, PetQualityID: 3, PetBreedID: 4, PetLevel: 1},
			{ID: 13, ItemID: entity.PetCageItemID, PetSpeciesID: 41, Buyout: 50_0000, PetQualityID: 3, PetBreedID: 4, PetLevel: 25},
		},
	}

	list := entity.ShoppingList{
		Pets: []entity.ShoppingPet{
			{SpeciesID: 40, Budget: 100_0000, Qualities: []int{3}, Level: 25},
		},
	}

	deals := NewFinder().FindDeals(context.Background(), dump, list)

	rq.Len(deals, 1)
	rq.Equal(int64(10), deals[0].AuctionID)
	rq.Equal(int64(40), deals[0].PetID)
	rq.Equal(int64(entity.PetCageItemID), deals[0].ItemID)
}

func TestFindDeals_CheapestFirstWithinKey(t *testing.T) {
	rq := require.New(t)

	dump := entity.AuctionDump{
		Auctions: []entity.Auction{
			{ID: 1, ItemID: 2589, UnitPrice: 300},
			{ID: 2, ItemID: 2589, UnitPrice: 100},
			{ID: 3, ItemID: 2589, UnitPrice: 200},
		},
	}

	list := entity.ShoppingList{
		Items: []entity.ShoppingItem{{ItemID: 2589, Budget: 1000, WantedAmount: 40}},
	}

	deals := NewFinder().FindDeals(context.Background(), dump, list)

	rq.Len(deals, 3)
	rq.Equal(int64(2), deals[0].AuctionID)
	rq.Equal(int64(3), deals[1].AuctionID)
	rq.Equal(int64(1), deals[2].AuctionID)
	rq.Equal(40, deals[0].WantedAmount)
}

func TestSeenDump(t *testing.T) {
	rq := require.New(t)

	finder := NewFinder()

	rq.False(finder.SeenDump(1403, "abc"))
	rq.True(finder.SeenDump(1403, "abc"))
	rq.False(finder.SeenDump(1404, "abc"))
	rq.False(finder.SeenDump(1403, ""))
	rq.False(finder.SeenDump(1403, ""))
}
