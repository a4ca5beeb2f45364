package entity

import "time"

// Auction is a single listing from an auction house dump.
// Commodity listings carry UnitPrice, regular listings carry Buyout.
type Auction struct {
	ID           int64
	ItemID       int64
	PetSpeciesID int64
	Quantity     int64
	UnitPrice    int64
	Buyout       int64
	ItemLevel    int
	ItemSuffix   string
	PetQualityID int
	PetBreedID   int
	PetLevel     int
	TimeLeft     string
}

func (a Auction) IsPet() bool {
	return a.ItemID == PetCageItemID
}

// Price is the per-unit cost of the listing regardless of its kind.
func (a Auction) Price() int64 {
	if a.UnitPrice > 0 {
		return a.UnitPrice
	}
	return a.Buyout
}

// AuctionDump is one snapshot of a connected realm's auction house.
type AuctionDump struct {
	ConnectedRealmID int64
	Auctions         []Auction
	LastModified     time.Time
	Hash             string
}
