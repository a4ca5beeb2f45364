package entity

import "time"

// PetCageItemID is the pseudo item every caged battle pet is listed under.
const PetCageItemID = 82800

// RawDeal is one entry of the per-realm shopping list: an auction that the
// scan half already identified as worth buying.
type RawDeal struct {
	AuctionID    int64  `json:"auction_id" validate:"required,gt=0"`
	ItemID       int64  `json:"item_id,omitempty" validate:"required_without=PetID"`
	PetID        int64  `json:"pet_id,omitempty"`
	ItemLevel    int    `json:"item_level,omitempty"`
	ItemSuffix   string `json:"item_suffix,omitempty"`
	WantedAmount int    `json:"wanted_amount,omitempty"`
}

// PossibleDeal is an unresolved purchase target, keyed by auction ID. It is
// dropped from the candidate set once matched against a live search result,
// or silently when resolution finishes without a match.
type PossibleDeal struct {
	AuctionID    int64
	PetID        int64
	ItemID       int64
	ItemLevel    int
	ItemSuffix   string
	WantedAmount int
}

func (d PossibleDeal) IsPet() bool {
	return d.PetID != 0
}

// Deal is a confirmed, priced auction matched from live marketplace results.
// Immutable once created except for PurchaseAmount, annotated when a
// commodity purchase starts.
type Deal struct {
	IsCommodity bool
	IsPet       bool

	AuctionID int64
	ItemID    int64
	PetID     int64
	Key       SearchKey

	WantedAmount    int
	AvailableAmount int
	PurchaseAmount  int

	UnitPrice  int64 // copper
	TotalPrice int64 // UnitPrice * min(AvailableAmount, WantedAmount)

	ItemLink string
}

// Purchase is a ledger record of one issued purchase action.
type Purchase struct {
	ID               string
	CreatedAt        time.Time
	ConnectedRealmID int64
	AuctionID        int64
	ItemID           int64
	PetID            int64
	Commodity        bool
	Amount           int
	UnitPrice        int64
	TotalPrice       int64
	ItemLink         string
}
