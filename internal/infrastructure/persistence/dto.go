package persistence

import (
	"time"

	"ah_sniper/internal/domain/entity"
)

// purchaseSchema maps one row of the purchases ledger table.
type purchaseSchema struct {
	ID               string    `db:"id"`
	CreatedAt        time.Time `db:"created_at"`
	ConnectedRealmID int64     `db:"connected_realm_id"`
	AuctionID        int64     `db:"auction_id"`
	ItemID           int64     `db:"item_id"`
	PetID            int64     `db:"pet_id"`
	Commodity        bool      `db:"commodity"`
	Amount           int       `db:"amount"`
	UnitPrice        int64     `db:"unit_price"`
	TotalPrice       int64     `db:"total_price"`
	ItemLink         string    `db:"item_link"`
}

func (s *purchaseSchema) toDomain() *entity.Purchase {
	return &entity.Purchase{
		ID:               s.ID,
		CreatedAt:        s.CreatedAt,
		ConnectedRealmID: s.ConnectedRealmID,
		AuctionID:        s.AuctionID,
		ItemID:           s.ItemID,
		PetID:            s.PetID,
		Commodity:        s.Commodity,
		Amount:           s.Amount,
		UnitPrice:        s.UnitPrice,
		TotalPrice:       s.TotalPrice,
		ItemLink:         s.ItemLink,
	}
}
