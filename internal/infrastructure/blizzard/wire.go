package blizzard

import "ah_sniper/internal/domain/entity"

// Wire format of /data/wow/connected-realm/{id}/auctions. Regular listings
// carry buyout, commodity listings carry unit_price.
type auctionsResponse struct {
	Auctions []wireAuction `json:"auctions"`
}

type wireAuction struct {
	ID       int64    `json:"id"`
	Item     wireItem `json:"item"`
	Quantity int64    `json:"quantity"`
	UnitPrice int64   `json:"unit_price"`
	Buyout    int64   `json:"buyout"`
	TimeLeft  string  `json:"time_left"`
}

type wireItem struct {
	ID           int64          `json:"id"`
	Modifiers    []wireModifier `json:"modifiers"`
	BonusLists   []int64        `json:"bonus_lists"`
	PetSpeciesID int64          `json:"pet_species_id"`
	PetBreedID   int            `json:"pet_breed_id"`
	PetLevel     int            `json:"pet_level"`
	PetQualityID int            `json:"pet_quality_id"`
}

type wireModifier struct {
	Type  int   `json:"type"`
	Value int64 `json:"value"`
}

func (r auctionsResponse) toDomain() []entity.Auction {
	auctions := make([]entity.Auction, 0, len(r.Auctions))

	for _, a := range r.Auctions {
		auctions = append(auctions, entity.Auction{
			ID:           a.ID,
			ItemID:       a.Item.ID,
			PetSpeciesID: a.Item.PetSpeciesID,
			Quantity:     a.Quantity,
			UnitPrice:    a.UnitPrice,
			Buyout:       a.Buyout,
			ItemLevel:    a.Item.itemLevel(),
			ItemSuffix:   a.Item.suffix(),
			PetQualityID: a.Item.PetQualityID,
			PetBreedID:   a.Item.PetBreedID,
			PetLevel:     a.Item.PetLevel,
			TimeLeft:     a.TimeLeft,
		})
	}

	return auctions
}

func (i wireItem) itemLevel() int {
	for _, m := range i.Modifiers {
		if m.Type == itemLevelModifierType {
			return int(m.Value)
		}
	}

	return 0
}

// Secondary stat suffixes come from well known bonus list ids. Listings
// without one of these simply have no suffix to filter on.
var suffixBonuses = map[int64]string{ //nolint:gochecknoglobals
	19: "of the Fireflash",
	20: "of the Fireflash",
	21: "of the Aurora",
	22: "of the Aurora",
	23: "of the Feverflare",
	24: "of the Feverflare",
	25: "of the Harmonious",
	26: "of the Harmonious",
	27: "of the Peerless",
	28: "of the Peerless",
	29: "of the Quickblade",
	30: "of the Quickblade",
}

func (i wireItem) suffix() string {
	for _, bonus := range i.BonusLists {
		if suffix, ok := suffixBonuses[bonus]; ok {
			return suffix
		}
	}

	return ""
}
