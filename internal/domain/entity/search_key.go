package entity

import "fmt"

// SearchKey is a deduplicated lookup token for one marketplace query: either
// an item (id + level + suffix) or a caged pet under the pet cage pseudo
// item.
type SearchKey struct {
	IsPet      bool
	ItemID     int64
	PetID      int64
	ItemLevel  int
	ItemSuffix string
}

func ItemSearchKey(itemID int64, itemLevel int, itemSuffix string) SearchKey {
	return SearchKey{
		ItemID:     itemID,
		ItemLevel:  itemLevel,
		ItemSuffix: itemSuffix,
	}
}

func PetSearchKey(petID int64) SearchKey {
	return SearchKey{
		IsPet:  true,
		ItemID: PetCageItemID,
		PetID:  petID,
	}
}

// Composite returns the dedup string: at most one SearchKey per distinct
// composite is ever enqueued, however many candidates share it.
func (k SearchKey) Composite() string {
	if k.IsPet {
		return fmt.Sprintf("pet:%d", k.PetID)
	}

	return fmt.Sprintf("item:%d:%d:%s", k.ItemID, k.ItemLevel, k.ItemSuffix)
}

func (k SearchKey) String() string {
	return k.Composite()
}
