package entity

// ShoppingItem is a single item the user wants to snipe on a realm.
type ShoppingItem struct {
	ItemID       int64    `json:"id" validate:"required,gt=0"`
	Budget       int64    `json:"budget" validate:"required,gt=0"`
	ItemLevels   []int    `json:"ilvl,omitempty" validate:"omitempty,dive,gt=0"`
	Suffixes     []string `json:"suffixes,omitempty"`
	WantedAmount int64    `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Rare         bool     `json:"rare,omitempty"`
}

// ShoppingPet is a battle pet the user wants to snipe on a realm.
type ShoppingPet struct {
	SpeciesID int64 `json:"species_id" validate:"required,gt=0"`
	Budget    int64 `json:"budget" validate:"required,gt=0"`
	Qualities []int `json:"quality,omitempty" validate:"omitempty,dive,gte=0,lte=5"`
	Breeds    []int `json:"breed,omitempty" validate:"omitempty,dive,gt=0"`
	Level     int   `json:"level,omitempty" validate:"omitempty,gte=1,lte=25"`
	Rare      bool  `json:"rare,omitempty"`
}

// ShoppingList bundles the per-realm shopping configuration.
type ShoppingList struct {
	Items []ShoppingItem `json:"items,omitempty" validate:"dive"`
	Pets  []ShoppingPet  `json:"pets,omitempty" validate:"dive"`
}

func (l ShoppingList) Empty() bool {
	return len(l.Items) == 0 && len(l.Pets) == 0
}

// Merge overlays realm specific entries on top of a global list. Realm entries
// for the same item or species replace the global ones.
func (l ShoppingList) Merge(overlay ShoppingList) ShoppingList {
	merged := ShoppingList{}

	itemIdx := make(map[int64]int, len(l.Items))
	for _, item := range l.Items {
		itemIdx[item.ItemID] = len(merged.Items)
		merged.Items = append(merged.Items, item)
	}
	for _, item := range overlay.Items {
		if i, ok := itemIdx[item.ItemID]; ok {
			merged.Items[i] = item
			continue
		}
		merged.Items = append(merged.Items, item)
	}

	petIdx := make(map[int64]int, len(l.Pets))
	for _, pet := range l.Pets {
		petIdx[pet.SpeciesID] = len(merged.Pets)
		merged.Pets = append(merged.Pets, pet)
	}
	for _, pet := range overlay.Pets {
		if i, ok := petIdx[pet.SpeciesID]; ok {
			merged.Pets[i] = pet
			continue
		}
		merged.Pets = append(merged.Pets, pet)
	}

	return merged
}
