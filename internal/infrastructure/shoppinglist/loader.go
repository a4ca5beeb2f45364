package shoppinglist

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/infrastructure/realms"
	"ah_sniper/pkg/errcodes"
)

// copperPerGold converts user facing gold budgets to the copper values
// auction listings are priced in.
const copperPerGold = 10000

// File is the on-disk shopping configuration. Budgets are in gold.
type File struct {
	Region string                         `json:"region" validate:"required"`
	Global *entity.ShoppingList           `json:"global,omitempty"`
	Realms map[string]entity.ShoppingList `json:"realms,omitempty"`
}

// Config is the resolved shopping configuration: one merged list per
// connected realm group, budgets converted to copper.
type Config struct {
	Region   string
	PerRealm map[int64]entity.ShoppingList
}

// List returns the resolved shopping list for a connected realm.
func (c *Config) List(connectedRealmID int64) (entity.ShoppingList, bool) {
	list, ok := c.PerRealm[connectedRealmID]
	return list, ok
}

func (c *Config) ConnectedRealmIDs() []int64 {
	ids := make([]int64, 0, len(c.PerRealm))
	for id := range c.PerRealm {
		ids = append(ids, id)
	}
	return ids
}

var validate = validator.New() //nolint:gochecknoglobals

// Load reads, validates and resolves a shopping configuration file. A global
// section applies to every connected realm of the region, realm sections
// overlay it.
func Load(ctx context.Context, resolver *realms.Resolver, path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shopping list: %w", err)
	}

	var file File
	if err := jsoniter.Unmarshal(raw, &file); err != nil {
		return nil, domain.WrapError(err, errcodes.InvalidShoppingEntry, "shopping list is not valid JSON")
	}

	if err := validate.Struct(file); err != nil {
		return nil, domain.WrapError(err, errcodes.ValidationError, "shopping list failed validation")
	}

	if file.Global == nil && len(file.Realms) == 0 {
		return nil, domain.NewError(errcodes.InvalidShoppingEntry, "shopping list has neither global nor realm sections")
	}

	cfg := &Config{
		Region:   resolver.Region(),
		PerRealm: make(map[int64]entity.ShoppingList),
	}

	if file.Global != nil {
		if err := checkList(*file.Global, "global"); err != nil {
			return nil, err
		}
		for _, id := range resolver.AllConnectedRealmIDs() {
			cfg.PerRealm[id] = normalize(*file.Global)
		}
	}

	for realm, list := range file.Realms {
		if err := checkList(list, realm); err != nil {
			return nil, err
		}

		id, err := resolver.ConnectedRealmID(realm)
		if err != nil {
			return nil, fmt.Errorf("resolve realm %q: %w", realm, err)
		}

		cfg.PerRealm[id] = cfg.PerRealm[id].Merge(normalize(list))
	}

	// A realm without anything to buy is not worth scanning.
	for id, list := range cfg.PerRealm {
		if list.Empty() {
			logger(ctx).Warn("dropping realm with empty shopping list", "connected_realm_id", id)
			delete(cfg.PerRealm, id)
		}
	}

	if len(cfg.PerRealm) == 0 {
		return nil, domain.NewError(errcodes.InvalidShoppingEntry, "shopping list resolved to zero realms")
	}

	logger(ctx).Info("shopping list loaded",
		"region", cfg.Region,
		"realms", len(cfg.PerRealm),
	)

	return cfg, nil
}

func checkList(list entity.ShoppingList, section string) error {
	for _, item := range list.Items {
		if err := validate.Struct(item); err != nil {
			return domain.WrapError(err, errcodes.InvalidShoppingEntry,
				fmt.Sprintf("item %d (%s) failed validation", item.ItemID, section))
		}

		// Caged pets are shopped via the pets section, never as plain items.
		if item.ItemID == entity.PetCageItemID {
			return domain.NewError(errcodes.ForbiddenItemID,
				fmt.Sprintf("item %d (%s) is the pet cage, configure pets instead", item.ItemID, section))
		}
	}

	for _, pet := range list.Pets {
		if err := validate.Struct(pet); err != nil {
			return domain.WrapError(err, errcodes.InvalidShoppingEntry,
				fmt.Sprintf("pet %d (%s) failed validation", pet.SpeciesID, section))
		}
	}

	return nil
}

// normalize copies a list with gold budgets converted to copper.
func normalize(list entity.ShoppingList) entity.ShoppingList {
	out := entity.ShoppingList{
		Items: make([]entity.ShoppingItem, len(list.Items)),
		Pets:  make([]entity.ShoppingPet, len(list.Pets)),
	}

	for i, item := range list.Items {
		item.Budget *= copperPerGold
		out.Items[i] = item
	}

	for i, pet := range list.Pets {
		pet.Budget *= copperPerGold
		out.Pets[i] = pet
	}

	return out
}
