package realms

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/errcodes"
)

//go:embed connected_realms.json
var realmsFS embed.FS

// Resolver maps realm names to connected realm groups for one region.
type Resolver struct {
	region string
	groups map[int64][]string
	bySlug map[string]int64
}

func NewResolver(region string) (*Resolver, error) {
	raw, err := realmsFS.ReadFile("connected_realms.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded realm db: %w", err)
	}

	var db map[string]map[string][]string
	if err := jsoniter.Unmarshal(raw, &db); err != nil {
		return nil, fmt.Errorf("unmarshal realm db: %w", err)
	}

	region = strings.ToUpper(region)

	regionGroups, ok := db[region]
	if !ok {
		return nil, domain.NewError(errcodes.RealmNotFound, fmt.Sprintf("unknown region %q", region))
	}

	r := &Resolver{
		region: region,
		groups: make(map[int64][]string, len(regionGroups)),
		bySlug: make(map[string]int64),
	}

	for rawID, slugs := range regionGroups {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse connected realm id %q: %w", rawID, err)
		}

		sort.Strings(slugs)
		r.groups[id] = slugs

		for _, slug := range slugs {
			r.bySlug[slug] = id
		}
	}

	return r, nil
}

func (r *Resolver) Region() string {
	return r.region
}

// ConnectedRealmID resolves a realm name, slug or not, to its connected
// realm group id.
func (r *Resolver) ConnectedRealmID(realm string) (int64, error) {
	id, ok := r.bySlug[Slug(realm)]
	if !ok {
		return 0, domain.NewError(errcodes.RealmNotFound,
			fmt.Sprintf("realm %q not found in region %s", realm, r.region))
	}

	return id, nil
}

// ConnectedRealm returns the full group for a connected realm id.
func (r *Resolver) ConnectedRealm(id int64) (entity.ConnectedRealm, error) {
	slugs, ok := r.groups[id]
	if !ok {
		return entity.ConnectedRealm{}, domain.NewError(errcodes.RealmNotFound,
			fmt.Sprintf("connected realm %d not found in region %s", id, r.region))
	}

	return entity.ConnectedRealm{
		ID:     id,
		Region: r.region,
		Realms: slugs,
	}, nil
}

// AllConnectedRealmIDs lists every group of the region, ordered.
func (r *Resolver) AllConnectedRealmIDs() []int64 {
	ids := make([]int64, 0, len(r.groups))
	for id := range r.groups {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Slug normalizes a realm name the way Blizzard slugs them: lowercase,
// spaces to dashes, apostrophes dropped.
func Slug(realm string) string {
	slug := strings.ToLower(strings.TrimSpace(realm))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")

	return slug
}
