package realms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain"
	"ah_sniper/pkg/errcodes"
)

func TestResolver_ConnectedRealmID(t *testing.T) {
	rq := require.New(t)

	r, err := NewResolver("us")
	rq.NoError(err)
	rq.Equal("US", r.Region())

	id, err := r.ConnectedRealmID("Area 52")
	rq.NoError(err)
	rq.Equal(int64(1403), id)

	id, err = r.ConnectedRealmID("MAL'GANIS")
	rq.NoError(err)
	rq.Equal(int64(75), id)

	_, err = r.ConnectedRealmID("nonexistent-realm")
	var appErr *domain.AppError
	rq.True(errors.As(err, &appErr))
	rq.Equal(errcodes.RealmNotFound, appErr.Code)
}

func TestResolver_GroupMembership(t *testing.T) {
	rq := require.New(t)

	r, err := NewResolver("EU")
	rq.NoError(err)

	// Every member of a connected group resolves to the same id.
	a, err := r.ConnectedRealmID("tarren-mill")
	rq.NoError(err)
	b, err := r.ConnectedRealmID("dentarg")
	rq.NoError(err)
	rq.Equal(a, b)

	group, err := r.ConnectedRealm(a)
	rq.NoError(err)
	rq.Equal("EU", group.Region)
	rq.ElementsMatch([]string{"tarren-mill", "dentarg"}, group.Realms)
}

func TestResolver_UnknownRegion(t *testing.T) {
	rq := require.New(t)

	_, err := NewResolver("KR")
	rq.Error(err)
}

func TestSlug(t *testing.T) {
	rq := require.New(t)

	rq.Equal("area-52", Slug("Area 52"))
	rq.Equal("malganis", Slug("Mal'Ganis"))
	rq.Equal("twisting-nether", Slug("  Twisting Nether "))
}
