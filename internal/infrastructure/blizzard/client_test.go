package blizzard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain"
	"ah_sniper/pkg/errcodes"
)

const dumpBody = `{
	"auctions": [
		{"id": 1, "item": {"id": 19019, "modifiers": [{"type": 9, "value": 80}], "bonus_lists": [19]}, "quantity": 1, "buyout": 5000000, "time_left": "VERY_LONG"},
		{"id": 2, "item": {"id": 2589}, "quantity": 200, "unit_price": 150, "time_left": "SHORT"},
		{"id": 3, "item": {"id": 82800, "pet_species_id": 40, "pet_breed_id": 4, "pet_level": 25, "pet_quality_id": 3}, "quantity": 1, "buyout": 900000, "time_left": "LONG"}
	]
}`

func newTestServer(t *testing.T, auctions http.HandlerFunc) (*httptest.Server, Config) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "client-id", user)
		require.Equal(t, "client-secret", pass)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token": "test-token", "expires_in": 86399}`))
	})
	mux.HandleFunc("/data/wow/connected-realm/1403/auctions", auctions)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv, Config{
		APIBaseURL:   srv.URL,
		TokenURL:     srv.URL + "/oauth/token",
		Region:       "us",
		Locale:       "en_US",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Timeout:      5 * time.Second,
	}
}

func TestClient_Auctions(t *testing.T) {
	rq := require.New(t)

	_, cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		require.Equal(t, "dynamic-us", r.URL.Query().Get("namespace"))
		w.Header().Set("Last-Modified", "Tue, 26 Aug 2025 10:00:00 GMT")
		_, _ = w.Write([]byte(dumpBody))
	})

	dump, err := NewClient(cfg).Auctions(context.Background(), 1403, time.Time{})
	rq.NoError(err)

	rq.Equal(int64(1403), dump.ConnectedRealmID)
	rq.Len(dump.Auctions, 3)
	rq.NotEmpty(dump.Hash)
	rq.Equal(2025, dump.LastModified.Year())

	item := dump.Auctions[0]
	rq.Equal(int64(19019), item.ItemID)
	rq.Equal(80, item.ItemLevel)
	rq.Equal("of the Fireflash", item.ItemSuffix)
	rq.Equal(int64(5000000), item.Price())

	commodity := dump.Auctions[1]
	rq.Equal(int64(150), commodity.Price())
	rq.Equal(int64(200), commodity.Quantity)

	pet := dump.Auctions[2]
	rq.True(pet.IsPet())
	rq.Equal(int64(40), pet.PetSpeciesID)
	rq.Equal(3, pet.PetQualityID)
}

func TestClient_Auctions_NotModified(t *testing.T) {
	rq := require.New(t)

	var gotModifiedSince string

	_, cfg := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotModifiedSince = r.Header.Get("If-Modified-Since")
		w.WriteHeader(http.StatusNotModified)
	})

	since := time.Date(2025, 8, 26, 10, 0, 0, 0, time.UTC)

	_, err := NewClient(cfg).Auctions(context.Background(), 1403, since)

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.UnmodifiedData, code)

	// The pad compensates for desynced Blizzard servers.
	want := since.Add(modifiedSincePad).Format(http.TimeFormat)
	rq.Equal(want, gotModifiedSince)
}

func TestClient_Auctions_QuotaExceeded(t *testing.T) {
	rq := require.New(t)

	_, cfg := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := NewClient(cfg).Auctions(context.Background(), 1403, time.Time{})

	code, ok := domain.GetCode(err)
	rq.True(ok)
	rq.Equal(errcodes.QuotaExceeded, code)
}

func TestClient_Auctions_DumpHashStable(t *testing.T) {
	rq := require.New(t)

	_, cfg := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(dumpBody))
	})

	client := NewClient(cfg)

	first, err := client.Auctions(context.Background(), 1403, time.Time{})
	rq.NoError(err)
	second, err := client.Auctions(context.Background(), 1403, time.Time{})
	rq.NoError(err)

	rq.Equal(first.Hash, second.Hash)
}
