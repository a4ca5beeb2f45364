package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/internal/infrastructure/market"
	"ah_sniper/internal/worker"
	"ah_sniper/pkg/rest"
	"ah_sniper/pkg/tests"
)

type nopRenderer struct{}

func (nopRenderer) RenderDeal(sniper.DealView)          {}
func (nopRenderer) RenderCleared(string, sniper.Colour) {}
func (nopRenderer) RenderButtons(sniper.Buttons)        {}

type fakePurchases struct {
	recent []*entity.Purchase
}

func (f *fakePurchases) ListRecent(_ context.Context, limit int) ([]*entity.Purchase, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakePurchases) ListByRealm(_ context.Context, id int64, _ int) ([]*entity.Purchase, error) {
	var out []*entity.Purchase
	for _, p := range f.recent {
		if p.ConnectedRealmID == id {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestServer(t *testing.T) (tests.APIClient, *worker.Registry, *fakePurchases) {
	t.Helper()

	registry := worker.NewRegistry()
	purchases := &fakePurchases{}

	router := chi.NewRouter()
	NewServer(NewSniperServer(registry, purchases)).RegisterRoutes(router)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return tests.NewAPIClient(srv.URL, srv.Client()), registry, purchases
}

func addRunner(registry *worker.Registry, realmID int64) *worker.Runner {
	host := market.NewHost(entity.AuctionDump{ConnectedRealmID: realmID}, 0)
	session := sniper.NewSession(realmID, host, host, host, host, nopRenderer{})
	runner := worker.NewRunner(session, host)
	registry.Put(realmID, runner)

	return runner
}

func TestGetSessions(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)
	addRunner(registry, 57)

	var views []rest.SessionView
	resp, err := client.Get(t.Context(), "/v1/sessions", nil, &views, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Len(views, 2)
	rq.Equal(int64(57), views[0].ConnectedRealmID)
	rq.Equal(int64(1403), views[1].ConnectedRealmID)
}

func TestGetSession(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)

	var view rest.SessionView
	resp, err := client.Get(t.Context(), "/v1/sessions/1403", nil, &view, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.Equal(int64(1403), view.ConnectedRealmID)
	rq.False(view.Enabled)
}

func TestGetSession_NotFound(t *testing.T) {
	rq := require.New(t)

	client, _, _ := newTestServer(t)

	var restErr rest.Error
	resp, err := client.Get(t.Context(), "/v1/sessions/9999", nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("SessionNotFound"), restErr.Code)
}

func TestGetSession_BadRealmID(t *testing.T) {
	rq := require.New(t)

	client, _, _ := newTestServer(t)

	resp, err := client.Get(t.Context(), "/v1/sessions/not-a-number", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}

func TestGetSessionDeals_Empty(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)

	var deals []rest.Deal
	resp, err := client.Get(t.Context(), "/v1/sessions/1403/deals", nil, &deals, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Empty(deals)
}

func TestPostSessionSkip(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)

	resp, err := client.Post(t.Context(), "/v1/sessions/1403/skip", nil, nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
}

func TestPostSessionBuy_Disabled(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)

	var restErr rest.Error
	resp, err := client.Post(t.Context(), "/v1/sessions/1403/buy", nil, nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("SessionDisabled"), restErr.Code)
}

func TestPostSessionBuy_NoDeal(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	runner := addRunner(registry, 1403)
	runner.SetEnabled(t.Context(), true)

	var restErr rest.Error
	resp, err := client.Post(t.Context(), "/v1/sessions/1403/buy", nil, nil, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusNotFound, resp.StatusCode)
	rq.Equal(rest.ErrorCode("DealNotFound"), restErr.Code)
}

func TestPostSessionEnabled(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	runner := addRunner(registry, 1403)

	resp, err := client.PostJSON(t.Context(), "/v1/sessions/1403/enabled", nil,
		`{"enabled": true}`, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)

	rq.True(runner.View().Enabled)
}

func TestPostSessionEnabled_MissingField(t *testing.T) {
	rq := require.New(t)

	client, registry, _ := newTestServer(t)
	addRunner(registry, 1403)

	var restErr rest.Error
	resp, err := client.PostJSON(t.Context(), "/v1/sessions/1403/enabled", nil,
		`{}`, nil, &restErr)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
	rq.Equal(rest.ErrorCode("ValidationError"), restErr.Code)
}

func TestGetPurchases(t *testing.T) {
	rq := require.New(t)

	client, _, purchases := newTestServer(t)
	purchases.recent = []*entity.Purchase{
		{ID: "a", CreatedAt: time.Now(), ConnectedRealmID: 1403, AuctionID: 1, Amount: 1, TotalPrice: 100},
		{ID: "b", CreatedAt: time.Now(), ConnectedRealmID: 57, AuctionID: 2, Commodity: true, Amount: 5, TotalPrice: 500},
	}

	var got []rest.Purchase
	resp, err := client.Get(t.Context(), "/v1/purchases", nil, &got, nil)
	rq.NoError(err)
	rq.Equal(http.StatusOK, resp.StatusCode)
	rq.Len(got, 2)

	got = nil
	_, err = client.Get(t.Context(), "/v1/purchases?realmId=57", nil, &got, nil)
	rq.NoError(err)
	rq.Len(got, 1)
	rq.True(got[0].Commodity)

	resp, err = client.Get(t.Context(), "/v1/purchases?limit=zero", nil, nil, nil)
	rq.NoError(err)
	rq.Equal(http.StatusBadRequest, resp.StatusCode)
}
