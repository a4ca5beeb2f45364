package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/scan"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/pkg/errcodes"
)

type fakeSource struct {
	dump  entity.AuctionDump
	err   error
	calls int
	since []time.Time
}

func (f *fakeSource) Auctions(_ context.Context, _ int64, modifiedSince time.Time) (entity.AuctionDump, error) {
	f.calls++
	f.since = append(f.since, modifiedSince)

	if f.err != nil {
		return entity.AuctionDump{}, f.err
	}

	return f.dump, nil
}

type fakeShopping map[int64]entity.ShoppingList

func (f fakeShopping) List(id int64) (entity.ShoppingList, bool) {
	list, ok := f[id]
	return list, ok
}

func newScanHandler(source *fakeSource, shopping fakeShopping) (*ScanHandler, *Registry) {
	registry := NewRegistry()
	handler := NewScanHandler(source, scan.NewFinder(), shopping, registry, nopRenderer{}, 1000_0000)

	return handler, registry
}

func TestScanHandler_RunsSessionToCompletion(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{dump: entity.AuctionDump{
		ConnectedRealmID: 1403,
		Hash:             "h1",
		LastModified:     time.Date(2025, 8, 26, 10, 0, 0, 0, time.UTC),
		Auctions: []entity.Auction{
			{ID: 1, ItemID: 19019, Buyout: 50_0000},
		},
	}}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 19019, Budget: 100_0000}}}}

	handler, registry := newScanHandler(source, shopping)

	rq.NoError(handler.ScanRealm(context.Background(), 1403))

	runner, ok := registry.Get(1403)
	rq.True(ok)
	rq.Equal(sniper.StatusFinished.String(), runner.View().Status)
	rq.Len(runner.Deals(), 1)

	// The next scan sends the dump's timestamp as If-Modified-Since.
	rq.NoError(handler.ScanRealm(context.Background(), 1403))
	rq.Equal(2, source.calls)
	rq.True(source.since[0].IsZero())
	rq.Equal(source.dump.LastModified, source.since[1])
}

func TestScanHandler_AutoBuysByDefault(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{dump: entity.AuctionDump{
		ConnectedRealmID: 1403,
		Hash:             "h1",
		Auctions: []entity.Auction{
			{ID: 1, ItemID: 19019, Buyout: 50_0000},
		},
	}}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 19019, Budget: 100_0000}}}}

	handler, _ := newScanHandler(source, shopping)

	purchases := make(chan entity.Purchase, 8)
	handler.WithPurchaseSink(purchases)

	rq.NoError(handler.ScanRealm(context.Background(), 1403))
	rq.Len(purchases, 1)
}

func TestScanHandler_AutoBuyDisabledDoesNotPurchase(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{dump: entity.AuctionDump{
		ConnectedRealmID: 1403,
		Hash:             "h1",
		Auctions: []entity.Auction{
			{ID: 1, ItemID: 19019, Buyout: 50_0000},
		},
	}}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 19019, Budget: 100_0000}}}}

	handler, registry := newScanHandler(source, shopping)

	purchases := make(chan entity.Purchase, 8)
	handler.WithAutoBuy(false).WithPurchaseSink(purchases)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- handler.ScanRealm(ctx, 1403) }()

	// The session parks at the purchasable deal instead of buying it.
	rq.Eventually(func() bool {
		runner, ok := registry.Get(1403)
		return ok && runner.View().Status == sniper.StatusReadyForPurchase.String()
	}, time.Second, 5*time.Millisecond)

	rq.Empty(purchases)

	cancel()
	rq.NoError(<-done)
}

func TestScanHandler_SkipsRepeatedHash(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{dump: entity.AuctionDump{ConnectedRealmID: 1403, Hash: "same"}}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 19019, Budget: 1}}}}

	handler, registry := newScanHandler(source, shopping)

	rq.NoError(handler.ScanRealm(context.Background(), 1403))
	first, ok := registry.Get(1403)
	rq.True(ok)

	// Identical dump: no new session is started.
	rq.NoError(handler.ScanRealm(context.Background(), 1403))
	second, _ := registry.Get(1403)
	rq.Same(first, second)
}

func TestScanHandler_UnmodifiedDataIsNotAnError(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{err: domain.NewError(errcodes.UnmodifiedData, "nothing new")}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 1, Budget: 1}}}}

	handler, _ := newScanHandler(source, shopping)

	rq.NoError(handler.ScanRealm(context.Background(), 1403))
}

func TestScanHandler_QuotaErrorPropagatesForRetry(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{err: domain.NewError(errcodes.QuotaExceeded, "quota")}
	shopping := fakeShopping{1403: {Items: []entity.ShoppingItem{{ItemID: 1, Budget: 1}}}}

	handler, _ := newScanHandler(source, shopping)

	rq.Error(handler.ScanRealm(context.Background(), 1403))
}

func TestScanHandler_NoShoppingListIsNoop(t *testing.T) {
	rq := require.New(t)

	source := &fakeSource{}
	handler, _ := newScanHandler(source, fakeShopping{})

	rq.NoError(handler.ScanRealm(context.Background(), 9999))
	rq.Zero(source.calls)
}
