package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"ah_sniper/internal/domain/entity"
)

type fakeWriter struct {
	created []entity.Purchase
	err     error
}

func (f *fakeWriter) Create(_ context.Context, purchase *entity.Purchase) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, *purchase)
	return nil
}

type fakeNotifier struct {
	sent []entity.Purchase
}

func (f *fakeNotifier) SendPurchase(_ context.Context, purchase entity.Purchase) error {
	f.sent = append(f.sent, purchase)
	return nil
}

func TestLedgerRecorderPersistsAndForwards(t *testing.T) {
	rq := require.New(t)

	writer := &fakeWriter{}
	notified := &fakeNotifier{}

	purchases := make(chan entity.Purchase, 2)
	purchases <- entity.Purchase{ConnectedRealmID: 1403, AuctionID: 7, TotalPrice: 100}
	purchases <- entity.Purchase{ConnectedRealmID: 57, AuctionID: 8, Commodity: true, TotalPrice: 500}
	close(purchases)

	recorder := NewLedgerRecorder(writer).WithNotifier(notified)
	rq.NoError(recorder.Run(t.Context(), purchases))

	rq.Len(writer.created, 2)
	rq.Len(notified.sent, 2)
	rq.Equal(int64(7), writer.created[0].AuctionID)
	rq.True(notified.sent[1].Commodity)
}

func TestLedgerRecorderDropsFailedInserts(t *testing.T) {
	rq := require.New(t)

	writer := &fakeWriter{err: errors.New("db down")}
	notified := &fakeNotifier{}

	purchases := make(chan entity.Purchase, 1)
	purchases <- entity.Purchase{ConnectedRealmID: 1403, AuctionID: 7}
	close(purchases)

	recorder := NewLedgerRecorder(writer).WithNotifier(notified)
	rq.NoError(recorder.Run(t.Context(), purchases))

	rq.Empty(writer.created)
	rq.Len(notified.sent, 1)
}

func TestLedgerRecorderStopsOnContext(t *testing.T) {
	rq := require.New(t)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	purchases := make(chan entity.Purchase)
	recorder := NewLedgerRecorder(&fakeWriter{})

	done := make(chan error, 1)
	go func() { done <- recorder.Run(ctx, purchases) }()

	select {
	case err := <-done:
		rq.ErrorIs(err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop")
	}
}
