package worker

import (
	"context"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/pkg/logx"
)

type purchaseWriter interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
}

type purchaseNotifier interface {
	SendPurchase(ctx context.Context, purchase entity.Purchase) error
}

// LedgerRecorder persists every issued purchase from the sessions' sink
// channel. A failed insert is logged and dropped, the purchase itself
// already happened.
type LedgerRecorder struct {
	repo     purchaseWriter
	notifier purchaseNotifier
}

func NewLedgerRecorder(repo purchaseWriter) *LedgerRecorder {
	return &LedgerRecorder{repo: repo}
}

func (l *LedgerRecorder) WithNotifier(notifier purchaseNotifier) *LedgerRecorder {
	l.notifier = notifier

	return l
}

func (l *LedgerRecorder) Run(ctx context.Context, purchases <-chan entity.Purchase) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case purchase, ok := <-purchases:
			if !ok {
				return nil
			}

			if err := l.repo.Create(ctx, &purchase); err != nil {
				logger(ctx).Error("failed to record purchase",
					logx.FieldConnectedRealm, purchase.ConnectedRealmID,
					logx.FieldAuctionID, purchase.AuctionID,
					logx.Error(err),
				)
			}

			if l.notifier != nil {
				if err := l.notifier.SendPurchase(ctx, purchase); err != nil {
					logger(ctx).Error("failed to announce purchase",
						logx.FieldConnectedRealm, purchase.ConnectedRealmID,
						logx.Error(err),
					)
				}
			}
		}
	}
}
