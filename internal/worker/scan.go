package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"ah_sniper/internal/domain"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/scan"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/internal/infrastructure/market"
	"ah_sniper/pkg/errcodes"
	"ah_sniper/pkg/logx"
)

const TaskTypeScanRealm = "realm:scan"

type ScanPayload struct {
	ConnectedRealmID int64 `json:"connected_realm_id"`
}

func NewScanTask(connectedRealmID int64) (*asynq.Task, error) {
	payload, err := jsoniter.Marshal(ScanPayload{ConnectedRealmID: connectedRealmID})
	if err != nil {
		return nil, fmt.Errorf("marshal scan payload: %w", err)
	}

	return asynq.NewTask(TaskTypeScanRealm, payload), nil
}

// DumpSource downloads fresh auction data for a connected realm.
type DumpSource interface {
	Auctions(ctx context.Context, connectedRealmID int64, modifiedSince time.Time) (entity.AuctionDump, error)
}

// ShoppingProvider serves the resolved per-realm shopping lists.
type ShoppingProvider interface {
	List(connectedRealmID int64) (entity.ShoppingList, bool)
}

// ScanHandler is the asynq consumer for realm scans: download the dump, find
// deals, spin up a session against an in-process marketplace and run it to
// completion.
type ScanHandler struct {
	source    DumpSource
	finder    *scan.Finder
	shopping  ShoppingProvider
	registry  *Registry
	renderer  sniper.Renderer
	funds     int64
	autoBuy   bool
	matched   chan<- entity.Deal
	purchases chan<- entity.Purchase

	mu           sync.Mutex
	lastModified map[int64]time.Time
}

func NewScanHandler(
	source DumpSource,
	finder *scan.Finder,
	shopping ShoppingProvider,
	registry *Registry,
	renderer sniper.Renderer,
	funds int64,
) *ScanHandler {
	return &ScanHandler{
		source:       source,
		finder:       finder,
		shopping:     shopping,
		registry:     registry,
		renderer:     renderer,
		funds:        funds,
		autoBuy:      true,
		lastModified: make(map[int64]time.Time),
	}
}

// WithAutoBuy gates automatic purchasing for the sessions this handler
// spawns. Disabled sessions park at the first purchasable deal and wait for
// an explicit buy or skip.
func (h *ScanHandler) WithAutoBuy(enabled bool) *ScanHandler {
	h.autoBuy = enabled
	return h
}

func (h *ScanHandler) WithMatchSink(matched chan<- entity.Deal) *ScanHandler {
	h.matched = matched
	return h
}

func (h *ScanHandler) WithPurchaseSink(purchases chan<- entity.Purchase) *ScanHandler {
	h.purchases = purchases
	return h
}

func (h *ScanHandler) Handle(ctx context.Context, task *asynq.Task) error {
	var payload ScanPayload
	if err := jsoniter.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal scan payload: %w", err)
	}

	return h.ScanRealm(ctx, payload.ConnectedRealmID)
}

func (h *ScanHandler) ScanRealm(ctx context.Context, connectedRealmID int64) error {
	list, ok := h.shopping.List(connectedRealmID)
	if !ok {
		logger(ctx).Warn("scan requested for realm without shopping list",
			logx.FieldConnectedRealm, connectedRealmID,
		)
		return nil
	}

	dump, err := h.source.Auctions(ctx, connectedRealmID, h.modifiedSince(connectedRealmID))
	if err != nil {
		var appErr *domain.AppError
		if errors.As(err, &appErr) {
			switch appErr.Code {
			case errcodes.UnmodifiedData:
				logger(ctx).Debug("no new auction data",
					logx.FieldConnectedRealm, connectedRealmID,
				)
				return nil
			case errcodes.QuotaExceeded:
				// Let asynq retry after its backoff, the quota window will
				// have passed.
				return fmt.Errorf("scan realm %d: %w", connectedRealmID, err)
			}
		}

		return fmt.Errorf("download dump for realm %d: %w", connectedRealmID, err)
	}

	h.setModifiedSince(connectedRealmID, dump.LastModified)

	if h.finder.SeenDump(connectedRealmID, dump.Hash) {
		logger(ctx).Debug("dump already processed",
			logx.FieldConnectedRealm, connectedRealmID,
		)
		return nil
	}

	raw := h.finder.FindDeals(ctx, dump, list)

	host := market.NewHost(dump, h.funds)
	session := sniper.NewSession(connectedRealmID, host, host, host, host, h.renderer)
	if h.matched != nil {
		session.WithMatchSink(h.matched)
	}
	if h.purchases != nil {
		session.WithPurchaseSink(h.purchases)
	}

	runner := NewRunner(session, host).WithAutoBuy(h.autoBuy)
	h.registry.Put(connectedRealmID, runner)

	if err := runner.Run(ctx, raw); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run session for realm %d: %w", connectedRealmID, err)
	}

	return nil
}

func (h *ScanHandler) modifiedSince(connectedRealmID int64) time.Time {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.lastModified[connectedRealmID]
}

func (h *ScanHandler) setModifiedSince(connectedRealmID int64, t time.Time) {
	if t.IsZero() {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastModified[connectedRealmID] = t
}
