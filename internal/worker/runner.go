package worker

import (
	"context"
	"sort"
	"sync"
	"time"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/sniper"
	"ah_sniper/internal/infrastructure/market"
	"ah_sniper/pkg/logx"
)

const defaultIdleTimeout = 30 * time.Second

// Runner drives one session against its marketplace host. Notifications are
// delivered strictly serially; the mutex only exists so the REST surface and
// control bot can read and poke the session between deliveries.
type Runner struct {
	mu      sync.Mutex
	session *sniper.Session
	host    *market.Host

	idleTimeout time.Duration
	autoBuy     bool
}

func NewRunner(session *sniper.Session, host *market.Host) *Runner {
	return &Runner{
		session:     session,
		host:        host,
		idleTimeout: defaultIdleTimeout,
		autoBuy:     true,
	}
}

// WithAutoBuy toggles automatic execution of the primary action whenever a
// deal becomes purchasable. Off means a human drives via the control bot.
func (r *Runner) WithAutoBuy(enabled bool) *Runner {
	r.autoBuy = enabled
	return r
}

func (r *Runner) WithIdleTimeout(timeout time.Duration) *Runner {
	r.idleTimeout = timeout
	return r
}

// Run loads the deal list and drains host notifications until the session
// finishes, the stream stalls, or the context closes.
func (r *Runner) Run(ctx context.Context, raw []entity.RawDeal) error {
	defer r.host.Close()

	r.mu.Lock()
	r.session.Load(ctx, raw)
	r.session.SetEnabled(ctx, true)
	r.step(ctx)
	done := r.session.Status() == sniper.StatusFinished
	r.mu.Unlock()

	if done {
		return nil
	}

	idle := time.NewTimer(r.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case n, ok := <-r.host.Notifications():
			if !ok {
				return nil
			}

			r.mu.Lock()
			if err := r.session.Handle(ctx, n); err != nil {
				logger(ctx).Error("notification rejected",
					logx.FieldConnectedRealm, r.session.ConnectedRealmID(),
					logx.Error(err),
				)
			}
			r.step(ctx)
			done := r.session.Status() == sniper.StatusFinished
			r.mu.Unlock()

			if done {
				return nil
			}

			if !idle.Stop() {
				<-idle.C
			}
			idle.Reset(r.idleTimeout)

		case <-idle.C:
			logger(ctx).Warn("session stalled, giving up",
				logx.FieldConnectedRealm, r.session.ConnectedRealmID(),
				logx.FieldStatus, r.session.Status().String(),
			)
			return nil
		}
	}
}

// step fires the primary action when a deal became purchasable and auto-buy
// is on. Caller holds the lock.
func (r *Runner) step(ctx context.Context) {
	if !r.autoBuy {
		return
	}

	view := r.session.View()
	if view.Status != sniper.StatusReadyForPurchase.String() || view.Current == nil || !view.Enabled {
		return
	}

	if view.Current.IsCommodity {
		r.session.InitiateCommoditiesPurchase(ctx)
	} else {
		r.session.BuyoutItem(ctx)
	}
}

func (r *Runner) View() sniper.View {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.View()
}

func (r *Runner) Deals() []entity.Deal {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.Deals()
}

func (r *Runner) Skip(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.Skip(ctx)
}

func (r *Runner) Buy(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	view := r.session.View()
	if view.Current == nil {
		return
	}

	if view.Current.IsCommodity {
		r.session.InitiateCommoditiesPurchase(ctx)
	} else {
		r.session.BuyoutItem(ctx)
	}
}

func (r *Runner) SetEnabled(ctx context.Context, enabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session.SetEnabled(ctx, enabled)
}

// Registry tracks the latest runner per connected realm for the read
// surfaces. Finished runners stay visible until the next scan replaces them.
type Registry struct {
	mu      sync.RWMutex
	runners map[int64]*Runner
}

func NewRegistry() *Registry {
	return &Registry{runners: make(map[int64]*Runner)}
}

func (reg *Registry) Put(connectedRealmID int64, runner *Runner) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.runners[connectedRealmID] = runner
}

func (reg *Registry) Get(connectedRealmID int64) (*Runner, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	runner, ok := reg.runners[connectedRealmID]

	return runner, ok
}

// Views snapshots every tracked session, ordered by realm.
func (reg *Registry) Views() []sniper.View {
	reg.mu.RLock()
	runners := make([]*Runner, 0, len(reg.runners))
	for _, runner := range reg.runners {
		runners = append(runners, runner)
	}
	reg.mu.RUnlock()

	views := make([]sniper.View, 0, len(runners))
	for _, runner := range runners {
		views = append(views, runner.View())
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].ConnectedRealmID < views[j].ConnectedRealmID
	})

	return views
}
