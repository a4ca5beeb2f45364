package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"

	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/worker"
	"ah_sniper/pkg/errcodes"
	"ah_sniper/pkg/httpx/reply"
	"ah_sniper/pkg/httpx/req"
)

const defaultPurchaseLimit = 100

type purchaseRepository interface {
	ListRecent(ctx context.Context, limit int) ([]*entity.Purchase, error)
	ListByRealm(ctx context.Context, connectedRealmID int64, limit int) ([]*entity.Purchase, error)
}

type SniperServer struct {
	registry  *worker.Registry
	purchases purchaseRepository
}

func NewSniperServer(registry *worker.Registry, purchases purchaseRepository) SniperServer {
	return SniperServer{
		registry:  registry,
		purchases: purchases,
	}
}

func (s SniperServer) getV1Sessions(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	views := s.registry.Views()

	out := make([]any, 0, len(views))
	for _, view := range views {
		out = append(out, newRESTSessionView(view))
	}

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}

func (s SniperServer) getV1Session(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	runner, err := s.runner(r)
	if err != nil {
		return err
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSessionView(runner.View()))

	return nil
}

func (s SniperServer) getV1SessionDeals(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	runner, err := s.runner(r)
	if err != nil {
		return err
	}

	deals := runner.Deals()
	out := make([]any, 0, len(deals))
	for _, deal := range deals {
		out = append(out, newRESTDeal(deal))
	}

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}

func (s SniperServer) postV1SessionSkip(w http.ResponseWriter, r *http.Request) error {
	runner, err := s.runner(r)
	if err != nil {
		return err
	}

	runner.Skip(r.Context())
	reply.OK(w)

	return nil
}

func (s SniperServer) postV1SessionBuy(w http.ResponseWriter, r *http.Request) error {
	runner, err := s.runner(r)
	if err != nil {
		return err
	}

	view := runner.View()
	if !view.Enabled {
		return failure.NewInvalidArgumentError(
			"purchasing is disabled for this session",
			failure.WithCode(errcodes.SessionDisabled),
		)
	}
	if view.Current == nil {
		return failure.NewNotFoundError(
			"no deal ready for purchase",
			failure.WithCode(errcodes.DealNotFound),
		)
	}

	runner.Buy(r.Context())
	reply.OK(w)

	return nil
}

type enabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

func (s SniperServer) postV1SessionEnabled(w http.ResponseWriter, r *http.Request) error {
	runner, err := s.runner(r)
	if err != nil {
		return err
	}

	var request enabledRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	runner.SetEnabled(r.Context(), *request.Enabled)
	reply.OK(w)

	return nil
}

func (s SniperServer) getV1Purchases(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit := defaultPurchaseLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return failure.NewInvalidArgumentError(
				"limit must be a positive integer",
				failure.WithCode(errcodes.ValidationError),
			)
		}
		limit = parsed
	}

	var (
		purchases []*entity.Purchase
		err       error
	)

	if raw := r.URL.Query().Get("realmId"); raw != "" {
		realmID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return failure.NewInvalidArgumentError(
				"realmId must be an integer",
				failure.WithCode(errcodes.ValidationError),
			)
		}
		purchases, err = s.purchases.ListByRealm(ctx, realmID, limit)
	} else {
		purchases, err = s.purchases.ListRecent(ctx, limit)
	}

	if err != nil {
		return fmt.Errorf("list purchases: %w", err)
	}

	out := make([]any, 0, len(purchases))
	for _, purchase := range purchases {
		out = append(out, newRESTPurchase(*purchase))
	}

	reply.JSON(ctx, w, http.StatusOK, out)

	return nil
}

func (s SniperServer) runner(r *http.Request) (*worker.Runner, error) {
	realmID, err := strconv.ParseInt(r.PathValue("realmID"), 10, 64)
	if err != nil {
		return nil, failure.NewInvalidArgumentError(
			"realmID must be an integer",
			failure.WithCode(errcodes.ValidationError),
		)
	}

	runner, ok := s.registry.Get(realmID)
	if !ok {
		return nil, failure.NewNotFoundError(
			fmt.Sprintf("no session for connected realm %d", realmID),
			failure.WithCode(errcodes.SessionNotFound),
		)
	}

	return runner, nil
}
