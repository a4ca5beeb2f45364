package application

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"ah_sniper/internal/config"
	"ah_sniper/internal/domain/entity"
	"ah_sniper/internal/domain/service/scan"
	"ah_sniper/internal/infrastructure/blizzard"
	"ah_sniper/internal/infrastructure/notifier"
	"ah_sniper/internal/infrastructure/persistence"
	"ah_sniper/internal/infrastructure/realms"
	"ah_sniper/internal/infrastructure/render"
	"ah_sniper/internal/infrastructure/shoppinglist"
	"ah_sniper/internal/server"
	"ah_sniper/internal/transport/bot"
	"ah_sniper/internal/worker"
	"ah_sniper/pkg/application/connectors"
	"ah_sniper/pkg/application/modules"
	"ah_sniper/pkg/logx"
	"ah_sniper/pkg/middlewarex"
)

const (
	appName    = "ah_sniper"
	appVersion = "dev"

	dealsBuffer     = 100
	purchasesBuffer = 100

	logDumpMaxLen = 4096
)

func Run(ctx context.Context) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Shopping configuration
	resolver, err := realms.NewResolver(cfg.Blizzard.Region)
	if err != nil {
		return fmt.Errorf("realm resolver: %w", err)
	}

	shopping, err := shoppinglist.Load(ctx, resolver, cfg.Sniper.ShoppingListPath)
	if err != nil {
		return fmt.Errorf("shopping list: %w", err)
	}

	// 3. Database
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	purchaseRepo := persistence.NewPurchaseRepository(db)

	// 4. Redis / queue client
	rd := &connectors.Redis{
		Address:        cfg.Redis.Address,
		Username:       cfg.Redis.Username,
		Password:       cfg.Redis.Password,
		DatabaseNumber: cfg.Redis.DB,
	}
	_ = rd.Client(ctx)
	defer rd.Close(ctx)

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()

	// 5. Event channels
	dealsCh := make(chan entity.Deal, dealsBuffer)
	purchasesCh := make(chan entity.Purchase, purchasesBuffer)

	// 6. Notifier bot
	alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
	if err != nil {
		return fmt.Errorf("notifier bot: %w", err)
	}

	if err := alertBot.SendText(ctx, "🚀 Auction sniper starting."); err != nil {
		logger(ctx).Error("bot test message failed, check token and chat id", logx.Error(err))
	}

	// 7. Scan pipeline
	blizzardClient := blizzard.NewClient(blizzard.Config{
		APIBaseURL:   cfg.Blizzard.APIBaseURL,
		TokenURL:     cfg.Blizzard.TokenURL,
		Region:       cfg.Blizzard.Region,
		Locale:       cfg.Blizzard.Locale,
		ClientID:     cfg.Blizzard.ClientID,
		ClientSecret: cfg.Blizzard.ClientSecret,
		Timeout:      cfg.Blizzard.Timeout,
	})

	registry := worker.NewRegistry()

	scanHandler := worker.NewScanHandler(
		blizzardClient,
		scan.NewFinder(),
		shopping,
		registry,
		render.NewConsole(ctx),
		cfg.Sniper.Funds,
	).
		WithAutoBuy(cfg.Sniper.AutoBuy).
		WithMatchSink(dealsCh).
		WithPurchaseSink(purchasesCh)

	// 8. Control bot
	controlBot, err := bot.New(cfg, registry, asynqClient)
	if err != nil {
		return fmt.Errorf("control bot: %w", err)
	}

	// 9. Modules
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := alertBot.Run(ctx, dealsCh); err != nil && ctx.Err() == nil {
			return fmt.Errorf("notifier bot: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		recorder := worker.NewLedgerRecorder(purchaseRepo).WithNotifier(alertBot)
		if err := recorder.Run(ctx, purchasesCh); err != nil && ctx.Err() == nil {
			return fmt.Errorf("ledger recorder: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		if err := controlBot.Run(ctx); err != nil && ctx.Err() == nil {
			return fmt.Errorf("control bot: %w", err)
		}
		return nil
	})

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
	}.Run(ctx, g,
		modules.AsynqQueues{cfg.Sniper.Queue: 1},
		modules.AsynqHandler{Pattern: worker.TaskTypeScanRealm, Handle: scanHandler.Handle},
	)

	worker.ScanScheduler{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DB,
		Interval:      cfg.Sniper.ScanInterval,
		Queue:         cfg.Sniper.Queue,
	}.Run(ctx, g, shopping.ConnectedRealmIDs())

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.RequestLogging(logx.NewSensitiveDataMasker(), logDumpMaxLen),
		middlewarex.ResponseLogging(logx.NewSensitiveDataMasker(), logDumpMaxLen),
		middlewarex.Recovery,
	)
	server.NewServer(server.NewSniperServer(registry, purchaseRepo)).RegisterRoutes(router)

	modules.HTTPServer{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{
		Addr:    cfg.Server.Address,
		Handler: router,
	})

	modules.MetricServer{ListenAddress: cfg.Server.MetricsAddress}.Run(ctx, g)

	modules.ProbeServer{
		Name:          appName,
		Version:       appVersion,
		ListenAddress: cfg.Server.ProbeAddress,
	}.Run(ctx, g)

	logger(ctx).Info("application started",
		"region", shopping.Region,
		"realms", len(shopping.PerRealm),
	)

	return g.Wait()
}
