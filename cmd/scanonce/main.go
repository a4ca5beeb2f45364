package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"ah_sniper/internal/config"
	"ah_sniper/internal/domain/service/scan"
	"ah_sniper/internal/infrastructure/blizzard"
	"ah_sniper/internal/infrastructure/realms"
	"ah_sniper/internal/infrastructure/shoppinglist"
	"ah_sniper/pkg/contextx"
	"ah_sniper/pkg/logx"
	"ah_sniper/pkg/lox"
)

// go run cmd/scanonce/main.go [realm-slug...]
//
// Fetches a single auction dump per realm and prints the matched deals
// without buying anything. With no arguments every realm on the
// shopping list is scanned once.

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      slog.LevelDebug,
		TimeFormat: time.TimeOnly,
	}))
	slog.SetDefault(log)

	ctx = contextx.WithLogger(ctx, log)

	if err := run(ctx, log); err != nil {
		log.Error("scan failed", logx.Error(err))
		os.Exit(1)
	}

	log.Info("scan finished")
}

func run(ctx context.Context, log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	resolver, err := realms.NewResolver(cfg.Blizzard.Region)
	if err != nil {
		return fmt.Errorf("realm resolver: %w", err)
	}

	shopping, err := shoppinglist.Load(ctx, resolver, cfg.Sniper.ShoppingListPath)
	if err != nil {
		return fmt.Errorf("shopping list: %w", err)
	}

	realmIDs := shopping.ConnectedRealmIDs()
	if len(os.Args) >= 2 {
		realmIDs, err = lox.MapErr(os.Args[1:], resolver.ConnectedRealmID)
		if err != nil {
			return fmt.Errorf("resolve realms: %w", err)
		}
	}

	client := blizzard.NewClient(blizzard.Config{
		APIBaseURL:   cfg.Blizzard.APIBaseURL,
		TokenURL:     cfg.Blizzard.TokenURL,
		Region:       cfg.Blizzard.Region,
		Locale:       cfg.Blizzard.Locale,
		ClientID:     cfg.Blizzard.ClientID,
		ClientSecret: cfg.Blizzard.ClientSecret,
		Timeout:      cfg.Blizzard.Timeout,
	})

	finder := scan.NewFinder()

	for _, realmID := range realmIDs {
		list, ok := shopping.PerRealm[realmID]
		if !ok {
			log.Warn("no shopping list for realm", logx.FieldConnectedRealm, realmID)
			continue
		}

		dump, err := client.Auctions(ctx, realmID, time.Time{})
		if err != nil {
			return fmt.Errorf("fetch auctions for realm %d: %w", realmID, err)
		}

		log.Info("dump fetched",
			logx.FieldConnectedRealm, realmID,
			"auctions", len(dump.Auctions),
			"last-modified", dump.LastModified,
		)

		deals := finder.FindDeals(ctx, dump, list)
		for i, deal := range deals {
			log.Info("deal",
				logx.FieldConnectedRealm, realmID,
				logx.FieldDealIndex, i,
				logx.FieldAuctionID, deal.AuctionID,
				logx.FieldItemID, deal.ItemID,
				logx.FieldPetID, deal.PetID,
				"item-level", deal.ItemLevel,
				"suffix", deal.ItemSuffix,
				"wanted", deal.WantedAmount,
			)
		}

		log.Info("realm scanned",
			logx.FieldConnectedRealm, realmID,
			"deals", len(deals),
		)
	}

	return nil
}
