package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"mercado/internal/config"
	"mercado/internal/domain/service/catalog"
	"mercado/internal/domain/service/ledger"
	"mercado/internal/domain/service/market"
	"mercado/internal/infrastructure/feed"
	"mercado/internal/infrastructure/notifier"
	"mercado/internal/infrastructure/persistence"
	"mercado/internal/server"
	"mercado/internal/transport/bot"
	"mercado/internal/worker"
	"mercado/pkg/application/connectors"
	"mercado/pkg/application/modules"
	"mercado/pkg/logx"
	"mercado/pkg/middlewarex"
)

const announcementQueueSize = 100

const httpReadHeaderTimeout = 5 * time.Second

// Run wires the whole application together and blocks until the context ends
// or a fatal startup error occurs. Every component is constructed exactly
// once, here, and passed by reference to its dependents.
func Run(ctx context.Context, log *slog.Logger) error {
	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	// 2. Database
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
	log.Info("database connection OK")

	// 3. Catalog (a duplicate uid in the feed aborts startup)
	records, err := feed.LoadFile(cfg.Catalog.FeedPath)
	if err != nil {
		return fmt.Errorf("load item feed: %w", err)
	}

	cat, err := catalog.New(records)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	log.Info("catalog loaded", "items", cat.Len())

	// 4. Ledger + market service
	saleRepo := persistence.NewSaleRepository(db)
	led := ledger.New(saleRepo)
	svc := market.New(cat, led)

	g, ctx := errgroup.WithContext(ctx)

	// 5. Announcement publisher (optional)
	var announcements chan notifier.Announcement

	if cfg.Bot.AnnouncementChatID != 0 {
		announcements = make(chan notifier.Announcement, announcementQueueSize)

		announcer, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.AnnouncementChatID)
		if err != nil {
			return fmt.Errorf("announcer bot: %w", err)
		}

		g.Go(func() error {
			if err := announcer.Run(ctx, announcements); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("announcer.Run: %w", err)
			}

			return nil
		})
	} else {
		log.Info("announcement channel not configured, publishing disabled")
	}

	// 6. Command dispatcher
	marketBot, err := bot.New(cfg.Bot, svc, announcements)
	if err != nil {
		return fmt.Errorf("create bot: %w", err)
	}

	g.Go(func() error {
		if err := marketBot.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("bot.Run: %w", err)
		}

		return nil
	})

	// 7. Stale sale cleanup job. A persistence failure inside the sweep is
	// fatal to the whole process, per the job's no-retry contract.
	cleaner := worker.NewStaleSaleCleaner(led)

	g.Go(func() error {
		if err := cleaner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("cleaner.Run: %w", err)
		}

		return nil
	})

	// 8. HTTP read API + probe + metrics
	masker := logx.NewNopSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.UserID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, cfg.Server.LogFieldMaxLen),
		middlewarex.ResponseLogging(masker, cfg.Server.LogFieldMaxLen),
	)
	server.NewServer(svc).RegisterRoutes(router)

	modules.HTTPServer{ShutdownTimeout: cfg.Server.ShutdownTimeout}.Run(ctx, g, &http.Server{
		Addr:              cfg.Server.HTTPListenAddress,
		Handler:           router,
		ReadHeaderTimeout: httpReadHeaderTimeout,
	})

	modules.ProbeServer{
		Name:          "mercado",
		Version:       Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{ListenAddress: cfg.Server.MetricsListenAddress}.Run(ctx, g)

	log.Info("application started")

	return g.Wait()
}
