package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"aerodns/internal/audit"
	"aerodns/internal/engine"
	"aerodns/internal/fleet"
	"aerodns/internal/lists"
	"aerodns/internal/membership"
	"aerodns/internal/platform/config"
	"aerodns/internal/platform/httpserver"
	"aerodns/internal/platform/logger"
	"aerodns/internal/platform/metrics"
	platformredis "aerodns/internal/platform/redis"
	"aerodns/internal/provider"
	"aerodns/internal/region"
	"aerodns/internal/runner"
	"aerodns/internal/state"
	httptransport "aerodns/internal/transport/http"
)

// main wires dependencies and owns the process lifecycle: the periodic tick
// loop and the admin HTTP server. All reconciliation logic lives in internal
// packages.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New()
	m := metrics.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f := fleet.Default()
	if cfg.FleetPath != "" {
		f, err = fleet.Load(cfg.FleetPath)
		if err != nil {
			log.Error("load fleet", "path", cfg.FleetPath, "error", err)
			os.Exit(1)
		}
	}
	log.Info("fleet loaded", "size", f.Size())

	stateStore, cleanup, err := buildStateStore(ctx, cfg, log)
	if err != nil {
		log.Error("state store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	locationClient := provider.NewHTTPLocationClient(cfg.LocationURL, cfg.ProviderTimeout,
		provider.WithLocationLogger(log),
		provider.WithLocationMetrics(m),
	)
	geocodeClient := provider.NewHTTPGeocodeClient(cfg.GeocodeURL, cfg.ProviderTimeout,
		provider.WithGeocodeLogger(log),
		provider.WithGeocodeMetrics(m),
	)
	listClient := lists.NewHTTPClient(cfg.ListStoreURL, cfg.ListStoreAPIKey, cfg.ListStoreTimeout,
		lists.WithLogger(log),
	)

	listIDs := make(map[region.Code]string, len(cfg.RegionLists))
	for code, id := range cfg.RegionLists {
		listIDs[region.Code(code)] = id
	}
	syncer, err := membership.New(listClient, listIDs,
		membership.WithLogger(log),
		membership.WithMetrics(m),
	)
	if err != nil {
		log.Error("synchronizer init failed", "error", err)
		os.Exit(1)
	}

	eng, err := engine.New(stateStore, engine.WithLogger(log))
	if err != nil {
		log.Error("engine init failed", "error", err)
		os.Exit(1)
	}

	publisher, closePublisher, err := buildPublisher(ctx, cfg, log)
	if err != nil {
		log.Error("audit publisher init failed", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	run, err := runner.New(f, locationClient, geocodeClient, eng, syncer,
		runner.WithLogger(log),
		runner.WithMetrics(m),
		runner.WithPublisher(publisher),
		runner.WithParallelism(cfg.Parallelism),
	)
	if err != nil {
		log.Error("runner init failed", "error", err)
		os.Exit(1)
	}

	handler := httptransport.New(f, stateStore, run, publisher, log)
	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(handler))

	go tickLoop(ctx, log, run, cfg.TickInterval)

	go func() {
		log.Info("starting aerodns", "addr", cfg.Addr, "tick_interval", cfg.TickInterval)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// tickLoop drives the reconciliation cadence. Ticks also run on demand via
// POST /tick; the loop just guarantees a steady background cadence.
func tickLoop(ctx context.Context, log *slog.Logger, run *runner.Runner, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	run.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run.Tick(ctx)
		}
	}
}

// buildStateStore picks the state backend from configuration: Redis when a
// Redis URL is set, Postgres when a Postgres URL is set, in-memory otherwise.
func buildStateStore(ctx context.Context, cfg config.Config, log *slog.Logger) (state.Store, func(), error) {
	if cfg.Redis.URL != "" {
		client, err := platformredis.New(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		log.Info("state store: redis")
		return state.NewRedisStore(client.Client), func() { client.Close() }, nil
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		store := state.NewPostgresStore(pool)
		if err := store.Migrate(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		log.Info("state store: postgres")
		return store, pool.Close, nil
	}

	log.Info("state store: in-memory")
	return state.NewInMemoryStore(), func() {}, nil
}

// buildPublisher emits transition events to Kafka when brokers are configured,
// otherwise to the structured log.
func buildPublisher(ctx context.Context, cfg config.Config, log *slog.Logger) (audit.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) > 0 {
		pub, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return nil, nil, err
		}
		log.Info("transition events: kafka", "topic", cfg.KafkaTopic)
		return pub, func() { pub.Close() }, nil
	}
	log.Info("transition events: log")
	return audit.NewLogPublisher(log), func() {}, nil
}
