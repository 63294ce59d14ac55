package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/config"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/notify"
	"github.com/mmynk/splitledger/internal/rail"
	"github.com/mmynk/splitledger/internal/service"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/memory"
	"github.com/mmynk/splitledger/internal/storage/postgres"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("Storage initialized", "backend", cfg.Storage)

	notifier := notify.Multi{notify.NewLogger(logger)}
	if cfg.RedisURL != "" {
		client, err := notify.Dial(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer client.Close()
		notifier = append(notifier, notify.NewRedis(client, cfg.RedisChannel))
		logger.Info("Publishing events to Redis", "channel", cfg.RedisChannel)
	}

	var railOpts []rail.MemoryOption
	if cfg.RailOverdraft {
		railOpts = append(railOpts, rail.WithOverdraft())
	}

	engineOpts := []ledger.Option{
		ledger.WithLogger(logger),
		ledger.WithNotifier(notifier),
	}
	if cfg.StrictParticipants {
		engineOpts = append(engineOpts, ledger.WithStrictParticipants())
	}
	paymentRail := rail.NewMemory(railOpts...)
	for member, amount := range cfg.RailFunds {
		paymentRail.Deposit(member, amount)
	}
	if !cfg.RailOverdraft && len(cfg.RailFunds) == 0 {
		logger.Warn("Rail overdraft disabled and RAIL_FUNDS empty, every settlement will be declined")
	}
	engine := ledger.New(store, paymentRail, engineOpts...)

	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET not set, using the development secret")
	}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := middleware.NewMetrics(reg)

	mux := http.NewServeMux()
	path, handler := service.NewLedgerServiceHandler(
		service.NewLedgerService(engine, logger),
		connect.WithInterceptors(
			metrics.Interceptor(),
			middleware.RequireAuth(jwtManager),
			middleware.LoggingInterceptor(logger),
		),
	)
	mux.Handle(path, handler)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(corsMiddleware(mux), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost:%s", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.StorageMemory:
		return memory.New(), nil
	default:
		if dir := filepath.Dir(cfg.DBPath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
