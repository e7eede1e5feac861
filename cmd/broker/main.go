package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"serving-broker/config"
	httpHandler "serving-broker/internal/adapter/http/handler"
	"serving-broker/internal/adapter/provider"
	memStorage "serving-broker/internal/adapter/storage/memory"
	pgStorage "serving-broker/internal/adapter/storage/postgres"
	redisStorage "serving-broker/internal/adapter/storage/redis"
	"serving-broker/internal/core/ports"
	"serving-broker/internal/service"
	"serving-broker/pkg/clock"
	"serving-broker/pkg/logger"

	"github.com/rs/zerolog"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx := context.Background()
	clk := clock.Real()

	signer := mustSigner(cfg.Wallet, log)
	log.Info().
		Str("user", signer.Address().Hex()).
		Str("ledger", cfg.Ledger.Driver).
		Str("directory", cfg.Directory.Source).
		Int("port", cfg.Server.Port).
		Msg("Starting serving broker")

	var (
		ledger     ports.LedgerStore
		auditRepo  ports.AuditRepository
		disputeRep ports.DisputeRepository
		checkers   []ports.HealthChecker
	)

	// Ledger store
	switch cfg.Ledger.Driver {
	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate schema")
		}
		store := pgStorage.NewLedgerStore(pool, clk, cfg.Ledger.LockPeriod)
		if cfg.Ledger.FundingBalance > 0 {
			if err := store.SeedWallet(ctx, signer.Address(), cfg.Ledger.FundingBalance); err != nil {
				log.Fatal().Err(err).Msg("Failed to seed funding wallet")
			}
		}
		ledger = store
		auditRepo = pgStorage.NewAuditRepository(pool)
		disputeRep = pgStorage.NewDisputeRepository(pool)
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL ledger ready")
	default:
		store := memStorage.NewLedgerStore(clk, cfg.Ledger.LockPeriod)
		store.FundWallet(signer.Address(), cfg.Ledger.FundingBalance)
		ledger = store
		checkers = append(checkers, store)
		log.Warn().Msg("Using in-memory ledger; balances are lost on restart")
	}

	// Nonce, settlement and rate limit stores
	var (
		nonces      ports.NonceStore
		settlements ports.SettlementStore
		rateLimits  ports.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		nonces = redisStorage.NewNonceStore(rdb)
		settlements = redisStorage.NewSettlementStore(rdb)
		rateLimits = redisStorage.NewRateLimitStore(rdb)
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")
	} else {
		nonces = memStorage.NewNonceStore(clk)
		settlements = memStorage.NewSettlementStore(clk)
		log.Info().Msg("Redis disabled; using in-process stores without rate limiting")
	}

	// Provider directory source
	httpClient := &http.Client{Timeout: cfg.Directory.Timeout}
	var source ports.ServiceSource
	switch cfg.Directory.Source {
	case "http":
		source = provider.NewHTTPSource(cfg.Directory.URL, httpClient, logger.Component(log, "indexer"))
	default:
		static, err := provider.NewStaticSource(cfg.Directory.Providers)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid static provider list")
		}
		source = static
	}

	var auditSvc ports.AuditService
	if auditRepo != nil {
		auditSvc = service.NewAuditService(auditRepo, logger.Component(log, "audit"))
	}

	var disputes ports.DisputeNotifier
	var notifier *service.DisputeNotifier
	if cfg.Dispute.WebhookURL != "" {
		notifier = service.NewDisputeNotifier(
			service.DisputeNotifierConfig{WebhookURL: cfg.Dispute.WebhookURL, Secret: cfg.Dispute.Secret},
			disputeRep,
			service.NewHMACSignatureService(),
			&http.Client{Timeout: 10 * time.Second},
			clk,
			logger.Component(log, "dispute"),
		)
		disputes = notifier
	}

	broker, err := service.NewBroker(service.Deps{
		Signer:      signer,
		Ledger:      ledger,
		Source:      source,
		Nonces:      nonces,
		Settlements: settlements,
		Proofs:      provider.NewProofFetcher(httpClient),
		Audit:       auditSvc,
		Disputes:    disputes,
		Clock:       clk,
	}, service.OptionsFromConfig(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize broker")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Accounts:       broker.Accounts,
		Auth:           broker.Auth,
		Settler:        broker.Settler,
		Directory:      broker.Directory,
		RateLimitStore: rateLimits,
		HealthCheckers: checkers,
		Logger:         logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if notifier != nil {
		notifier.Close()
	}

	log.Info().Msg("Server exited")
}

// mustSigner loads the wallet key, or generates a throwaway one so a local
// broker can start against the in-memory ledger.
func mustSigner(cfg config.WalletConfig, log zerolog.Logger) *service.WalletSigner {
	if cfg.PrivateKey != "" {
		signer, err := service.NewWalletSigner(cfg.PrivateKey)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid wallet key")
		}
		return signer
	}
	signer, err := service.GenerateWalletSigner()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate wallet key")
	}
	log.Warn().Str("user", signer.Address().Hex()).Msg("No wallet key configured; generated an ephemeral key")
	return signer
}
