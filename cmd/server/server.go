package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/axellelanca/catalog/cmd"
	"github.com/axellelanca/catalog/internal/api"
	"github.com/axellelanca/catalog/internal/auth"
	"github.com/axellelanca/catalog/internal/database"
	"github.com/axellelanca/catalog/internal/geo"
	"github.com/axellelanca/catalog/internal/logger"
	"github.com/axellelanca/catalog/internal/mail"
	"github.com/axellelanca/catalog/internal/monitor"
	"github.com/axellelanca/catalog/internal/repository"
	"github.com/axellelanca/catalog/internal/services"
	"github.com/axellelanca/catalog/internal/tasks"
	"github.com/axellelanca/catalog/internal/workers"
	"github.com/spf13/cobra"
)

// RunServerCmd représente la commande 'run-server' de Cobra.
// C'est le point d'entrée pour lancer le serveur de l'application.
var RunServerCmd = &cobra.Command{
	Use:   "run-server",
	Short: "Lance l'API du catalogue et les processus de fond.",
	Long: `Cette commande initialise la base de données, démarre la file de tâches
asynchrones (suivi des visites, emails), le moniteur de la base GeoIP,
puis lance le serveur HTTP.`,
	RunE: func(command *cobra.Command, args []string) error {
		return run(command.Context())
	},
}

func run(ctx context.Context) error {
	cfg := cmd.Cfg
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	// Initialiser la base de données et migrer les modèles
	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Error("failed to close database", "error", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		return err
	}

	// Initialiser les repositories
	users := repository.NewUserRepository(db)
	brands := repository.NewBrandRepository(db)
	products := repository.NewProductRepository(db)
	channels := repository.NewChannelRepository(db)
	prices := repository.NewPriceRepository(db)
	visits := repository.NewVisitRepository(db)
	log.Info("repositories initialised", "driver", cfg.Database.Driver)

	sender, err := mail.NewSender(cfg, log)
	if err != nil {
		return err
	}

	// File de tâches: suivi des visites et emails de mise à jour
	queue := workers.NewQueue(workers.Options{
		BufferSize: cfg.Tasks.BufferSize,
		MaxRetries: cfg.Tasks.MaxRetries,
		RetryDelay: cfg.RetryDelay(),
	}, log)

	openGeoDB := geo.MaxMindOpener(cfg.GeoIP.DBPath)
	visitService := services.NewVisitService(products, visits, geo.NewEnricher(openGeoDB, log), log)
	tasks.Register(queue, visitService, sender)
	queue.Start(cfg.Tasks.WorkerCount)
	log.Info("task queue started", "buffer_size", cfg.Tasks.BufferSize, "workers", cfg.Tasks.WorkerCount)

	hasher := auth.NewPasswordHasher()
	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.AccessTokenTTL(), cfg.RefreshTokenTTL())
	notifier := services.NewProductNotifier(users, queue, log)

	deps := api.Dependencies{
		Auth:     services.NewAuthService(users, hasher, tokens),
		Products: services.NewProductService(products, brands, queue, notifier, log),
		Brands:   services.NewBrandService(brands, products, log),
		Channels: services.NewChannelService(channels, log),
		Prices:   services.NewPriceService(prices, products, channels),
		Accounts: services.NewAccountService(users, hasher, log),
		Visits:   visitService,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Moniteur de la base GeoIP
	monitorInterval := time.Duration(cfg.Monitor.IntervalMinutes) * time.Minute
	geoMonitor := monitor.NewGeoDBMonitor(openGeoDB, cfg.GeoIP.DBPath, monitorInterval, log)
	go geoMonitor.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           api.NewRouter(deps, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	// Arrêt propre: requêtes en cours, puis tâches en attente
	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", "error", err)
	}
	if err := queue.Shutdown(shutdownCtx); err != nil {
		log.Warn("task queue did not drain before the deadline", "error", err)
	}
	log.Info("server stopped")
	return nil
}

func init() {
	cmd.RootCmd.AddCommand(RunServerCmd)
}
