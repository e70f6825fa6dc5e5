package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"stocksim/configs"
	"stocksim/internal/database"
	delivery "stocksim/internal/delivery/http"
	"stocksim/internal/domain"
	"stocksim/internal/infra"
	"stocksim/internal/middleware"
	"stocksim/internal/repository"
	"stocksim/internal/service"
	"stocksim/internal/usecase"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := configs.Load()

	ctx := context.Background()

	// Initialize database
	db, err := infra.NewDatabase(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	tradeRepo := repository.NewTradeRepository(db)

	// Initialize price oracle
	var oracle domain.PriceOracle
	var scheduler *infra.Scheduler
	switch cfg.Oracle.Mode {
	case "http":
		oracle = service.NewMarketPriceService(cfg.Oracle.QuoteURL, cfg.Oracle.LookupTimeout)
		log.Printf("Using HTTP price oracle: %s", cfg.Oracle.QuoteURL)
	default:
		sim := service.NewSimulatedOracle(cfg.Oracle.Seed)
		scheduler = infra.NewScheduler(sim, cfg.Oracle.DriftSpec)
		if err := scheduler.Start(); err != nil {
			log.Fatalf("Failed to start price drift scheduler: %v", err)
		}
		defer scheduler.Stop()
		oracle = sim
		log.Println("Using simulated price oracle")
	}

	// Initialize services
	valuation := service.NewValuationService(ledgerRepo, userRepo, oracle)
	history := service.NewSyntheticHistory(oracle)
	trading := usecase.NewTradingService(tradeRepo, oracle, cfg.Oracle.LookupTimeout)

	// Initialize auth
	auth := middleware.NewAuth(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize HTTP server
	e := echo.New()
	e.HideBanner = true
	delivery.SetupRoutes(e, &delivery.RouterConfig{
		Auth:             auth,
		AuthHandler:      delivery.NewAuthHandler(userRepo, auth, cfg.Trading.StartingCash),
		PortfolioHandler: delivery.NewPortfolioHandler(valuation, ledgerRepo),
		TradeHandler:     delivery.NewTradeHandler(trading),
		QuoteHandler:     delivery.NewQuoteHandler(oracle, history),
		HistoryHandler:   delivery.NewHistoryHandler(ledgerRepo, txRepo),
	})

	// Ops listener: liveness and readiness on a separate port
	// Listen failures are reported back here instead of log.Fatalf in the
	// goroutines, so the deferred pool close and scheduler stop still run.
	serverErrors := make(chan error, 2)

	ops := newOpsServer(cfg.Server.OpsPort, db)
	go func() {
		if err := ops.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("ops server: %w", err)
		}
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("stocksim starting on %s [env: %s]", addr, cfg.Server.Env)
	log.Printf("Starting cash for new accounts: $%.2f", cfg.Trading.StartingCash)

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("api server: %w", err)
		}
	}()

	// Wait for interrupt signal or a server failure, then shut down
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("Received %s, shutting down server...", sig)
	case err := <-serverErrors:
		log.Printf("ERROR: %v, shutting down server...", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARNING: api server forced to shutdown: %v", err)
	}
	if err := ops.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARNING: ops server shutdown: %v", err)
	}

	log.Println("[OK] Server exited gracefully")
}

// newOpsServer builds the chi-based ops listener with liveness and
// database-backed readiness probes.
func newOpsServer(port string, db interface{ Ping(context.Context) error }) *http.Server {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "service": "stocksim", "timestamp": %q}`,
			time.Now().Format(time.RFC3339))
	})

	r.Get("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, `{"status": "unready", "database": "unhealthy"}`)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status": "ready", "database": "healthy"}`)
	})

	return &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}
