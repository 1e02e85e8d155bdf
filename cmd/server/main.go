package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"smartroute-service/internal/adapters/events"
	"smartroute-service/internal/adapters/mapview"
	"smartroute-service/internal/adapters/output"
	"smartroute-service/internal/adapters/planstore"
	"smartroute-service/internal/adapters/repositories"
	"smartroute-service/internal/api"
	"smartroute-service/internal/api/handlers"
	"smartroute-service/internal/config"
	"smartroute-service/internal/platform/db"
	"smartroute-service/internal/ports"
	"smartroute-service/internal/services"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
)

// main is the application composition root.
// It wires concrete adapters (workbook or Postgres input, file/Redis/Postgres
// plan store, Kafka events) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	policy, err := config.LoadFleetPolicy(cfg.FleetPolicyPath)
	if err != nil {
		log.Fatal(err)
	}

	checks := map[string]handlers.HealthCheck{}

	var conn *sql.DB
	if cfg.DataSource == config.SourcePostgres || cfg.PlanStore == config.StorePostgres {
		conn, err = db.Open(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitSchema(context.Background(), conn); err != nil {
			log.Fatal(err)
		}
		checks["postgres"] = conn.PingContext
	}

	var source ports.DatasetSource
	switch cfg.DataSource {
	case config.SourcePostgres:
		source = repositories.NewPostgresDatasetRepository(conn)
	default:
		source = repositories.NewWorkbookSource(cfg.WorkbookPath)
	}

	var store ports.PlanStore
	switch cfg.PlanStore {
	case config.StoreRedis:
		client, err := planstore.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()
		checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		store = planstore.NewRedisPlanStore(client, cfg.PlanTTL)
	case config.StorePostgres:
		store = planstore.NewSQLPlanStore(conn)
	case config.StoreMemory:
		store = planstore.NewMemoryPlanStore()
	default:
		fileStore, err := planstore.NewFilePlanStore(cfg.OutputDir)
		if err != nil {
			log.Fatal(err)
		}
		store = fileStore
	}

	plans := &handlers.PlanHandler{
		Source:   source,
		Store:    store,
		Renderer: &mapview.LeafletRenderer{Policy: policy, Order: services.VisitOrder},
		Writers: map[string]ports.TripWriter{
			"xlsx": output.XLSXTripWriter{},
			"csv":  output.CSVTripWriter{},
		},
		DefaultFormat: "xlsx",
		Priority:      policy.Priority,
		Timeout:       cfg.PlanTimeout,
	}

	// Plan events are optional; without brokers plans are only stored.
	if len(cfg.KafkaBrokers) > 0 {
		pub, err := events.NewKafkaPlanPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Fatal(err)
		}
		defer pub.Close()
		plans.Publisher = pub
	}

	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	shipments := &handlers.ShipmentHandler{Source: source, Priority: policy.Priority}
	router := api.NewRouter(plans, shipments, &handlers.Health{Checks: checks}, limiter)

	log.Printf(
		"Server listening addr=:%s source=%s store=%s kafka=%t",
		cfg.Port, cfg.DataSource, cfg.PlanStore, plans.Publisher != nil,
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.PlanTimeout + 10*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Println("Server stopped")
}
