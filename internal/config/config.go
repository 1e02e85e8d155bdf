package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the service settings read from the environment.
type Config struct {
	Port            string
	DataSource      string
	WorkbookPath    string
	DatabaseURL     string
	PlanStore       string
	RedisURL        string
	OutputDir       string
	PlanTTL         time.Duration
	FleetPolicyPath string
	KafkaBrokers    []string
	KafkaTopic      string
	PlanTimeout     time.Duration
	RateLimitRPS    float64
	RateLimitBurst  int
}

const (
	SourceWorkbook = "xlsx"
	SourcePostgres = "postgres"

	StoreFile     = "file"
	StoreRedis    = "redis"
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

const (
	DefaultPlanTTL     = 24 * time.Hour
	DefaultPlanTimeout = 30 * time.Second
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the service configuration. Call godotenv.Load first to pick up a .env file.
func Load() (Config, error) {
	cfg := Config{
		Port:            Get("PORT", "8080"),
		DataSource:      strings.ToLower(Get("DATA_SOURCE", SourceWorkbook)),
		WorkbookPath:    Get("WORKBOOK_PATH", "data/SmartRoute Optimizer.xlsx"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		OutputDir:       Get("OUTPUT_DIR", "data/output"),
		FleetPolicyPath: os.Getenv("FLEET_POLICY_PATH"),
		KafkaTopic:      Get("KAFKA_TOPIC", "plans.completed"),
	}

	store := os.Getenv("PLAN_STORE")
	if store == "" {
		store = StoreFile
		if cfg.RedisURL != "" {
			store = StoreRedis
		}
	}
	cfg.PlanStore = strings.ToLower(store)

	for _, b := range strings.Split(os.Getenv("KAFKA_ADDR"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
		}
	}

	var err error
	if cfg.PlanTTL, err = GetDuration("PLAN_TTL", DefaultPlanTTL); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if cfg.PlanTimeout, err = GetDuration("PLAN_TIMEOUT", DefaultPlanTimeout); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg.RateLimitRPS, err = strconv.ParseFloat(Get("RATE_LIMIT_RPS", "2"), 64)
	if err != nil || cfg.RateLimitRPS <= 0 {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_RPS must be a positive number")
	}
	cfg.RateLimitBurst, err = strconv.Atoi(Get("RATE_LIMIT_BURST", "4"))
	if err != nil || cfg.RateLimitBurst < 1 {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT_BURST must be a positive integer")
	}

	switch cfg.DataSource {
	case SourceWorkbook:
		if strings.TrimSpace(cfg.WorkbookPath) == "" {
			return Config{}, fmt.Errorf("load config: WORKBOOK_PATH is required for DATA_SOURCE=%s", SourceWorkbook)
		}
	case SourcePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for DATA_SOURCE=%s", SourcePostgres)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown DATA_SOURCE %q", cfg.DataSource)
	}

	switch cfg.PlanStore {
	case StoreFile, StoreMemory:
	case StoreRedis:
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("load config: REDIS_URL is required for PLAN_STORE=%s", StoreRedis)
		}
	case StorePostgres:
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			return Config{}, fmt.Errorf("load config: DATABASE_URL is required for PLAN_STORE=%s", StorePostgres)
		}
	default:
		return Config{}, fmt.Errorf("load config: unknown PLAN_STORE %q", cfg.PlanStore)
	}

	return cfg, nil
}

// GetDuration parses the environment value for key as a positive duration,
// returning fallback when unset or empty.
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration, got %q", key, v)
	}
	return d, nil
}
