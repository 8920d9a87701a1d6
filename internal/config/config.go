package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Orígenes de datos soportados para los datasets del portal.
const (
	SourceFixtures = "fixtures"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

type Config struct {
	HTTPPort   string
	LogLevel   string
	DataSource string

	SQLitePath  string
	DatabaseURL string

	MongoURI string
	MongoDB  string

	DocumentsPath string

	ClickHouseAddr string
	ClickHouseDB   string
	SnapshotPeriod time.Duration

	RedisAddr string
	CacheTTL  time.Duration

	UseKafka     bool
	KafkaBrokers []string
	KafkaTopic   string

	OutboxPeriod time.Duration
	OutboxLimit  int

	DefaultPageSize int
	MaxPageSize     int
}

// LoadConfig lee el entorno (y un .env opcional) y valida los valores.
func LoadConfig() (*Config, error) {
	// Un .env ausente no es un error: en producción todo viene del entorno.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DataSource:      strings.ToLower(getEnv("DATA_SOURCE", SourceFixtures)),
		SQLitePath:      getEnv("SQLITE_PATH", "./consentlab.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MongoURI:        getEnv("MONGO_URI", ""),
		MongoDB:         getEnv("MONGO_DB", "consentlab"),
		DocumentsPath:   getEnv("DOCUMENTS_PATH", ""),
		ClickHouseAddr:  getEnv("CLICKHOUSE_ADDR", ""),
		ClickHouseDB:    getEnv("CLICKHOUSE_DB", "default"),
		SnapshotPeriod:  getEnvAsDuration("SNAPSHOT_PERIOD", 15*time.Minute),
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		UseKafka:        getEnvAsBool("USE_KAFKA", false),
		KafkaBrokers:    splitList(getEnv("KAFKA_BROKERS", "localhost:9092")),
		KafkaTopic:      getEnv("KAFKA_TOPIC", "portal-datasets"),
		OutboxPeriod:    getEnvAsDuration("OUTBOX_PERIOD", time.Second),
		OutboxLimit:     getEnvAsInt("OUTBOX_LIMIT", 10),
		DefaultPageSize: getEnvAsInt("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:     getEnvAsInt("MAX_PAGE_SIZE", 100),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate comprueba las combinaciones que harían fallar el arranque más tarde.
func (c *Config) Validate() error {
	switch c.DataSource {
	case SourceFixtures, SourceSQLite:
	case SourcePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required when DATA_SOURCE=postgres")
		}
	default:
		return fmt.Errorf("config: unknown DATA_SOURCE %q", c.DataSource)
	}
	if c.DefaultPageSize <= 0 {
		return fmt.Errorf("config: DEFAULT_PAGE_SIZE must be positive, got %d", c.DefaultPageSize)
	}
	if c.MaxPageSize < c.DefaultPageSize {
		return fmt.Errorf("config: MAX_PAGE_SIZE (%d) must be >= DEFAULT_PAGE_SIZE (%d)", c.MaxPageSize, c.DefaultPageSize)
	}
	if c.OutboxPeriod <= 0 || c.OutboxLimit <= 0 {
		return fmt.Errorf("config: OUTBOX_PERIOD and OUTBOX_LIMIT must be positive")
	}
	if c.ClickHouseAddr != "" && c.SnapshotPeriod <= 0 {
		return fmt.Errorf("config: SNAPSHOT_PERIOD must be positive when CLICKHOUSE_ADDR is set")
	}
	if c.UseKafka && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("config: KAFKA_BROKERS is required when USE_KAFKA=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
