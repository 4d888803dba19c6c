package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

var Module = fx.Provide(Load)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	// DefaultSeed is the global generation seed used when the CLI does not
	// override it. Fixed by default so repeated runs are reproducible.
	DefaultSeed int64

	// PopulationTarget is the customer population size ensured before any
	// date is generated.
	PopulationTarget int

	// EpochDate is the first date the simulated history may cover. Requests
	// before it are rejected.
	EpochDate time.Time

	// MaxFutureDays bounds how far past "today" a requested date may lie.
	MaxFutureDays int

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int
}

const defaultEpoch = "2020-11-01"

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	epoch, err := time.Parse("2006-01-02", getenv("SKISIM_EPOCH_DATE", defaultEpoch))
	if err != nil {
		epoch, _ = time.Parse("2006-01-02", defaultEpoch)
	}

	cfg := Config{
		AppName:          getenv("APP_SERVICE", "skisim"),
		AppVersion:       getenv("APP_VERSION", "0.1.0"),
		Environment:      getenv("ENVIRONMENT", "development"),
		DefaultSeed:      getenvInt64("SKISIM_SEED", 42),
		PopulationTarget: int(getenvInt64("SKISIM_POPULATION", 8000)),
		EpochDate:        epoch.UTC(),
		MaxFutureDays:    int(getenvInt64("SKISIM_MAX_FUTURE_DAYS", 2)),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "ski_resort"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     int(getenvInt64("DATABASE_MAX_IDLE_CONN", 2)),
		DBMaxOpenConn:     int(getenvInt64("DATABASE_MAX_OPEN_CONN", 8)),
		DBConnMaxLifetime: int(getenvInt64("DATABASE_CONN_MAX_LIFETIME", 1800)),
		DBConnMaxIdleTime: int(getenvInt64("DATABASE_CONN_MAX_IDLE_TIME", 300)),
	}

	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt64(key string, def int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return def
	}
	return parsed
}
