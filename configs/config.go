package configs

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	HighValueThreshold decimal.Decimal
	LowStockThreshold  int
	AuditRetentionDays int
	PricingSeedFile    string

	// CORSOrigins also limits websocket upgrades.
	CORSOrigins []string

	AMQPURL  string
	LogMode  string
	LogFile  string
	Timezone string

	AdminEmail    string
	AdminPassword string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from the environment")
	}

	threshold, err := decimal.NewFromString(getEnv("HIGH_VALUE_THRESHOLD", "10000"))
	if err != nil {
		log.Printf("invalid HIGH_VALUE_THRESHOLD, using 10000: %v", err)
		threshold = decimal.NewFromInt(10000)
	}
	ttl, err := cast.ToDurationE(getEnv("JWT_TTL", "24h"))
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &Config{
		DBDriver:  getEnv("DB_DRIVER", "sqlite"),
		DBSource:  getEnv("DB_SOURCE", "laundry.db"),
		Port:      getEnv("PORT", "8000"),
		JWTSecret: getEnv("JWT_SECRET", "changeme"),
		JWTTTL:    ttl,

		HighValueThreshold: threshold,
		LowStockThreshold:  cast.ToInt(getEnv("LOW_STOCK_THRESHOLD", "5")),
		AuditRetentionDays: cast.ToInt(getEnv("AUDIT_RETENTION_DAYS", "365")),
		PricingSeedFile:    getEnv("PRICING_SEED_FILE", ""),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),

		AMQPURL:  getEnv("AMQP_URL", ""),
		LogMode:  getEnv("LOG_MODE", "development"),
		LogFile:  getEnv("LOG_FILE", ""),
		Timezone: getEnv("TIMEZONE", "Asia/Manila"),

		AdminEmail:    getEnv("ADMIN_EMAIL", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// splitList reads a comma separated env value, skipping blanks.
func splitList(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
