package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const defaultProfileSecret = "default_secret_CHANGE_ME"

// Store drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverS3       = "s3"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	FrontendURL   string // Base URL used in the sitemap
	// Profiles
	ProfileSecret      string
	ProfileTokenExpiry time.Duration
	// Storage
	StoreDriver string
	StoreDir    string
	SQLitePath  string
	// DB Config (postgres driver)
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration
	// S3 / R2 Storage
	S3AccountID       string
	S3AccessKeyID     string
	S3AccessKeySecret string
	S3Bucket          string
	S3Prefix          string
	S3Endpoint        string
	S3Timeout         time.Duration
	// Catalog sources; empty means the embedded defaults
	CatalogFile string
	CouponFile  string
	// Cache
	CacheProductTTL time.Duration
	CacheSitemapTTL time.Duration
	// Business Rules
	MaxCartQuantity       int
	ShippingFee           decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	TaxRate               decimal.Decimal
	// Simulated payment
	PaymentDelay       time.Duration
	PaymentFailureRate float64
	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int
}

func LoadConfig() (*Config, error) {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env is optional, system env vars still apply
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		FrontendURL:   getEnv("FRONTEND_URL", "http://localhost:3000"),

		ProfileSecret:      getEnv("PROFILE_SECRET", defaultProfileSecret),
		ProfileTokenExpiry: getDurationEnv("PROFILE_TOKEN_EXPIRY", time.Hour*24*365),

		StoreDriver: getEnv("STORE_DRIVER", DriverFile),
		StoreDir:    getEnv("STORE_DIR", "./data"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/aurex.db"),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 2),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		S3AccountID:       getEnv("S3_ACCOUNT_ID", ""),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3AccessKeySecret: getEnv("S3_ACCESS_KEY_SECRET", ""),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", "aurex"),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3Timeout:         getDurationEnv("S3_TIMEOUT", 10*time.Second),

		CatalogFile: getEnv("CATALOG_FILE", ""),
		CouponFile:  getEnv("COUPON_FILE", ""),

		// Cache defaults: 10m Product, 6h Sitemap
		CacheProductTTL: getDurationEnv("CACHE_PRODUCT_TTL", 10*time.Minute),
		CacheSitemapTTL: getDurationEnv("CACHE_SITEMAP_TTL", 6*time.Hour),

		MaxCartQuantity:       getIntEnv("MAX_CART_QUANTITY", 99),
		ShippingFee:           getDecimalEnv("SHIPPING_FEE", decimal.Zero),
		FreeShippingThreshold: getDecimalEnv("FREE_SHIPPING_THRESHOLD", decimal.Zero),
		TaxRate:               getDecimalEnv("TAX_RATE", decimal.Zero),

		PaymentDelay:       getDurationEnv("PAYMENT_DELAY", 2*time.Second),
		PaymentFailureRate: getFloatEnv("PAYMENT_FAILURE_RATE", 0),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 20),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMemory, DriverFile, DriverSQLite:
	case DriverPostgres:
		if c.DBUrl == "" {
			return errors.New("DB_DSN is required for the postgres store driver")
		}
	case DriverS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required for the s3 store driver")
		}
	default:
		return errors.Newf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.MaxCartQuantity < 1 {
		return errors.Newf("MAX_CART_QUANTITY must be positive, got %d", c.MaxCartQuantity)
	}
	if c.ShippingFee.IsNegative() || c.TaxRate.IsNegative() {
		return errors.New("SHIPPING_FEE and TAX_RATE must not be negative")
	}
	if c.PaymentFailureRate < 0 || c.PaymentFailureRate > 1 {
		return errors.Newf("PAYMENT_FAILURE_RATE must be within [0,1], got %v", c.PaymentFailureRate)
	}
	if c.ProfileSecret == defaultProfileSecret {
		log.Println("WARNING: Using default profile secret. Set PROFILE_SECRET in production.")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
