package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends for the cart record.
const (
	StorageFile    = "file"
	StorageSpanner = "spanner"
)

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv   string
	LogLevel string

	ShopDomain  string
	AccessToken string
	APIVersion  string
	Timeout     time.Duration
	PageSize    int

	CartStorage string
	StorageDir  string
	StorageKey  string
	SpannerDB   string

	HTTPAddr string // listen address of cmd/server
}

// Load reads an optional .env file, then the environment. Variables already
// set in the environment win over the file.
func Load(envFiles ...string) Config {
	_ = godotenv.Load(envFiles...) // a missing .env is fine

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		ShopDomain:  strings.TrimSpace(os.Getenv("STOREFRONT_SHOP_DOMAIN")),
		AccessToken: strings.TrimSpace(os.Getenv("STOREFRONT_ACCESS_TOKEN")),
		APIVersion:  getEnv("STOREFRONT_API_VERSION", "2024-01"),
		Timeout:     getEnvDuration("STOREFRONT_TIMEOUT", 10*time.Second),
		PageSize:    getEnvInt("STOREFRONT_PAGE_SIZE", 12),

		CartStorage: strings.ToLower(getEnv("CART_STORAGE", StorageFile)),
		StorageDir:  getEnv("CART_STORAGE_DIR", defaultStorageDir()),
		StorageKey:  getEnv("CART_STORAGE_KEY", "storefront-cart"),
		SpannerDB:   os.Getenv("SPANNER_DATABASE"),

		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
	}
}

// Validate reports missing or inconsistent settings.
func (c Config) Validate() error {
	if c.ShopDomain == "" {
		return fmt.Errorf("STOREFRONT_SHOP_DOMAIN is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("STOREFRONT_ACCESS_TOKEN is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("STOREFRONT_TIMEOUT must be positive")
	}
	if c.PageSize <= 0 || c.PageSize > 250 {
		return fmt.Errorf("STOREFRONT_PAGE_SIZE must be between 1 and 250")
	}

	switch c.CartStorage {
	case StorageFile:
		if c.StorageDir == "" {
			return fmt.Errorf("CART_STORAGE_DIR is required for file storage")
		}
	case StorageSpanner:
		if c.SpannerDB == "" {
			return fmt.Errorf("SPANNER_DATABASE is required for spanner storage")
		}
	default:
		return fmt.Errorf("unknown CART_STORAGE %q", c.CartStorage)
	}
	return nil
}

func defaultStorageDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "storefront"
	}
	return ".storefront"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
