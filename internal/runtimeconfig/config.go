package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-storefront/internal/domain"
	urlkit "github.com/goliatone/go-urlkit"
)

var (
	ErrStorageProviderUnknown    = errors.New("storefront config: storage provider is invalid")
	ErrStorageDriverUnknown      = errors.New("storefront config: sql driver is invalid")
	ErrStorageDSNRequired        = errors.New("storefront config: dsn is required for the bun provider")
	ErrMongoURIRequired          = errors.New("storefront config: mongo uri is required for the mongo provider")
	ErrCacheRequiresEnabledCache = errors.New("storefront config: cache feature requires cache to be enabled")
	ErrCacheTTLInvalid           = errors.New("storefront config: cache ttl must be positive")
	ErrLoggingProviderRequired   = errors.New("storefront config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown    = errors.New("storefront config: logging provider is invalid")
	ErrLoggingLevelInvalid       = errors.New("storefront config: logging level is invalid")
	ErrLoggingFormatInvalid      = errors.New("storefront config: logging format is invalid")
	ErrDefaultPageTypeInvalid    = errors.New("storefront config: default page type is invalid")
	ErrRouteGroupRequired        = errors.New("storefront config: route group and name are required with a route config")
	ErrSaveTimeoutInvalid        = errors.New("storefront config: save timeout must be zero or positive")
)

// Storage providers.
const (
	StorageMemory = "memory"
	StorageBun    = "bun"
	StorageMongo  = "mongo"
)

// SQL drivers accepted by the bun provider.
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Config aggregates feature flags and adapter bindings for the storefront module.
type Config struct {
	Storage  StorageConfig
	Cache    CacheConfig
	Routes   RoutesConfig
	Builder  BuilderConfig
	Features Features
	Logging  LoggingConfig
}

// StorageConfig selects where profile documents and catalogs live.
type StorageConfig struct {
	Provider string
	Driver   string
	DSN      string
	Mongo    MongoConfig
}

// MongoConfig locates the business profile collection.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// CacheConfig captures cache behaviour toggles.
type CacheConfig struct {
	Enabled    bool
	DefaultTTL time.Duration
}

// RoutesConfig resolves page links through go-urlkit. The route receives the
// business slug and the page type as parameters.
type RoutesConfig struct {
	RouteConfig *urlkit.Config
	Group       string
	Route       string
}

// BuilderConfig tunes the editing session.
type BuilderConfig struct {
	DefaultPageType string
	ValidatePatches bool
	SaveTimeout     time.Duration
}

// Features toggles module functionality.
type Features struct {
	Cache  bool
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns an in-memory setup with console logging.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Provider: StorageMemory,
			Driver:   DriverSQLite,
			Mongo: MongoConfig{
				Database:   "storefront",
				Collection: "businesses",
				Timeout:    10 * time.Second,
			},
		},
		Cache: CacheConfig{
			Enabled:    true,
			DefaultTTL: time.Minute,
		},
		Builder: BuilderConfig{
			DefaultPageType: "storefront",
			ValidatePatches: true,
			SaveTimeout:     30 * time.Second,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", StorageMemory:
	case StorageBun:
		if !isSupportedDriver(cfg.Storage.Driver) {
			return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
		}
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	case StorageMongo:
		if strings.TrimSpace(cfg.Storage.Mongo.URI) == "" {
			return ErrMongoURIRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}
	if cfg.Features.Cache {
		if !cfg.Cache.Enabled {
			return ErrCacheRequiresEnabledCache
		}
		if cfg.Cache.DefaultTTL <= 0 {
			return ErrCacheTTLInvalid
		}
	}
	if pt := normalize(cfg.Builder.DefaultPageType); pt != "" && !domain.PageType(pt).Valid() {
		return fmt.Errorf("%w: %s", ErrDefaultPageTypeInvalid, pt)
	}
	if cfg.Builder.SaveTimeout < 0 {
		return ErrSaveTimeoutInvalid
	}
	if cfg.Routes.RouteConfig != nil && (strings.TrimSpace(cfg.Routes.Group) == "" || strings.TrimSpace(cfg.Routes.Route) == "") {
		return ErrRouteGroupRequired
	}
	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedDriver(driver string) bool {
	switch normalize(driver) {
	case DriverSQLite, "sqlite", DriverPostgres, "pg":
		return true
	default:
		return false
	}
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	switch normalize(format) {
	case "json", "console":
		return true
	case "pretty":
		return provider == "gologger"
	default:
		return false
	}
}
