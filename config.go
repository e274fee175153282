package storefront

import "github.com/goliatone/go-storefront/internal/runtimeconfig"

var (
	ErrStorageProviderUnknown    = runtimeconfig.ErrStorageProviderUnknown
	ErrStorageDriverUnknown      = runtimeconfig.ErrStorageDriverUnknown
	ErrStorageDSNRequired        = runtimeconfig.ErrStorageDSNRequired
	ErrMongoURIRequired          = runtimeconfig.ErrMongoURIRequired
	ErrCacheRequiresEnabledCache = runtimeconfig.ErrCacheRequiresEnabledCache
	ErrCacheTTLInvalid           = runtimeconfig.ErrCacheTTLInvalid
	ErrLoggingProviderRequired   = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown    = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid       = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid      = runtimeconfig.ErrLoggingFormatInvalid
	ErrDefaultPageTypeInvalid    = runtimeconfig.ErrDefaultPageTypeInvalid
	ErrRouteGroupRequired        = runtimeconfig.ErrRouteGroupRequired
	ErrSaveTimeoutInvalid        = runtimeconfig.ErrSaveTimeoutInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	MongoConfig   = runtimeconfig.MongoConfig
	CacheConfig   = runtimeconfig.CacheConfig
	RoutesConfig  = runtimeconfig.RoutesConfig
	BuilderConfig = runtimeconfig.BuilderConfig
	Features      = runtimeconfig.Features
	LoggingConfig = runtimeconfig.LoggingConfig
)

// DefaultConfig returns a configuration backed by in-memory storage.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
