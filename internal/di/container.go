package di

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-storefront/internal/adapters/storage"
	"github.com/goliatone/go-storefront/internal/blocks"
	"github.com/goliatone/go-storefront/internal/builder"
	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/commands"
	buildercmd "github.com/goliatone/go-storefront/internal/commands/builder"
	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/logging"
	"github.com/goliatone/go-storefront/internal/logging/gologger"
	"github.com/goliatone/go-storefront/internal/logging/zaplog"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/render"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/goliatone/go-storefront/pkg/interfaces"
	urlkit "github.com/goliatone/go-urlkit"
	"github.com/uptrace/bun"
	"go.mongodb.org/mongo-driver/mongo"
)

// Container wires the storefront modules from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	logger         interfaces.Logger

	bunDB         *bun.DB
	bunHandle     *storage.Handle
	mongoColl     *mongo.Collection
	mongoHandle   *storage.MongoHandle
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer
	routeManager  *urlkit.RouteManager
	idGenerator   blocks.IDGenerator

	profileRepo   profiles.Repository
	catalogSource catalog.Source
	registry      *blocks.Registry
	renderer      *render.Renderer
	builderSvc    *builder.Service

	applyEdits  *buildercmd.ApplyEditsHandler
	saveSession *buildercmd.SaveSessionHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB supplies an open database; it takes precedence over the storage config.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithMongoCollection supplies the collection backing the mongo profile repository.
func WithMongoCollection(coll *mongo.Collection) Option {
	return func(c *Container) {
		c.mongoColl = coll
	}
}

// WithCache overrides the default cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithProfileRepository overrides the profile repository.
func WithProfileRepository(repo profiles.Repository) Option {
	return func(c *Container) {
		c.profileRepo = repo
	}
}

// WithCatalogSource overrides the catalog source.
func WithCatalogSource(source catalog.Source) Option {
	return func(c *Container) {
		c.catalogSource = source
	}
}

// WithRouteManager overrides the route manager built from the routes config.
func WithRouteManager(manager *urlkit.RouteManager) Option {
	return func(c *Container) {
		c.routeManager = manager
	}
}

// WithBlockIDGenerator overrides how new blocks are identified.
func WithBlockIDGenerator(generator blocks.IDGenerator) Option {
	return func(c *Container) {
		c.idGenerator = generator
	}
}

// NewContainer creates a container with the provided configuration.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	c.logger = logging.ModuleLogger(c.loggerProvider, "storefront.di")

	c.configureCacheDefaults()
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureRepositories()
	c.configureRendering()

	svc, err := builder.NewService(c.profileRepo,
		builder.WithCatalog(c.catalogSource),
		builder.WithRegistry(c.registry),
		builder.WithRenderer(c.renderer),
		builder.WithLogger(logging.BuilderLogger(c.loggerProvider)),
		builder.WithPagesLogger(logging.PagesLogger(c.loggerProvider)),
		builder.WithPatchValidation(cfg.Builder.ValidatePatches),
		builder.WithDefaultPageType(domain.PageType(cfg.Builder.DefaultPageType)),
	)
	if err != nil {
		return nil, err
	}
	c.builderSvc = svc
	c.configureCommands()

	c.logger.Info("storefront.container.ready",
		"storage", c.storageLabel(),
		"cache", c.cacheService != nil,
		"routes", c.routeManager != nil,
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil || !c.Config.Features.Logger {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure go-logger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = zaplog.NewProvider(zaplog.Options{
			Encoding: logCfg.Format,
			Level:    logCfg.Level,
		})
	}
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Features.Cache || !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.DefaultTTL > 0 {
			cfg.TTL = c.Config.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err != nil {
			c.logger.Warn("storefront.cache.disabled", "error", err)
			return
		}
		c.cacheService = service
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureStorage() error {
	if c.profileRepo != nil && c.catalogSource != nil {
		return nil
	}
	if c.bunDB != nil || c.mongoColl != nil {
		return nil
	}

	storageCfg := c.Config.Storage
	switch strings.ToLower(strings.TrimSpace(storageCfg.Provider)) {
	case runtimeconfig.StorageBun:
		handle, err := storage.OpenBun(storageCfg)
		if err != nil {
			return err
		}
		if err := storage.Migrate(context.Background(), handle.DB); err != nil {
			_ = handle.Close()
			return err
		}
		c.bunHandle = handle
		c.bunDB = handle.DB
	case runtimeconfig.StorageMongo:
		ctx, cancel := context.WithTimeout(context.Background(), mongoTimeout(storageCfg.Mongo))
		defer cancel()
		handle, err := storage.OpenMongo(ctx, storageCfg.Mongo)
		if err != nil {
			return err
		}
		if err := profiles.NewMongoRepository(handle.Collection).EnsureIndexes(ctx); err != nil {
			_ = handle.Close(context.Background())
			return err
		}
		c.mongoHandle = handle
		c.mongoColl = handle.Collection
	}
	return nil
}

func (c *Container) configureRepositories() {
	if c.profileRepo == nil {
		switch {
		case c.bunDB != nil:
			c.profileRepo = profiles.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		case c.mongoColl != nil:
			c.profileRepo = profiles.NewMongoRepository(c.mongoColl,
				profiles.WithMongoTimeout(mongoTimeout(c.Config.Storage.Mongo)))
		default:
			c.profileRepo = profiles.NewMemoryRepository()
		}
	}

	if c.catalogSource == nil {
		if c.bunDB != nil {
			c.catalogSource = catalog.NewBunSourceWithCache(c.bunDB, c.cacheService, c.keySerializer)
		} else {
			c.catalogSource = catalog.NewMemorySource()
		}
	}

	c.registry = blocks.NewRegistry(blocks.WithIDGenerator(c.idGenerator))
}

func (c *Container) configureRendering() {
	routes := c.Config.Routes
	if c.routeManager == nil && routes.RouteConfig != nil {
		c.routeManager = render.NewRouteManager(routes.RouteConfig)
	}

	opts := []render.Option{render.WithLogger(logging.RenderLogger(c.loggerProvider))}
	if c.routeManager != nil {
		opts = append(opts, render.WithRouteManager(c.routeManager, strings.TrimSpace(routes.Group), strings.TrimSpace(routes.Route)))
	}
	c.renderer = render.New(opts...)
}

func (c *Container) configureCommands() {
	timeout := c.Config.Builder.SaveTimeout

	editOpts := []commands.HandlerOption[buildercmd.ApplyEditsCommand]{}
	saveOpts := []commands.HandlerOption[buildercmd.SaveSessionCommand]{}
	if timeout > 0 {
		editOpts = append(editOpts, commands.WithTimeout[buildercmd.ApplyEditsCommand](timeout))
		saveOpts = append(saveOpts, commands.WithTimeout[buildercmd.SaveSessionCommand](timeout))
	}

	logger := commands.CommandLogger(c.loggerProvider, "builder")
	c.applyEdits = buildercmd.NewApplyEditsHandler(c.builderSvc, logger, editOpts...)
	c.saveSession = buildercmd.NewSaveSessionHandler(logger, saveOpts...)
}

func (c *Container) storageLabel() string {
	switch {
	case c.bunDB != nil:
		return runtimeconfig.StorageBun
	case c.mongoColl != nil:
		return runtimeconfig.StorageMongo
	default:
		return runtimeconfig.StorageMemory
	}
}

func mongoTimeout(cfg runtimeconfig.MongoConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return 10 * time.Second
}

// Close releases the storage handles the container opened itself.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.bunHandle != nil {
		errs = append(errs, c.bunHandle.Close())
		c.bunHandle = nil
	}
	if c.mongoHandle != nil {
		errs = append(errs, c.mongoHandle.Close(ctx))
		c.mongoHandle = nil
	}
	return errors.Join(errs...)
}

// LoggerProvider exposes the configured logger provider, nil when logging is off.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the SQL database, nil unless bun storage is configured.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// ProfileRepository exposes the configured profile repository.
func (c *Container) ProfileRepository() profiles.Repository {
	return c.profileRepo
}

// CatalogSource exposes the configured catalog source.
func (c *Container) CatalogSource() catalog.Source {
	return c.catalogSource
}

// BlockRegistry returns the block registry shared by every session.
func (c *Container) BlockRegistry() *blocks.Registry {
	return c.registry
}

// Renderer returns the configured renderer.
func (c *Container) Renderer() *render.Renderer {
	return c.renderer
}

// RouteManager returns the urlkit manager, nil when routes are not configured.
func (c *Container) RouteManager() *urlkit.RouteManager {
	return c.routeManager
}

// BuilderService returns the configured builder service.
func (c *Container) BuilderService() *builder.Service {
	return c.builderSvc
}

// ApplyEditsHandler returns the batch edit command handler.
func (c *Container) ApplyEditsHandler() *buildercmd.ApplyEditsHandler {
	return c.applyEdits
}

// SaveSessionHandler returns the save command handler.
func (c *Container) SaveSessionHandler() *buildercmd.SaveSessionHandler {
	return c.saveSession
}
