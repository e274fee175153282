package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-storefront/internal/catalog"
	"github.com/goliatone/go-storefront/internal/profiles"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDriverUnsupported = errors.New("storage: unsupported sql driver")

// Handle owns an open bun database.
type Handle struct {
	DB     *bun.DB
	Driver string
}

// Close releases the underlying connection pool.
func (h *Handle) Close() error {
	if h == nil || h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

// OpenBun opens the configured SQL database and wraps it with the matching
// bun dialect. SQLite handles are pinned to one connection.
func OpenBun(cfg runtimeconfig.StorageConfig) (*Handle, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	dialect, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	sqlDB, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", driver, err)
	}
	db := bun.NewDB(sqlDB, dialect)
	if driver == runtimeconfig.DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	return &Handle{DB: db, Driver: driver}, nil
}

func dialectFor(driver string) (schema.Dialect, error) {
	switch driver {
	case runtimeconfig.DriverSQLite:
		return sqlitedialect.New(), nil
	case runtimeconfig.DriverPostgres:
		return pgdialect.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrDriverUnsupported, driver)
	}
}

// Models lists the tables the storefront persists.
func Models() []any {
	return []any{
		(*profiles.Record)(nil),
		(*catalog.ProductRecord)(nil),
		(*catalog.ServiceRecord)(nil),
	}
}

// Migrate creates the storefront tables when they are missing.
func Migrate(ctx context.Context, db bun.IDB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("storage: create table for %T: %w", model, err)
		}
	}
	return nil
}

// MongoHandle owns a connected client and the profile collection.
type MongoHandle struct {
	Client     *mongo.Client
	Collection *mongo.Collection
}

// Close disconnects the client.
func (h *MongoHandle) Close(ctx context.Context) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.Disconnect(ctx)
}

// OpenMongo connects to the configured deployment and selects the profile
// collection. It does not ping the server.
func OpenMongo(ctx context.Context, cfg runtimeconfig.MongoConfig) (*MongoHandle, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, runtimeconfig.ErrMongoURIRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	clientOpts := options.Client().ApplyURI(uri).SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("storage: connect mongo: %w", err)
	}
	database := firstNonEmpty(cfg.Database, "storefront")
	collection := firstNonEmpty(cfg.Collection, "businesses")
	return &MongoHandle{
		Client:     client,
		Collection: client.Database(database).Collection(collection),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
