package testsupport

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-storefront/internal/adapters/storage"
	"github.com/goliatone/go-storefront/internal/runtimeconfig"
	"github.com/uptrace/bun"
)

var dbSeq atomic.Int64

// NewBunDB opens a private in-memory SQLite database with the storefront
// tables created. It is closed when the test ends.
func NewBunDB(tb testing.TB) *bun.DB {
	tb.Helper()

	handle, err := storage.OpenBun(runtimeconfig.StorageConfig{
		Driver: runtimeconfig.DriverSQLite,
		DSN:    fmt.Sprintf("file:storefront_test_%d?mode=memory&cache=shared&_fk=1", dbSeq.Add(1)),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = handle.Close() })

	if err := storage.Migrate(context.Background(), handle.DB); err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	return handle.DB
}
