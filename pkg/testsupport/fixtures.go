package testsupport

import (
	"encoding/json"
	"os"
	"testing"
)

// LoadFixture reads a file relative to the calling package, failing the test on error.
func LoadFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}

// DecodeFixture reads a JSON fixture into v.
func DecodeFixture(tb testing.TB, path string, v any) {
	tb.Helper()
	if err := json.Unmarshal(LoadFixture(tb, path), v); err != nil {
		tb.Fatalf("decode fixture %s: %v", path, err)
	}
}
