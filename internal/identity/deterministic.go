package identity

import (
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/blocks"
	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "storefront:"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// BusinessUUID keys a business on its public slug.
func BusinessUUID(slug string) uuid.UUID {
	return UUID(namespace + "business:" + strings.ToLower(strings.TrimSpace(slug)))
}

func ProductUUID(businessID uuid.UUID, key string) uuid.UUID {
	return UUID(namespace + "product:" + businessID.String() + ":" + strings.ToLower(strings.TrimSpace(key)))
}

func ServiceUUID(businessID uuid.UUID, key string) uuid.UUID {
	return UUID(namespace + "service:" + businessID.String() + ":" + strings.ToLower(strings.TrimSpace(key)))
}

// BlockIDs returns a generator yielding the same id sequence for the same
// seed. It is safe for concurrent use. The sequence restarts with every
// generator, so pages stored by an earlier process may already hold its ids.
func BlockIDs(seed string) blocks.IDGenerator {
	var (
		mu   sync.Mutex
		next int
	)
	prefix := namespace + "block:" + strings.TrimSpace(seed) + ":"
	return func() string {
		mu.Lock()
		next++
		n := next
		mu.Unlock()
		return UUID(prefix + strconv.Itoa(n)).String()
	}
}
