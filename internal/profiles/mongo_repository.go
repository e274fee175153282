package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const mongoIDField = "_id"

// MongoRepository stores each profile as one document keyed by its id.
type MongoRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// MongoOption customises the Mongo repository.
type MongoOption func(*MongoRepository)

// WithMongoTimeout bounds every collection call.
func WithMongoTimeout(timeout time.Duration) MongoOption {
	return func(r *MongoRepository) {
		if timeout > 0 {
			r.timeout = timeout
		}
	}
}

// NewMongoRepository wraps an existing collection.
func NewMongoRepository(coll *mongo.Collection, opts ...MongoOption) *MongoRepository {
	repo := &MongoRepository{coll: coll, timeout: 5 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(repo)
		}
	}
	return repo
}

// EnsureIndexes creates the unique slug index used by public lookups.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("profiles: create indexes: %w", err)
	}
	return nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return r.findOne(ctx, bson.M{mongoIDField: id.String()}, id.String())
}

func (r *MongoRepository) GetBySlug(ctx context.Context, slug string) (*Profile, error) {
	return r.findOne(ctx, bson.M{"slug": normalizeSlug(slug)}, slug)
}

func (r *MongoRepository) Create(ctx context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	copied := profile.Clone()
	if copied.ID == uuid.Nil {
		copied.ID = uuid.New()
	}
	copied.Slug = normalizeSlug(copied.Slug)
	doc, err := toBSON(copied)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("profile repository error: %w", err)
	}
	return copied.Clone(), nil
}

func (r *MongoRepository) Update(ctx context.Context, profile *Profile) (*Profile, error) {
	if err := validateForWrite(profile); err != nil {
		return nil, err
	}
	copied := profile.Clone()
	copied.Slug = normalizeSlug(copied.Slug)
	doc, err := toBSON(copied)
	if err != nil {
		return nil, err
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	result, err := r.coll.ReplaceOne(ctx, bson.M{mongoIDField: copied.ID.String()}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrSlugConflict
		}
		return nil, fmt.Errorf("profile repository error: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, notFound(copied.ID.String())
	}
	return copied.Clone(), nil
}

func (r *MongoRepository) findOne(ctx context.Context, filter bson.M, key string) (*Profile, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	raw, err := r.coll.FindOne(ctx, filter).Raw()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, notFound(key)
		}
		return nil, fmt.Errorf("profile repository error: %w", err)
	}
	return fromBSON(raw)
}

func (r *MongoRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, r.timeout)
}

// toBSON converts the profile JSON document into an ordered BSON document with
// the profile id as the primary key.
func toBSON(profile *Profile) (bson.D, error) {
	raw, err := encodeJSON(profile)
	if err != nil {
		return nil, err
	}
	var doc bson.D
	if err := bson.UnmarshalExtJSON(raw, false, &doc); err != nil {
		return nil, fmt.Errorf("profiles: encode bson: %w", err)
	}
	return append(bson.D{{Key: mongoIDField, Value: profile.ID.String()}}, doc...), nil
}

func fromBSON(raw bson.Raw) (*Profile, error) {
	data, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("profiles: decode bson: %w", err)
	}
	return decodeProfile(data)
}
