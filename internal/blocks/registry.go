package blocks

import (
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-storefront/internal/domain"
	"github.com/goliatone/go-storefront/internal/validation"
	"github.com/google/uuid"
)

// Palette categories used by the block picker.
const (
	CategoryGeneral  = "general"
	CategoryBusiness = "business"
)

var singletons = map[Type]struct{}{
	TypeOpeningHours:   {},
	TypeContactInfo:    {},
	TypeLocation:       {},
	TypeFacilities:     {},
	TypeAbout:          {},
	TypeSocialNetworks: {},
	TypeServices:       {},
	TypeProducts:       {},
}

// IsSingleton reports whether at most one block of the type may exist per page.
func IsSingleton(t Type) bool {
	_, ok := singletons[t]
	return ok
}

// Definition describes a block type for the picker and for validation.
type Definition struct {
	Type        Type
	Name        string
	Description string
	Category    string
	Singleton   bool
	Syncs       bool
	Schema      map[string]any
}

// Context carries the canonical business fields used to seed new blocks.
type Context struct {
	Business domain.Business
}

// IDGenerator produces opaque block identifiers.
type IDGenerator func() string

// RegistryOption customises a registry.
type RegistryOption func(*Registry)

// WithIDGenerator overrides the block identifier generator.
func WithIDGenerator(generator IDGenerator) RegistryOption {
	return func(r *Registry) {
		if generator != nil {
			r.id = generator
		}
	}
}

// Registry stores the block definitions and builds default instances.
type Registry struct {
	mu        sync.RWMutex
	entries   map[Type]Definition
	order     []Type
	validator *validation.Validator
	id        IDGenerator
}

// NewRegistry constructs a registry seeded with the built-in block types.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries:   make(map[Type]Definition),
		validator: validation.NewValidator(),
		id:        uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	schemas := builtinSchemas()
	for _, def := range builtinDefinitions() {
		def.Schema = schemas[def.Type]
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}

// Register records or replaces a definition. Only built-in types can be
// constructed, so registering an unknown type fails.
func (r *Registry) Register(def Definition) error {
	def.Type = Type(strings.TrimSpace(string(def.Type)))
	if _, ok := New(def.Type); !ok {
		return &UnknownTypeError{Type: def.Type}
	}
	def.Singleton = IsSingleton(def.Type)
	if def.Schema != nil {
		if err := r.validator.Register(string(def.Type), validation.WithoutRequired(def.Schema)); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[def.Type]; !exists {
		r.order = append(r.order, def.Type)
	}
	r.entries[def.Type] = def
	return nil
}

// Definition returns the registered definition for the type.
func (r *Registry) Definition(t Type) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.entries[t]
	return def, ok
}

// Definitions lists definitions in palette order.
func (r *Registry) Definitions() []Definition {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		out = append(out, r.entries[t])
	}
	return out
}

// IsSingleton reports whether the type is restricted to one instance per page.
func (r *Registry) IsSingleton(t Type) bool {
	return IsSingleton(t)
}

// CreateDefault builds a fully formed block of the given type seeded from the
// business. It does not check the singleton constraint; callers that own a
// block list do.
func (r *Registry) CreateDefault(t Type, ctx Context) (Block, error) {
	if _, ok := r.Definition(t); !ok {
		return nil, &UnknownTypeError{Type: t}
	}
	return newDefault(t, r.id(), ctx)
}

// ValidatePatch checks a partial update against the type's schema. Required
// fields are not enforced.
func (r *Registry) ValidatePatch(t Type, patch Patch) error {
	if _, ok := r.Definition(t); !ok {
		return &UnknownTypeError{Type: t}
	}
	if err := r.validator.Validate(string(t), patch); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrPatchInvalid, t, err)
	}
	return nil
}

// DisplayName returns the title-cased label used in notices, e.g. "Contact Info".
func DisplayName(t Type) string {
	words := strings.Split(string(t), "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

func builtinDefinitions() []Definition {
	return []Definition{
		{Type: TypeText, Name: "Text", Description: "Headings & text", Category: CategoryGeneral},
		{Type: TypeURL, Name: "Link", Description: "External website", Category: CategoryGeneral},
		{Type: TypePageLink, Name: "Page", Description: "Internal link", Category: CategoryGeneral},
		{Type: TypeOpeningHours, Name: "Hours", Description: "Opening schedule", Category: CategoryBusiness, Syncs: true},
		{Type: TypeContactInfo, Name: "Contact", Description: "Phones & email", Category: CategoryBusiness, Syncs: true},
		{Type: TypeLocation, Name: "Location", Description: "Address & map", Category: CategoryBusiness, Syncs: true},
		{Type: TypeFacilities, Name: "Facilities", Description: "Amenities", Category: CategoryBusiness, Syncs: true},
		{Type: TypeAbout, Name: "About", Description: "Summary", Category: CategoryBusiness, Syncs: true},
		{Type: TypeSocialNetworks, Name: "Social", Description: "Social networks", Category: CategoryBusiness, Syncs: true},
		{Type: TypeServices, Name: "Services", Description: "Services list", Category: CategoryBusiness},
		{Type: TypeProducts, Name: "Products", Description: "Product catalog", Category: CategoryBusiness},
	}
}
