package blocks

import (
	"fmt"
	"maps"
	"slices"
)

// Patch is a partial field update keyed by document field name.
type Patch map[string]any

// Has reports whether the patch sets the field.
func (p Patch) Has(field string) bool {
	_, ok := p[field]
	return ok
}

// HasAny reports whether the patch sets at least one of the fields.
func (p Patch) HasAny(fields ...string) bool {
	return slices.ContainsFunc(fields, p.Has)
}

// Keys returns the patched field names in sorted order.
func (p Patch) Keys() []string {
	return slices.Sorted(maps.Keys(p))
}

// ApplyPatch shallow merges the patch into a copy of the block. The id and type
// of a block cannot be patched; a patch naming either with a different value
// is rejected.
func ApplyPatch(b Block, patch Patch) (Block, error) {
	if b == nil {
		return nil, ErrBlockRequired
	}
	if err := checkImmutable(b, patch); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return Clone(b), nil
	}

	fields, err := Fields(b)
	if err != nil {
		return nil, err
	}
	for key, value := range patch {
		if key == fieldID || key == fieldType {
			continue
		}
		fields[key] = cloneValue(value)
	}

	updated, err := FromFields(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPatchInvalid, err)
	}
	return updated, nil
}

func checkImmutable(b Block, patch Patch) error {
	if raw, ok := patch[fieldID]; ok {
		if id, isString := raw.(string); !isString || id != b.BlockID() {
			return fmt.Errorf("%w: %s", ErrImmutableField, fieldID)
		}
	}
	if raw, ok := patch[fieldType]; ok {
		if t := fmt.Sprint(raw); Type(t) != b.BlockType() {
			return fmt.Errorf("%w: %s", ErrImmutableField, fieldType)
		}
	}
	return nil
}
