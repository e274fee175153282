package profiles

import (
	"encoding/json"
	"fmt"
)

// toDocument flattens a profile into the generic document stored in the SQL
// JSON column.
func toDocument(profile *Profile) (map[string]any, error) {
	raw, err := encodeJSON(profile)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("profiles: encode document: %w", err)
	}
	return doc, nil
}

// fromDocument rebuilds a profile from its stored document. Blocks with an
// unregistered type are kept as opaque entries.
func fromDocument(doc map[string]any) (*Profile, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("profiles: decode document: %w", err)
	}
	return decodeProfile(raw)
}

func decodeProfile(raw []byte) (*Profile, error) {
	profile := &Profile{}
	if err := json.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("profiles: decode document: %w", err)
	}
	return profile, nil
}

func encodeJSON(profile *Profile) ([]byte, error) {
	if profile == nil {
		return nil, ErrProfileRequired
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("profiles: encode document: %w", err)
	}
	return raw, nil
}
