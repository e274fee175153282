package blocks

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	fieldID   = "id"
	fieldType = "type"
)

// New returns a zero value variant for the type, or false when the type is not built in.
func New(t Type) (Block, bool) {
	switch t {
	case TypeText:
		return TextBlock{}, true
	case TypeURL:
		return URLBlock{}, true
	case TypePageLink:
		return PageLinkBlock{}, true
	case TypeOpeningHours:
		return OpeningHoursBlock{}, true
	case TypeContactInfo:
		return ContactInfoBlock{}, true
	case TypeLocation:
		return LocationBlock{}, true
	case TypeFacilities:
		return FacilitiesBlock{}, true
	case TypeAbout:
		return AboutBlock{}, true
	case TypeSocialNetworks:
		return SocialNetworksBlock{}, true
	case TypeServices:
		return ServicesBlock{}, true
	case TypeProducts:
		return ProductsBlock{}, true
	default:
		return nil, false
	}
}

// Fields flattens a block into its document representation, including id and type.
func Fields(b Block) (map[string]any, error) {
	if b == nil {
		return nil, ErrBlockRequired
	}
	if u, ok := b.(Unknown); ok {
		out := cloneFields(u.Fields)
		if out == nil {
			out = map[string]any{}
		}
		out[fieldID] = u.ID
		out[fieldType] = string(u.Type)
		return out, nil
	}

	raw, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("blocks: encode %s: %w", b.BlockType(), err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("blocks: encode %s: %w", b.BlockType(), err)
	}
	out[fieldType] = string(b.BlockType())
	return out, nil
}

// FromFields builds a block from its document representation. Unregistered
// types are preserved as Unknown.
func FromFields(fields map[string]any) (Block, error) {
	if fields == nil {
		return nil, ErrBlockRequired
	}
	t := Type(strings.TrimSpace(stringField(fields, fieldType)))
	id := stringField(fields, fieldID)

	zero, ok := New(t)
	if !ok {
		rest := cloneFields(fields)
		delete(rest, fieldID)
		delete(rest, fieldType)
		return Unknown{ID: id, Type: t, Fields: rest}, nil
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("blocks: decode %s: %w", t, err)
	}
	return decodeInto(zero, raw)
}

// Decode reads a single block document.
func Decode(raw []byte) (Block, error) {
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("blocks: decode: %w", err)
	}
	return FromFields(fields)
}

// Encode writes a single block document.
func Encode(b Block) ([]byte, error) {
	fields, err := Fields(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(fields)
}

// MarshalJSON encodes the list as an array of discriminated documents.
func (l List) MarshalJSON() ([]byte, error) {
	docs := make([]map[string]any, 0, len(l))
	for _, b := range l {
		if b == nil {
			continue
		}
		fields, err := Fields(b)
		if err != nil {
			return nil, err
		}
		docs = append(docs, fields)
	}
	return json.Marshal(docs)
}

// UnmarshalJSON decodes an array of discriminated documents.
func (l *List) UnmarshalJSON(data []byte) error {
	var docs []map[string]any
	if err := json.Unmarshal(data, &docs); err != nil {
		return fmt.Errorf("blocks: decode list: %w", err)
	}
	if docs == nil {
		*l = nil
		return nil
	}
	out := make(List, 0, len(docs))
	for _, doc := range docs {
		b, err := FromFields(doc)
		if err != nil {
			return err
		}
		out = append(out, b)
	}
	*l = out
	return nil
}

func decodeInto(zero Block, raw []byte) (Block, error) {
	var (
		out Block
		err error
	)
	switch zero.(type) {
	case TextBlock:
		out, err = unmarshalAs[TextBlock](raw)
	case URLBlock:
		out, err = unmarshalAs[URLBlock](raw)
	case PageLinkBlock:
		out, err = unmarshalAs[PageLinkBlock](raw)
	case OpeningHoursBlock:
		out, err = unmarshalAs[OpeningHoursBlock](raw)
	case ContactInfoBlock:
		out, err = unmarshalAs[ContactInfoBlock](raw)
	case LocationBlock:
		out, err = unmarshalAs[LocationBlock](raw)
	case FacilitiesBlock:
		out, err = unmarshalAs[FacilitiesBlock](raw)
	case AboutBlock:
		out, err = unmarshalAs[AboutBlock](raw)
	case SocialNetworksBlock:
		out, err = unmarshalAs[SocialNetworksBlock](raw)
	case ServicesBlock:
		out, err = unmarshalAs[ServicesBlock](raw)
	case ProductsBlock:
		out, err = unmarshalAs[ProductsBlock](raw)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownBlockType, zero)
	}
	if err != nil {
		return nil, fmt.Errorf("blocks: decode %s: %w", zero.BlockType(), err)
	}
	return out, nil
}

func unmarshalAs[T Block](raw []byte) (Block, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func stringField(fields map[string]any, key string) string {
	value, ok := fields[key]
	if !ok || value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprint(value)
}

func cloneFields(input map[string]any) map[string]any {
	if input == nil {
		return nil
	}
	out := make(map[string]any, len(input))
	for key, value := range input {
		out[key] = cloneValue(value)
	}
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		return cloneFields(typed)
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return value
	}
}
