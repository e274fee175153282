package blocks

import "github.com/goliatone/go-storefront/internal/domain"

func stringProp() map[string]any {
	return map[string]any{"type": "string"}
}

func enumProp(values ...string) map[string]any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return map[string]any{"type": "string", "enum": enum}
}

func stringListProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": stringProp(),
	}
}

func objectSchema(properties map[string]any) map[string]any {
	properties[fieldID] = stringProp()
	properties[fieldType] = stringProp()
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": false,
	}
}

func pageTypeValues() []string {
	out := []string{string(domain.PageProfile)}
	for _, pt := range domain.PageTypes() {
		out = append(out, string(pt))
	}
	return out
}

func dayHoursSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"day":       stringProp(),
			"isOpen":    map[string]any{"type": "boolean"},
			"openTime":  stringProp(),
			"closeTime": stringProp(),
		},
		"required": []any{"day"},
	}
}

// builtinSchemas describes the document shape of every built-in variant.
func builtinSchemas() map[Type]map[string]any {
	return map[Type]map[string]any{
		TypeText: objectSchema(map[string]any{
			"title":   stringProp(),
			"content": stringProp(),
		}),
		TypeURL: objectSchema(map[string]any{
			"label":    stringProp(),
			"url":      stringProp(),
			"subtitle": stringProp(),
		}),
		TypePageLink: objectSchema(map[string]any{
			"label":    stringProp(),
			"pageType": enumProp(pageTypeValues()...),
			"subtitle": stringProp(),
		}),
		TypeOpeningHours: objectSchema(map[string]any{
			"timeFormat": enumProp(TimeFormat24h, TimeFormat12h),
			"isOpen247":  map[string]any{"type": "boolean"},
			"days": map[string]any{
				"type":     "array",
				"items":    dayHoursSchema(),
				"maxItems": len(domain.Weekdays),
			},
		}),
		TypeContactInfo: objectSchema(map[string]any{
			"fullName": stringProp(),
			"phone":    stringProp(),
			"email":    stringProp(),
			"website":  stringProp(),
		}),
		TypeLocation: objectSchema(map[string]any{
			"locationType": enumProp(LocationManual, LocationURL),
			"street":       stringProp(),
			"city":         stringProp(),
			"state":        stringProp(),
			"postalCode":   stringProp(),
			"country":      stringProp(),
			"url":          stringProp(),
		}),
		TypeFacilities: objectSchema(map[string]any{
			"selectedFacilities": stringListProp(),
		}),
		TypeAbout: objectSchema(map[string]any{
			"summary": stringProp(),
		}),
		TypeSocialNetworks: objectSchema(map[string]any{
			"platforms": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name": stringProp(),
						"url":  stringProp(),
					},
					"required": []any{"name"},
				},
			},
		}),
		TypeServices: objectSchema(map[string]any{
			"title":       stringProp(),
			"description": stringProp(),
		}),
		TypeProducts: objectSchema(map[string]any{
			"title":       stringProp(),
			"description": stringProp(),
		}),
	}
}
