package domain

import (
	"strings"

	"github.com/google/uuid"
)

// ProductKindService marks products that are sold as services.
const ProductKindService = "service"

// Product is a read-only catalog record supplied to the products block.
type Product struct {
	ID          uuid.UUID     `json:"id"`
	BusinessID  uuid.UUID     `json:"business_id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Images      []string      `json:"images,omitempty"`
	Price       float64       `json:"price"`
	Currency    string        `json:"currency,omitempty"`
	Status      CatalogStatus `json:"status"`
	Kind        string        `json:"kind,omitempty"`
}

// IsService reports whether the product should be listed with services.
func (p Product) IsService() bool {
	return strings.EqualFold(strings.TrimSpace(p.Kind), ProductKindService)
}

// Service is a read-only bookable catalog record supplied to the services block.
type Service struct {
	ID              uuid.UUID     `json:"id"`
	BusinessID      uuid.UUID     `json:"business_id"`
	Name            string        `json:"name"`
	Description     string        `json:"description,omitempty"`
	Images          []string      `json:"images,omitempty"`
	Price           float64       `json:"price"`
	Currency        string        `json:"currency,omitempty"`
	Status          CatalogStatus `json:"status"`
	DurationMinutes int           `json:"duration,omitempty"`
}

// FirstImage returns the leading image or an empty string.
func FirstImage(images []string) string {
	for _, image := range images {
		if trimmed := strings.TrimSpace(image); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
