package domain

import "strings"

// CatalogStatus represents the lifecycle states of catalog records.
type CatalogStatus string

const (
	// CatalogStatusOnline marks records visible on the storefront
	CatalogStatusOnline CatalogStatus = "online"
	// CatalogStatusActive is the legacy spelling of online
	CatalogStatusActive CatalogStatus = "active"
	// CatalogStatusDraft marks records still under preparation
	CatalogStatusDraft CatalogStatus = "draft"
	// CatalogStatusArchived marks records hidden from every surface
	CatalogStatusArchived CatalogStatus = "archived"
)

// NormalizeCatalogStatus coerces arbitrary status strings into a known representation.
func NormalizeCatalogStatus(input string) CatalogStatus {
	status := CatalogStatus(strings.ToLower(strings.TrimSpace(input)))
	if status == "" {
		return CatalogStatusDraft
	}
	return status
}

// IsListed reports whether records with this status render on public pages.
func (s CatalogStatus) IsListed() bool {
	switch NormalizeCatalogStatus(string(s)) {
	case CatalogStatusOnline, CatalogStatusActive:
		return true
	default:
		return false
	}
}
