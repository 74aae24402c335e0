package business

import (
	"gonumbers_api/internal/catalog/models"
)

type offeringKey struct {
	ServiceName string
	CountryName string
}

// MergeOfferings группирует позиции по (сервис, страна) и возвращает
// плоское объединение групп. Гарантия: ни одна позиция не теряется и не
// перетирается, даже когда оба провайдера продают одну и ту же пару.
func MergeOfferings(entries []models.CatalogEntry) []models.CatalogEntry {
	groups := make(map[offeringKey][]models.CatalogEntry, len(entries))
	order := make([]offeringKey, 0, len(entries))

	for _, entry := range entries {
		key := offeringKey{ServiceName: entry.ServiceName, CountryName: entry.CountryName}
		if _, exists := groups[key]; !exists {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	merged := make([]models.CatalogEntry, 0, len(entries))
	for _, key := range order {
		merged = append(merged, groups[key]...)
	}
	return merged
}
