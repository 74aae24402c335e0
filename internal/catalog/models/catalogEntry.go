package models

import (
	"fmt"
	"strings"
)

// Ранг по умолчанию для сервисов без записи в таблице приоритетов.
const DefaultPriority = 1000

// CatalogEntry — единица витринного каталога. Создаётся заново на каждом
// прогоне и целиком заменяет предыдущее поколение при публикации.
type CatalogEntry struct {
	Identity    string
	Service     string
	ServiceName string
	CountryName string
	CountryCode string
	Operator    string
	Price       int
	Priority    int
	Available   bool
	SuccessRate float64
	ProviderID  string
}

// BuildIdentity builds the idempotency key for one offering. Identical
// upstream data must yield an identical identity on every run.
func BuildIdentity(providerID, service, countryKey, operator string) string {
	return strings.ToLower(fmt.Sprintf("%s_%s_%s_%s", providerID, service, countryKey, operator))
}
