package business

import (
	"io"
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/metrics"
	"gonumbers_api/pkg/logger"
)

// RunContext — явное состояние одного прогона: курсы и ценовые параметры.
// Никаких глобальных синглтонов, контекст передаётся сверху.
type RunContext struct {
	Rates     Rates
	Margin    float64
	RoundUnit int
	Metrics   *metrics.SyncMetrics
}

type Normalizer struct {
	resolver *CountryResolver
	services *ServiceTable
	titler   cases.Caser
	log      *logger.BaseLogger
}

func NewNormalizer(resolver *CountryResolver, services *ServiceTable, writer io.Writer) *Normalizer {
	return &Normalizer{
		resolver: resolver,
		services: services,
		titler:   cases.Title(language.English),
		log:      logger.NewLogger(writer, "[normalizer]"),
	}
}

// Normalize превращает сырые провайдерские записи в канонические позиции
// каталога. Записи без страны или с неположительной ценой выбрасываются
// и только считаются.
func (n *Normalizer) Normalize(run *RunContext, raw []models.RawOffering) []models.CatalogEntry {
	entries := make([]models.CatalogEntry, 0, len(raw))

	for _, record := range raw {
		serviceToken := strings.ToLower(strings.TrimSpace(record.Service))
		countryToken := strings.TrimSpace(record.Country)

		country, ok := n.resolver.Resolve(countryToken)
		if !ok {
			run.Metrics.UnmappedCountries.Add(1)
			continue
		}

		englishName := strings.TrimSpace(record.ServiceName)
		if englishName == "" {
			englishName = serviceToken
		}

		priority, found := n.services.Lookup(CanonicalKey(englishName))
		if !found {
			priority, found = n.services.Lookup(CanonicalKey(serviceToken))
		}
		if !found {
			// сервис вне таблицы приоритетов: не ошибка, но считаем
			run.Metrics.UnknownServices.Add(1)
			priority = ServicePriority{
				Code:          serviceToken,
				Name:          englishName,
				LocalizedName: n.titler.String(strings.ToLower(englishName)),
				Priority:      models.DefaultPriority,
			}
		}

		price := n.retailPrice(run, record)
		if price <= 0 {
			run.Metrics.DroppedByPrice.Add(1)
			continue
		}

		entries = append(entries, models.CatalogEntry{
			Identity:    models.BuildIdentity(record.ProviderID, priority.Code, CanonicalKey(country.Name), record.Operator),
			Service:     priority.Code,
			ServiceName: priority.LocalizedName,
			CountryName: country.LocalizedName,
			CountryCode: country.Code,
			Operator:    record.Operator,
			Price:       price,
			Priority:    priority.Priority,
			Available:   record.Count > 0,
			SuccessRate: record.SuccessRate,
			ProviderID:  record.ProviderID,
		})
	}

	run.Metrics.FormattedCount.Add(int32(len(entries)))
	return entries
}

// retailPrice конвертирует закупочную цену в витринную:
// ceil(cost * rate * (1 + margin) / unit) * unit.
func (n *Normalizer) retailPrice(run *RunContext, record models.RawOffering) int {
	var rate float64
	switch record.ProviderID {
	case models.ProviderSmsRent:
		rate = run.Rates.Rub
	case models.ProviderVirtNum:
		rate = run.Rates.Usd
	default:
		n.log.Log("unknown provider id %q, record skipped", record.ProviderID)
		return 0
	}

	unit := run.RoundUnit
	if unit <= 0 {
		unit = 1
	}

	gross := record.Cost * rate * (1 + run.Margin)
	return int(math.Ceil(gross/float64(unit))) * unit
}
