package services

import (
	"context"
	"io"
	"time"

	"golang.org/x/time/rate"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/internal/virtnum/business/services/get"
	"gonumbers_api/metrics"
	"gonumbers_api/pkg/business/service"
	"gonumbers_api/pkg/logger"
)

// Один запрос за раз: апстрим режет частые обращения к прайсу.
const priceRequestsPerMinute = 30

type Adapter struct {
	countries *get.CountriesEngine
	services  *get.ServicesEngine
	prices    *get.PricesEngine
	limiter   *rate.Limiter
	metrics   *metrics.SyncMetrics
	log       *logger.BaseLogger
}

func NewAdapter(baseURL, apiKey string, retry *service.Retry, m *metrics.SyncMetrics, writer io.Writer) *Adapter {
	return &Adapter{
		countries: get.NewCountriesEngine(baseURL, apiKey, retry),
		services:  get.NewServicesEngine(baseURL, apiKey, retry),
		prices:    get.NewPricesEngine(baseURL, apiKey, retry),
		limiter:   rate.NewLimiter(rate.Every(time.Minute/priceRequestsPerMinute), 1),
		metrics:   m,
		log:       logger.NewLogger(writer, "[virtnum]"),
	}
}

func (a *Adapter) ProviderID() string {
	return models.ProviderVirtNum
}

// FetchOfferings выполняет три шага: справочник стран, справочник
// сервисов, затем прайс на каждый сервис. Провал одного сервиса не
// валит прогон — сервис просто пропускается до следующего цикла.
func (a *Adapter) FetchOfferings(ctx context.Context) ([]models.RawOffering, error) {
	countries, err := a.countries.GetCountries()
	if err != nil {
		return nil, err
	}

	titleByID := make(map[int]string, len(countries.Countries))
	for _, country := range countries.Countries {
		titleByID[country.ID] = country.Title
	}

	serviceDir, err := a.services.GetServices()
	if err != nil {
		return nil, err
	}

	var offerings []models.RawOffering
	for _, svc := range serviceDir.Services {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		prices, err := a.prices.GetServicePrices(svc.Code)
		if err != nil {
			a.log.Log("service '%s' skipped this cycle: %v", svc.Code, err)
			a.metrics.SkippedServices.Add(1)
			continue
		}

		for _, row := range prices.TopCountries {
			title, known := titleByID[row.CountryID]
			if !known {
				a.metrics.UnmappedCountries.Add(1)
				continue
			}
			offerings = append(offerings, models.RawOffering{
				ProviderID:  models.ProviderVirtNum,
				Country:     title,
				Service:     svc.Code,
				ServiceName: svc.Name,
				Operator:    "any",
				Cost:        row.Cost,
				Count:       row.Count,
				SuccessRate: row.Rate,
			})
		}
	}

	a.log.Log("fetched %d offerings for %d services", len(offerings), len(serviceDir.Services))
	return offerings, nil
}
