package services

import (
	"context"
	"io"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/internal/smsrent/business/dto/responses"
	"gonumbers_api/internal/smsrent/business/services/get"
	"gonumbers_api/pkg/business/service"
	"gonumbers_api/pkg/logger"
)

// Оператор по умолчанию для листовой формы прайса.
const anyOperator = "any"

// Adapter приводит прайс smsrent к промежуточной форме RawOffering.
// Только чтение, никакого состояния между прогонами.
type Adapter struct {
	prices *get.PricesEngine
	log    *logger.BaseLogger
}

func NewAdapter(baseURL, apiKey string, retry *service.Retry, writer io.Writer) *Adapter {
	return &Adapter{
		prices: get.NewPricesEngine(baseURL, apiKey, retry),
		log:    logger.NewLogger(writer, "[smsrent]"),
	}
}

func (a *Adapter) ProviderID() string {
	return models.ProviderSmsRent
}

func (a *Adapter) FetchOfferings(ctx context.Context) ([]models.RawOffering, error) {
	prices, err := a.prices.GetPrices()
	if err != nil {
		return nil, err
	}

	var offerings []models.RawOffering
	for country, servicePrices := range prices {
		for serviceToken, pricing := range servicePrices {
			offerings = append(offerings, flatten(country, serviceToken, pricing)...)
		}
	}

	a.log.Log("fetched %d offerings across %d countries", len(offerings), len(prices))
	return offerings, nil
}

func flatten(country, serviceToken string, pricing responses.ServicePricing) []models.RawOffering {
	if pricing.Direct != nil {
		return []models.RawOffering{newOffering(country, serviceToken, anyOperator, *pricing.Direct)}
	}

	offerings := make([]models.RawOffering, 0, len(pricing.ByOperator))
	for operator, leaf := range pricing.ByOperator {
		offerings = append(offerings, newOffering(country, serviceToken, operator, leaf))
	}
	return offerings
}

func newOffering(country, serviceToken, operator string, leaf responses.OperatorPricing) models.RawOffering {
	return models.RawOffering{
		ProviderID:  models.ProviderSmsRent,
		Country:     country,
		Service:     serviceToken,
		Operator:    operator,
		Cost:        leaf.Cost,
		Count:       leaf.Count,
		SuccessRate: leaf.Rate,
	}
}
