package get

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gonumbers_api/internal/virtnum/business/dto/responses"
	"gonumbers_api/pkg/business/service"
)

const servicePricePath = "/v1/guest/prices"

type PricesEngine struct {
	baseURL string
	apiKey  string
	retry   *service.Retry
	client  *http.Client
}

func NewPricesEngine(baseURL, apiKey string, retry *service.Retry) *PricesEngine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &PricesEngine{
		baseURL: baseURL,
		apiKey:  apiKey,
		retry:   retry,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// GetServicePrices возвращает прайс одного сервиса по топовым странам.
func (pe *PricesEngine) GetServicePrices(serviceCode string) (*responses.ServicePriceResponse, error) {
	query := url.Values{}
	query.Set("apikey", pe.apiKey)
	query.Set("service", serviceCode)
	endpoint := fmt.Sprintf("%s%s?%s", pe.baseURL, servicePricePath, query.Encode())

	var prices responses.ServicePriceResponse
	err := pe.retry.Do(fmt.Sprintf("virtnum prices for '%s'", serviceCode), func() error {
		resp, err := pe.client.Get(endpoint)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return service.NewStatusError(resp.StatusCode, servicePricePath)
		}
		return json.NewDecoder(resp.Body).Decode(&prices)
	})
	if err != nil {
		return nil, err
	}
	return &prices, nil
}
