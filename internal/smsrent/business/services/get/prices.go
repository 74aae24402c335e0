package get

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"gonumbers_api/internal/smsrent/business/dto/responses"
	"gonumbers_api/pkg/business/service"
)

const DefaultBaseURL = "https://api.smsrent.ru"

const pricesPath = "/stubs/handler_api.php"

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
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// GetPrices забирает весь прайс одним вызовом.
func (pe *PricesEngine) GetPrices() (responses.PricesResponse, error) {
	query := url.Values{}
	query.Set("api_key", pe.apiKey)
	query.Set("action", "getPrices")
	endpoint := fmt.Sprintf("%s%s?%s", pe.baseURL, pricesPath, query.Encode())

	var prices responses.PricesResponse
	err := pe.retry.Do("smsrent getPrices", func() error {
		resp, err := pe.client.Get(endpoint)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return service.NewStatusError(resp.StatusCode, pricesPath)
		}

		var decoded responses.PricesResponse
		if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
			return err
		}
		prices = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return prices, nil
}
