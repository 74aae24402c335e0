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

const DefaultBaseURL = "https://api.virtnum.io"

const countriesPath = "/v1/guest/countries"

type CountriesEngine struct {
	baseURL string
	apiKey  string
	retry   *service.Retry
	client  *http.Client
}

func NewCountriesEngine(baseURL, apiKey string, retry *service.Retry) *CountriesEngine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &CountriesEngine{
		baseURL: baseURL,
		apiKey:  apiKey,
		retry:   retry,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (ce *CountriesEngine) GetCountries() (*responses.CountriesResponse, error) {
	query := url.Values{}
	query.Set("apikey", ce.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", ce.baseURL, countriesPath, query.Encode())

	var countries responses.CountriesResponse
	err := ce.retry.Do("virtnum countries", func() error {
		resp, err := ce.client.Get(endpoint)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return service.NewStatusError(resp.StatusCode, countriesPath)
		}
		return json.NewDecoder(resp.Body).Decode(&countries)
	})
	if err != nil {
		return nil, err
	}
	return &countries, nil
}
