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

const servicesPath = "/v1/guest/services"

type ServicesEngine struct {
	baseURL string
	apiKey  string
	retry   *service.Retry
	client  *http.Client
}

func NewServicesEngine(baseURL, apiKey string, retry *service.Retry) *ServicesEngine {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &ServicesEngine{
		baseURL: baseURL,
		apiKey:  apiKey,
		retry:   retry,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (se *ServicesEngine) GetServices() (*responses.ServicesResponse, error) {
	query := url.Values{}
	query.Set("apikey", se.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", se.baseURL, servicesPath, query.Encode())

	var services responses.ServicesResponse
	err := se.retry.Do("virtnum services", func() error {
		resp, err := se.client.Get(endpoint)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return service.NewStatusError(resp.StatusCode, servicesPath)
		}
		return json.NewDecoder(resp.Body).Decode(&services)
	})
	if err != nil {
		return nil, err
	}
	return &services, nil
}
