package business

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"gonumbers_api/config/values"
	"gonumbers_api/pkg/business/service"
)

// Rates — курсы пересчёта закупочных валют в валюту витрины.
// Два провайдера рассчитываются в разных валютах и никогда не делят курс.
type Rates struct {
	Rub float64 `json:"rub"`
	Usd float64 `json:"usd"`
}

type RatesClient struct {
	url      string
	fallback values.RatesValues
	retry    *service.Retry
	client   *http.Client
}

func NewRatesClient(url string, fallback values.RatesValues, retry *service.Retry) *RatesClient {
	return &RatesClient{
		url:      url,
		fallback: fallback,
		retry:    retry,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchRates запрашивает курсы один раз за прогон. Недоступный источник —
// не повод ронять конвейер, берём статический фолбэк.
func (rc *RatesClient) FetchRates() Rates {
	rates := Rates{Rub: rc.fallback.FallbackRub, Usd: rc.fallback.FallbackUsd}
	if rc.url == "" {
		return rates
	}

	var fetched Rates
	err := rc.retry.Do("fetch currency rates", func() error {
		resp, err := rc.client.Get(rc.url)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return service.NewStatusError(resp.StatusCode, rc.url)
		}
		return json.NewDecoder(resp.Body).Decode(&fetched)
	})
	if err != nil {
		log.Printf("Rate source unreachable, using fallback rates: %v", err)
		return rates
	}

	if fetched.Rub > 0 {
		rates.Rub = fetched.Rub
	}
	if fetched.Usd > 0 {
		rates.Usd = fetched.Usd
	}
	return rates
}
