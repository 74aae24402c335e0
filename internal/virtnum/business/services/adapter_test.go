package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/metrics"
	"gonumbers_api/pkg/business/service"
)

func fastRetry() *service.Retry {
	return &service.Retry{MaxAttempts: 3, BaseDelay: time.Millisecond, Jitter: time.Millisecond}
}

func newTestServer(t *testing.T, pricesHandler http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/guest/countries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("apikey"))
		w.Write([]byte(`{"countries": [
			{"id": 1, "title": "Russia"},
			{"id": 2, "title": "Ukraine"}
		]}`))
	})
	mux.HandleFunc("/v1/guest/services", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"services": [
			{"code": "tg", "name": "Telegram"},
			{"code": "wa", "name": "WhatsApp"}
		]}`))
	})
	mux.HandleFunc("/v1/guest/prices", pricesHandler)
	return httptest.NewServer(mux)
}

func newTestAdapter(serverURL string, m *metrics.SyncMetrics) *Adapter {
	adapter := NewAdapter(serverURL, "secret", fastRetry(), m, io.Discard)
	adapter.limiter = rate.NewLimiter(rate.Inf, 1)
	return adapter
}

func TestAdapterProducesOneRecordPerServiceCountry(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("service") {
		case "tg":
			w.Write([]byte(`{"topCountries": [
				{"countryId": 1, "cost": 0.5, "count": 120, "rate": 92},
				{"countryId": 2, "cost": 0.7, "count": 0, "rate": 88}
			]}`))
		case "wa":
			w.Write([]byte(`{"topCountries": [
				{"countryId": 1, "cost": 0.9, "count": 15, "rate": 79}
			]}`))
		}
	})
	defer server.Close()

	syncMetrics := &metrics.SyncMetrics{}
	adapter := newTestAdapter(server.URL, syncMetrics)

	offerings, err := adapter.FetchOfferings(context.Background())
	require.NoError(t, err)
	require.Len(t, offerings, 3)

	for _, offering := range offerings {
		assert.Equal(t, models.ProviderVirtNum, offering.ProviderID)
		assert.Equal(t, "any", offering.Operator)
	}
	assert.Equal(t, "Telegram", offerings[0].ServiceName)
	assert.Equal(t, "Russia", offerings[0].Country)
	assert.Equal(t, 0.5, offerings[0].Cost)
}

func TestAdapterSkipsFailedServiceWithoutAbortingRun(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("service") == "wa" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"topCountries": [{"countryId": 1, "cost": 0.5, "count": 120, "rate": 92}]}`))
	})
	defer server.Close()

	syncMetrics := &metrics.SyncMetrics{}
	adapter := newTestAdapter(server.URL, syncMetrics)

	offerings, err := adapter.FetchOfferings(context.Background())
	require.NoError(t, err)

	// wa выпал из цикла, tg уцелел
	require.Len(t, offerings, 1)
	assert.Equal(t, "tg", offerings[0].Service)
	assert.Equal(t, int32(1), syncMetrics.SkippedServices.Load())
}

func TestAdapterSkipsUnknownCountryIDs(t *testing.T) {
	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"topCountries": [
			{"countryId": 1,  "cost": 0.5, "count": 120, "rate": 92},
			{"countryId": 99, "cost": 0.4, "count": 10,  "rate": 90}
		]}`))
	})
	defer server.Close()

	syncMetrics := &metrics.SyncMetrics{}
	adapter := newTestAdapter(server.URL, syncMetrics)

	offerings, err := adapter.FetchOfferings(context.Background())
	require.NoError(t, err)

	require.Len(t, offerings, 2)
	for _, offering := range offerings {
		assert.Equal(t, "Russia", offering.Country)
	}
	assert.Equal(t, int32(2), syncMetrics.UnmappedCountries.Load())
}

func TestAdapterFailsWhenDirectoryUnavailable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	syncMetrics := &metrics.SyncMetrics{}
	adapter := newTestAdapter(server.URL, syncMetrics)

	_, err := adapter.FetchOfferings(context.Background())
	require.Error(t, err)
}
