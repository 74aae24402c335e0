package business

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonumbers_api/internal/catalog/models"
)

func TestMergeOfferingsKeepsBothProvidersForSamePair(t *testing.T) {
	entries := []models.CatalogEntry{
		{Identity: "smsrent_tg_russia_any", ServiceName: "Телеграм", CountryName: "Россия", ProviderID: models.ProviderSmsRent},
		{Identity: "virtnum_tg_russia_any", ServiceName: "Телеграм", CountryName: "Россия", ProviderID: models.ProviderVirtNum},
	}

	merged := MergeOfferings(entries)

	require.Len(t, merged, 2)
	providers := map[string]bool{}
	for _, entry := range merged {
		providers[entry.ProviderID] = true
	}
	assert.True(t, providers[models.ProviderSmsRent])
	assert.True(t, providers[models.ProviderVirtNum])
}

func TestMergeOfferingsPreservesTotalCount(t *testing.T) {
	entries := []models.CatalogEntry{
		{Identity: "a", ServiceName: "Телеграм", CountryName: "Россия"},
		{Identity: "b", ServiceName: "Телеграм", CountryName: "Россия"},
		{Identity: "c", ServiceName: "Телеграм", CountryName: "Украина"},
		{Identity: "d", ServiceName: "Вотсап", CountryName: "Россия"},
		{Identity: "e", ServiceName: "Вотсап", CountryName: "Казахстан"},
	}

	merged := MergeOfferings(entries)

	assert.Len(t, merged, len(entries))

	seen := map[string]bool{}
	for _, entry := range merged {
		assert.False(t, seen[entry.Identity], "identity %q duplicated", entry.Identity)
		seen[entry.Identity] = true
	}
	assert.Len(t, seen, len(entries))
}

func TestMergeOfferingsEmptyInput(t *testing.T) {
	assert.Empty(t, MergeOfferings(nil))
}
