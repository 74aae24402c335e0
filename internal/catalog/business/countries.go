package business

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"gonumbers_api/internal/catalog/models"
)

//go:embed reference/provider_countries.yaml
var providerCountriesYaml []byte

//go:embed reference/country_translations.yaml
var countryTranslationsYaml []byte

// CanonicalKey нормализует имя до ключа сопоставления словарей:
// строчные латинские буквы и цифры, всё остальное выбрасывается.
func CanonicalKey(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CountryResolver maps free-text country tokens from either provider to
// one canonical record. Built once at startup, read-only afterwards.
type CountryResolver struct {
	byKey map[string]models.CanonicalCountry
}

func NewCountryResolver() (*CountryResolver, error) {
	var provided []models.CanonicalCountry
	if err := yaml.Unmarshal(providerCountriesYaml, &provided); err != nil {
		return nil, fmt.Errorf("failed to parse provider countries reference: %w", err)
	}

	var translations []models.CanonicalCountry
	if err := yaml.Unmarshal(countryTranslationsYaml, &translations); err != nil {
		return nil, fmt.Errorf("failed to parse country translations reference: %w", err)
	}

	byKey := make(map[string]models.CanonicalCountry, len(provided)+len(translations))
	for _, country := range provided {
		byKey[CanonicalKey(country.Name)] = country
	}
	// записи переводов не перекрывают провайдерские
	for _, country := range translations {
		key := CanonicalKey(country.Name)
		if _, exists := byKey[key]; !exists {
			byKey[key] = country
		}
	}

	return &CountryResolver{byKey: byKey}, nil
}

// Resolve looks a raw token up by its canonical key. A miss is not an
// error: the caller drops the record and counts it.
func (r *CountryResolver) Resolve(rawToken string) (models.CanonicalCountry, bool) {
	country, ok := r.byKey[CanonicalKey(rawToken)]
	return country, ok
}

func (r *CountryResolver) Size() int {
	return len(r.byKey)
}
