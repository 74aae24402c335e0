package values

type Config interface {
}

// PricingValues управляет розничной наценкой и округлением витринной цены.
type PricingValues struct {
	Margin    float64 `yaml:"margin"`
	RoundUnit int     `yaml:"round-unit"`
}

// RatesValues holds the static fallback exchange rates used when the
// rate source is unreachable at run start.
type RatesValues struct {
	FallbackRub float64 `yaml:"fallback-rub"`
	FallbackUsd float64 `yaml:"fallback-usd"`
}
