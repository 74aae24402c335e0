package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"gonumbers_api/config/values"
)

type Config interface {
}

type ProviderConfig struct {
	ApiKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type AppConfig struct {
	SmsRent  ProviderConfig       `yaml:"smsrent"`
	VirtNum  ProviderConfig       `yaml:"virtnum"`
	Pricing  values.PricingValues `yaml:"pricing"`
	Rates    values.RatesValues   `yaml:"rates"`
	Postgres PostgresConfig       `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	return config, nil
}
