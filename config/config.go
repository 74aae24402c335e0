package config

import (
	"os"
	"strconv"
)

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func GetConfig() *PostgresConfig {
	return &PostgresConfig{
		Host:     getEnv("POSTGRES_HOST", "localhost"),
		Port:     getEnv("POSTGRES_PORT", "5432"),
		User:     getEnv("POSTGRES_USER", "postgres"),
		Password: getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:   getEnv("POSTGRES_NAME", "postgres"),
	}
}

// SyncConfig собирает всё, что нужно одному прогону синхронизации каталога.
type SyncConfig struct {
	SmsRentApiKey string
	VirtNumApiKey string
	RatesURL      string
	Margin        float64
	RoundUnit     int
}

func GetSyncConfig() *SyncConfig {
	return &SyncConfig{
		SmsRentApiKey: getEnv("SMSRENT_API_KEY", ""),
		VirtNumApiKey: getEnv("VIRTNUM_API_KEY", ""),
		RatesURL:      getEnv("RATES_URL", ""),
		Margin:        getEnvFloat("CATALOG_MARGIN", 0.4),
		RoundUnit:     getEnvInt("CATALOG_ROUND_UNIT", 100),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
