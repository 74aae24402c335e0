package main

import (
	"context"
	"errors"
	"log"
	"os"

	"gonumbers_api/config"
	"gonumbers_api/config/values"
	catalogapp "gonumbers_api/internal/catalog/app"
	"gonumbers_api/internal/catalog/business"
	smsrent "gonumbers_api/internal/smsrent/business/services"
	virtnum "gonumbers_api/internal/virtnum/business/services"
	"gonumbers_api/metrics"
	"gonumbers_api/pkg/business/service"
	"gonumbers_api/pkg/dbconnect/postgres"
)

// Точка входа конвейера синхронизации. Запускается внешним
// планировщиком; упавший прогон просто ждёт следующего запуска.
func main() {
	log.Printf("\nStarted catalog sync\n")

	pgConfig := config.GetConfig()
	syncConfig := config.GetSyncConfig()

	resolver, err := business.NewCountryResolver()
	if err != nil {
		log.Fatalf("Failed to build country resolver: %v", err)
	}
	serviceTable, err := business.NewServiceTable()
	if err != nil {
		log.Fatalf("Failed to build service table: %v", err)
	}

	writer := os.Stdout
	retry := service.NewRetry()
	syncMetrics := &metrics.SyncMetrics{}

	ratesClient := business.NewRatesClient(syncConfig.RatesURL, values.RatesValues{
		FallbackRub: 1.0,
		FallbackUsd: 95.0,
	}, retry)

	adapters := []catalogapp.ProviderAdapter{
		smsrent.NewAdapter("", syncConfig.SmsRentApiKey, retry, writer),
		virtnum.NewAdapter("", syncConfig.VirtNumApiKey, retry, syncMetrics, writer),
	}

	pipeline := catalogapp.NewSyncPipeline(
		postgres.NewPgConnector(pgConfig),
		adapters,
		business.NewNormalizer(resolver, serviceTable, writer),
		ratesClient,
		syncConfig,
		syncMetrics,
		writer,
	)

	if err := pipeline.Run(context.Background()); err != nil {
		if errors.Is(err, catalogapp.ErrStoreUnavailable) {
			log.Fatalf("Sync aborted: %v", err)
		}
		// каталог прошлого прогона остаётся на витрине
		log.Printf("Sync failed: %v", err)
		return
	}

	log.Println("Catalog sync finished")
}
