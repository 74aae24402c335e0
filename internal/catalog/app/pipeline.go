package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"gonumbers_api/config"
	"gonumbers_api/internal/catalog/business"
	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/internal/catalog/storage"
	"gonumbers_api/metrics"
	"gonumbers_api/migrations/infrastructure"
	"gonumbers_api/pkg/dbconnect"
	"gonumbers_api/pkg/dbconnect/migration"
	"gonumbers_api/pkg/logger"
)

// ErrStoreUnavailable — единственная ошибка, с которой процесс обязан
// выйти ненулевым кодом.
var ErrStoreUnavailable = errors.New("catalog store is unavailable")

type ProviderAdapter interface {
	ProviderID() string
	FetchOfferings(ctx context.Context) ([]models.RawOffering, error)
}

// SyncPipeline — оркестратор одного прогона: курсы → стор → провайдеры
// (конкурентно) → нормализация → слияние → публикация → отчёт.
// Прогон либо публикует целиком, либо не трогает прошлый каталог.
type SyncPipeline struct {
	connector  dbconnect.DbConnector
	adapters   []ProviderAdapter
	normalizer *business.Normalizer
	rates      *business.RatesClient
	cfg        *config.SyncConfig
	metrics    *metrics.SyncMetrics
	writer     io.Writer
	log        *logger.BaseLogger
}

func NewSyncPipeline(
	connector dbconnect.DbConnector,
	adapters []ProviderAdapter,
	normalizer *business.Normalizer,
	rates *business.RatesClient,
	cfg *config.SyncConfig,
	m *metrics.SyncMetrics,
	writer io.Writer,
) *SyncPipeline {
	return &SyncPipeline{
		connector:  connector,
		adapters:   adapters,
		normalizer: normalizer,
		rates:      rates,
		cfg:        cfg,
		metrics:    m,
		writer:     writer,
		log:        logger.NewLogger(writer, "[pipeline]"),
	}
}

func (p *SyncPipeline) Run(ctx context.Context) error {
	start := time.Now()

	currencyRates := p.rates.FetchRates()
	p.log.Log("rates for this run: rub=%.4f usd=%.4f", currencyRates.Rub, currencyRates.Usd)

	db, err := p.connector.Connect()
	if err != nil {
		metrics.RecordRun("store_unavailable", time.Since(start))
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer db.Close()

	migrationApply := []migration.MigrationInterface{
		&infrastructure.MigrationsSchema{},
		&infrastructure.CatalogSchema{},
	}
	for _, m := range migrationApply {
		if err := m.UpMigration(db); err != nil {
			metrics.RecordRun("migration_failed", time.Since(start))
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	raw, err := p.fetchAll(ctx)
	if err != nil {
		metrics.RecordRun("fetch_failed", time.Since(start))
		return err
	}
	p.metrics.RawCount.Store(int32(len(raw)))

	run := &business.RunContext{
		Rates:     currencyRates,
		Margin:    p.cfg.Margin,
		RoundUnit: p.cfg.RoundUnit,
		Metrics:   p.metrics,
	}
	entries := business.MergeOfferings(p.normalizer.Normalize(run, raw))

	repo := storage.NewCatalogRepository(db, p.writer)
	published, err := repo.Publish(ctx, entries, p.metrics)
	if err != nil {
		// прошлый каталог остаётся живым, просто ждём следующего запуска
		metrics.RecordRun("publish_failed", time.Since(start))
		return fmt.Errorf("publish failed, previous catalog left intact: %w", err)
	}

	p.report(published, time.Since(start))
	return nil
}

// fetchAll опрашивает провайдеров конкурентно. Полный провал любого из
// них (после ретраев) отменяет прогон до публикации.
func (p *SyncPipeline) fetchAll(ctx context.Context) ([]models.RawOffering, error) {
	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		raw []models.RawOffering

		firstErr error
	)

	wg.Add(len(p.adapters))
	for _, adapter := range p.adapters {
		go func(adapter ProviderAdapter) {
			defer wg.Done()

			offerings, err := adapter.FetchOfferings(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				p.log.Log("provider '%s' fetch failed: %v", adapter.ProviderID(), err)
				if firstErr == nil {
					firstErr = fmt.Errorf("provider '%s' fetch failed: %w", adapter.ProviderID(), err)
				}
				return
			}
			raw = append(raw, offerings...)
		}(adapter)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return raw, nil
}

func (p *SyncPipeline) report(published int, elapsed time.Duration) {
	p.log.Log("run finished in %s: raw=%d formatted=%d unmapped_countries=%d unknown_services=%d dropped_by_price=%d skipped_services=%d failed_inserts=%d published=%d",
		elapsed,
		p.metrics.RawCount.Load(),
		p.metrics.FormattedCount.Load(),
		p.metrics.UnmappedCountries.Load(),
		p.metrics.UnknownServices.Load(),
		p.metrics.DroppedByPrice.Load(),
		p.metrics.SkippedServices.Load(),
		p.metrics.FailedInserts.Load(),
		published)

	metrics.RecordPublished(published)
	metrics.RecordDropped("unmapped_country", int(p.metrics.UnmappedCountries.Load()))
	metrics.RecordDropped("non_positive_price", int(p.metrics.DroppedByPrice.Load()))
	metrics.RecordDropped("failed_insert", int(p.metrics.FailedInserts.Load()))
	metrics.RecordRun("success", elapsed)
}
