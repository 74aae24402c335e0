package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/metrics"
	"gonumbers_api/pkg/logger"
)

const (
	liveTable   = "catalog.entries"
	shadowTable = "catalog.entries_shadow"
)

// CatalogRepository владеет живой таблицей каталога и её теневой копией.
// Публикация всегда идёт через тень и один атомарный RENAME: читатель
// видит либо прошлое поколение целиком, либо новое целиком.
type CatalogRepository struct {
	db  *sql.DB
	log *logger.BaseLogger
}

func NewCatalogRepository(db *sql.DB, writer io.Writer) *CatalogRepository {
	return &CatalogRepository{
		db:  db,
		log: logger.NewLogger(writer, "[catalog.storage]"),
	}
}

// Publish заливает набор позиций в тень и атомарно подменяет живую
// таблицу. Ошибка отдельной строки не прерывает заливку: строка
// логируется, считается и пропускается.
func (r *CatalogRepository) Publish(ctx context.Context, entries []models.CatalogEntry, m *metrics.SyncMetrics) (int, error) {
	if err := r.resetShadow(ctx); err != nil {
		return 0, err
	}

	inserted, err := r.fillShadow(ctx, entries, m)
	if err != nil {
		return 0, err
	}

	if err := r.swap(ctx); err != nil {
		return 0, fmt.Errorf("shadow swap failed: %w", err)
	}

	m.PublishedCount.Store(int32(inserted))
	return inserted, nil
}

func (r *CatalogRepository) resetShadow(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+shadowTable); err != nil {
		return fmt.Errorf("failed to drop shadow table: %w", err)
	}

	createQuery := `
	CREATE TABLE ` + shadowTable + ` (
		identity VARCHAR(255) NOT NULL,
		service VARCHAR(64) NOT NULL,
		service_name VARCHAR(255) NOT NULL,
		country_name VARCHAR(255) NOT NULL,
		country_code VARCHAR(16) NOT NULL,
		operator VARCHAR(64) NOT NULL,
		price INT NOT NULL CHECK (price > 0),
		priority INT NOT NULL,
		available BOOLEAN NOT NULL,
		success_rate REAL,
		provider_id VARCHAR(32) NOT NULL
	);
	CREATE UNIQUE INDEX entries_shadow_identity_idx ON ` + shadowTable + ` (identity);`
	if _, err := r.db.ExecContext(ctx, createQuery); err != nil {
		return fmt.Errorf("failed to create shadow table: %w", err)
	}
	return nil
}

func (r *CatalogRepository) fillShadow(ctx context.Context, entries []models.CatalogEntry, m *metrics.SyncMetrics) (int, error) {
	stmt, err := r.db.PrepareContext(ctx, `
		INSERT INTO `+shadowTable+`
		(identity, service, service_name, country_name, country_code, operator, price, priority, available, success_rate, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare shadow insert: %w", err)
	}
	defer stmt.Close()

	inserted := 0
	for _, e := range entries {
		_, err := stmt.ExecContext(ctx,
			e.Identity, e.Service, e.ServiceName, e.CountryName, e.CountryCode,
			e.Operator, e.Price, e.Priority, e.Available, e.SuccessRate, e.ProviderID)
		if err != nil {
			// одна кривая позиция не должна блокировать остальные тысячи
			r.log.Log("insert failed for '%s': %v", e.Identity, err)
			m.FailedInserts.Add(1)
			continue
		}
		inserted++
	}
	return inserted, nil
}

// swap — единственная точка линеаризации публикации. DDL в Postgres
// транзакционен: до COMMIT читатели работают с прошлым поколением.
func (r *CatalogRepository) swap(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		"DROP TABLE IF EXISTS " + liveTable,
		"ALTER TABLE " + shadowTable + " RENAME TO entries",
		"ALTER INDEX catalog.entries_shadow_identity_idx RENAME TO entries_identity_idx",
		"CREATE INDEX entries_service_name_idx ON " + liveTable + " (service_name)",
		"CREATE INDEX entries_availability_idx ON " + liveTable + " (service_name, country_name, available)",
	}
	for _, query := range statements {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("swap statement failed: %w", err)
		}
	}

	return tx.Commit()
}

// FindByService возвращает позиции по локализованному имени сервиса,
// в порядке приоритета витрины.
func (r *CatalogRepository) FindByService(ctx context.Context, serviceName string) ([]models.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT identity, service, service_name, country_name, country_code, operator, price, priority, available, success_rate, provider_id
		FROM `+liveTable+`
		WHERE service_name = $1
		ORDER BY priority, price`, serviceName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// FindAvailable возвращает доступные позиции пары (сервис, страна).
func (r *CatalogRepository) FindAvailable(ctx context.Context, serviceName, countryName string) ([]models.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT identity, service, service_name, country_name, country_code, operator, price, priority, available, success_rate, provider_id
		FROM `+liveTable+`
		WHERE service_name = $1 AND country_name = $2 AND available = TRUE
		ORDER BY price`, serviceName, countryName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *CatalogRepository) CountEntries(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+liveTable).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func scanEntries(rows *sql.Rows) ([]models.CatalogEntry, error) {
	var entries []models.CatalogEntry
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.Identity, &e.Service, &e.ServiceName, &e.CountryName, &e.CountryCode,
			&e.Operator, &e.Price, &e.Priority, &e.Available, &e.SuccessRate, &e.ProviderID); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
