package storage

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gonumbers_api/internal/catalog/models"
	"gonumbers_api/metrics"
)

func testEntries() []models.CatalogEntry {
	return []models.CatalogEntry{
		{Identity: "smsrent_tg_russia_any", Service: "tg", ServiceName: "Телеграм", CountryName: "Россия", CountryCode: "7", Operator: "any", Price: 2100, Priority: 1, Available: true, SuccessRate: 90, ProviderID: "smsrent"},
		{Identity: "virtnum_tg_russia_any", Service: "tg", ServiceName: "Телеграм", CountryName: "Россия", CountryCode: "7", Operator: "any", Price: 1900, Priority: 1, Available: true, SuccessRate: 85, ProviderID: "virtnum"},
		{Identity: "smsrent_wa_russia_any", Service: "wa", ServiceName: "Вотсап", CountryName: "Россия", CountryCode: "7", Operator: "any", Price: 1500, Priority: 2, Available: false, SuccessRate: 70, ProviderID: "smsrent"},
	}
}

func expectShadowReset(mock sqlmock.Sqlmock) {
	mock.ExpectExec("DROP TABLE IF EXISTS catalog.entries_shadow").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE TABLE catalog.entries_shadow").WillReturnResult(sqlmock.NewResult(0, 0))
}

func expectSwap(mock sqlmock.Sqlmock) {
	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS catalog.entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER TABLE catalog.entries_shadow RENAME TO entries").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("ALTER INDEX catalog.entries_shadow_identity_idx RENAME TO entries_identity_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX entries_service_name_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX entries_availability_idx").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()
}

func TestPublishWritesShadowThenSwapsAtomically(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectShadowReset(mock)
	prepared := mock.ExpectPrepare("INSERT INTO catalog.entries_shadow")
	for range testEntries() {
		prepared.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	expectSwap(mock)

	repo := NewCatalogRepository(db, io.Discard)
	syncMetrics := &metrics.SyncMetrics{}

	published, err := repo.Publish(context.Background(), testEntries(), syncMetrics)
	require.NoError(t, err)
	assert.Equal(t, 3, published)
	assert.Equal(t, int32(0), syncMetrics.FailedInserts.Load())
	assert.Equal(t, int32(3), syncMetrics.PublishedCount.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishToleratesIndividualRowFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectShadowReset(mock)
	prepared := mock.ExpectPrepare("INSERT INTO catalog.entries_shadow")
	prepared.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	prepared.ExpectExec().WillReturnError(errors.New("value too long for type character varying"))
	prepared.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	expectSwap(mock)

	repo := NewCatalogRepository(db, io.Discard)
	syncMetrics := &metrics.SyncMetrics{}

	published, err := repo.Publish(context.Background(), testEntries(), syncMetrics)
	require.NoError(t, err)
	// одна кривая строка не валит публикацию
	assert.Equal(t, 2, published)
	assert.Equal(t, int32(1), syncMetrics.FailedInserts.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublishAbortsWhenSwapFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	expectShadowReset(mock)
	prepared := mock.ExpectPrepare("INSERT INTO catalog.entries_shadow")
	for range testEntries() {
		prepared.ExpectExec().WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectBegin()
	mock.ExpectExec("DROP TABLE IF EXISTS catalog.entries").WillReturnError(errors.New("deadlock detected"))
	mock.ExpectRollback()

	repo := NewCatalogRepository(db, io.Discard)
	syncMetrics := &metrics.SyncMetrics{}

	_, err = repo.Publish(context.Background(), testEntries(), syncMetrics)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "shadow swap failed")
	// счётчик публикации не трогаем при провале
	assert.Equal(t, int32(0), syncMetrics.PublishedCount.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByServiceOrdersByPriority(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	columns := []string{"identity", "service", "service_name", "country_name", "country_code", "operator", "price", "priority", "available", "success_rate", "provider_id"}
	mock.ExpectQuery("SELECT (.+) FROM catalog.entries").
		WithArgs("Телеграм").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("virtnum_tg_russia_any", "tg", "Телеграм", "Россия", "7", "any", 1900, 1, true, 85.0, "virtnum").
			AddRow("smsrent_tg_russia_any", "tg", "Телеграм", "Россия", "7", "any", 2100, 1, true, 90.0, "smsrent"))

	repo := NewCatalogRepository(db, io.Discard)
	entries, err := repo.FindByService(context.Background(), "Телеграм")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1900, entries[0].Price)
	assert.Equal(t, "smsrent", entries[1].ProviderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountEntries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(412))

	repo := NewCatalogRepository(db, io.Discard)
	count, err := repo.CountEntries(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 412, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
