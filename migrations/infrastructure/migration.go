package infrastructure

import (
	"database/sql"
	"fmt"
	"log"
)

const (
	CatalogSchemaMigration = "catalog.schema"
)

func checkAndSkipMigration(db *sql.DB, migrationName string) (bool, error) {
	var migrationExists bool
	err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM migrations.migrations WHERE name = $1)", migrationName).Scan(&migrationExists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	if migrationExists {
		log.Printf("Migration '%s' already completed. Skipping.", migrationName)
	}
	return migrationExists, nil
}

func executeAndMarkMigration(db *sql.DB, query string, migrationName string) error {
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to apply '%s' migration: %w", migrationName, err)
	}
	if _, err := db.Exec("INSERT INTO migrations.migrations (name, time) VALUES ($1, current_timestamp)", migrationName); err != nil {
		return fmt.Errorf("failed to mark '%s' migration as complete: %w", migrationName, err)
	}
	return nil
}

type MigrationsSchema struct{}

func (m *MigrationsSchema) UpMigration(db *sql.DB) error {
	query := `
	CREATE SCHEMA IF NOT EXISTS migrations;
	CREATE TABLE IF NOT EXISTS migrations.migrations (
		name VARCHAR(255) PRIMARY KEY,
		time TIMESTAMP NOT NULL
	);`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create migrations registry: %w", err)
	}
	return nil
}

type CatalogSchema struct{}

// UpMigration создаёт схему каталога. Сама живая таблица не создаётся
// здесь: её порождает первый успешный RENAME из тени.
func (m *CatalogSchema) UpMigration(db *sql.DB) error {
	if ok, err := checkAndSkipMigration(db, CatalogSchemaMigration); err != nil {
		return err
	} else if ok {
		return nil
	}
	query := `
	CREATE SCHEMA IF NOT EXISTS catalog;`
	if err := executeAndMarkMigration(db, query, CatalogSchemaMigration); err != nil {
		return err
	}
	log.Printf("Migration '%s' completed successfully.", CatalogSchemaMigration)
	return nil
}
