package database

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

type DB struct {
	*sql.DB
	logger *zap.Logger
}

func New(storagePath string, logger *zap.Logger) (*DB, error) {
	db, err := sql.Open("sqlite", storagePath+"?_foreign_keys=1&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &DB{
		DB:     db,
		logger: logger,
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Database connection established", zap.String("path", storagePath))
	return database, nil
}

func (db *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		// Daily work entries, one row per (user, date). The unique key is
		// what makes the ON CONFLICT upsert work.
		`CREATE TABLE IF NOT EXISTS work_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			work_date TEXT NOT NULL,
			hours REAL NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, work_date)
		)`,
		// Onsite/remote flag per (user, date), independent of work_entries.
		`CREATE TABLE IF NOT EXISTS location_entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			work_date TEXT NOT NULL,
			is_onsite BOOLEAN,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, work_date)
		)`,
		`CREATE TABLE IF NOT EXISTS personal_holidays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			holiday_date TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(user_id, holiday_date)
		)`,
		`CREATE TABLE IF NOT EXISTS public_holidays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			holiday_date TEXT NOT NULL UNIQUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_work_entries_user ON work_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_work_entries_date ON work_entries(work_date)`,
		`CREATE INDEX IF NOT EXISTS idx_location_entries_user ON location_entries(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_location_entries_date ON location_entries(work_date)`,
		`CREATE INDEX IF NOT EXISTS idx_personal_holidays_user ON personal_holidays(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_personal_holidays_date ON personal_holidays(holiday_date)`,
		`CREATE INDEX IF NOT EXISTS idx_public_holidays_date ON public_holidays(holiday_date)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	db.logger.Info("Database migrations completed")
	return nil
}

func (db *DB) Close() error {
	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.logger.Info("Database connection closed")
	return nil
}
