package repository

import (
	"database/sql"
	"fmt"

	"worktime-tracker/internal/models"
)

type LocationEntryRepository struct {
	db *sql.DB
}

func NewLocationEntryRepository(db *sql.DB) *LocationEntryRepository {
	return &LocationEntryRepository{db: db}
}

// Upsert atomically creates or replaces the location flag for
// (user, date). The caller is expected to have reconciled the flag
// already; this layer only guarantees the single-row invariant.
func (r *LocationEntryRepository) Upsert(userID int64, workDate string, isOnsite *bool) (*models.LocationEntry, error) {
	return r.upsert(r.db, userID, workDate, isOnsite)
}

// UpsertTx is Upsert inside a caller-owned transaction.
func (r *LocationEntryRepository) UpsertTx(tx *sql.Tx, userID int64, workDate string, isOnsite *bool) (*models.LocationEntry, error) {
	return r.upsert(tx, userID, workDate, isOnsite)
}

func (r *LocationEntryRepository) upsert(q Querier, userID int64, workDate string, isOnsite *bool) (*models.LocationEntry, error) {
	query := `
		INSERT INTO location_entries (user_id, work_date, is_onsite)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, work_date)
		DO UPDATE SET is_onsite = excluded.is_onsite, updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, work_date, is_onsite, created_at, updated_at
	`

	var entry models.LocationEntry
	err := q.QueryRow(query, userID, workDate, isOnsite).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkDate,
		&entry.IsOnsite,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert location entry: %w", err)
	}

	return &entry, nil
}

func (r *LocationEntryRepository) FindByUserAndDate(userID int64, workDate string) (*models.LocationEntry, error) {
	query := `
		SELECT id, user_id, work_date, is_onsite, created_at, updated_at
		FROM location_entries
		WHERE user_id = ? AND work_date = ?
	`

	var entry models.LocationEntry
	err := r.db.QueryRow(query, userID, workDate).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkDate,
		&entry.IsOnsite,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get location entry: %w", err)
	}

	return &entry, nil
}

func (r *LocationEntryRepository) FindByUserAndDateRange(userID int64, startDate, endDate string) ([]*models.LocationEntry, error) {
	query := `
		SELECT id, user_id, work_date, is_onsite, created_at, updated_at
		FROM location_entries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
		ORDER BY work_date
	`

	rows, err := r.db.Query(query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query location entries: %w", err)
	}
	defer rows.Close()

	return scanLocationEntries(rows)
}

func (r *LocationEntryRepository) FindAllByDateRange(startDate, endDate string) ([]*models.LocationEntry, error) {
	query := `
		SELECT id, user_id, work_date, is_onsite, created_at, updated_at
		FROM location_entries
		WHERE work_date BETWEEN ? AND ?
		ORDER BY user_id, work_date
	`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query location entries by date range: %w", err)
	}
	defer rows.Close()

	return scanLocationEntries(rows)
}

func (r *LocationEntryRepository) DeleteByUserAndDate(userID int64, workDate string) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM location_entries WHERE user_id = ? AND work_date = ?", userID, workDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete location entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanLocationEntries(rows *sql.Rows) ([]*models.LocationEntry, error) {
	var entries []*models.LocationEntry
	for rows.Next() {
		var entry models.LocationEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.WorkDate,
			&entry.IsOnsite,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
