package repository

import (
	"database/sql"
	"fmt"

	"worktime-tracker/internal/models"
)

type WorkEntryRepository struct {
	db *sql.DB
}

func NewWorkEntryRepository(db *sql.DB) *WorkEntryRepository {
	return &WorkEntryRepository{db: db}
}

// Upsert atomically creates or replaces the entry for (user, date).
// The conditional write happens in a single statement so concurrent
// submissions for the same key converge to one row with the last
// writer's hours.
func (r *WorkEntryRepository) Upsert(userID int64, workDate string, hours float64) (*models.WorkEntry, error) {
	return r.upsert(r.db, userID, workDate, hours)
}

// UpsertTx is Upsert inside a caller-owned transaction.
func (r *WorkEntryRepository) UpsertTx(tx *sql.Tx, userID int64, workDate string, hours float64) (*models.WorkEntry, error) {
	return r.upsert(tx, userID, workDate, hours)
}

func (r *WorkEntryRepository) upsert(q Querier, userID int64, workDate string, hours float64) (*models.WorkEntry, error) {
	query := `
		INSERT INTO work_entries (user_id, work_date, hours)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id, work_date)
		DO UPDATE SET hours = excluded.hours, updated_at = CURRENT_TIMESTAMP
		RETURNING id, user_id, work_date, hours, created_at, updated_at
	`

	var entry models.WorkEntry
	err := q.QueryRow(query, userID, workDate, hours).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkDate,
		&entry.Hours,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert work entry: %w", err)
	}

	return &entry, nil
}

func (r *WorkEntryRepository) FindByID(id int64) (*models.WorkEntry, error) {
	query := `
		SELECT id, user_id, work_date, hours, created_at, updated_at
		FROM work_entries
		WHERE id = ?
	`

	var entry models.WorkEntry
	err := r.db.QueryRow(query, id).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkDate,
		&entry.Hours,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("work entry %d not found: %w", id, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work entry: %w", err)
	}

	return &entry, nil
}

func (r *WorkEntryRepository) FindByUserAndDate(userID int64, workDate string) (*models.WorkEntry, error) {
	query := `
		SELECT id, user_id, work_date, hours, created_at, updated_at
		FROM work_entries
		WHERE user_id = ? AND work_date = ?
	`

	var entry models.WorkEntry
	err := r.db.QueryRow(query, userID, workDate).Scan(
		&entry.ID,
		&entry.UserID,
		&entry.WorkDate,
		&entry.Hours,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get work entry by user and date: %w", err)
	}

	return &entry, nil
}

func (r *WorkEntryRepository) FindByUserAndDateRange(userID int64, startDate, endDate string) ([]*models.WorkEntry, error) {
	query := `
		SELECT id, user_id, work_date, hours, created_at, updated_at
		FROM work_entries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
		ORDER BY work_date
	`

	rows, err := r.db.Query(query, userID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query work entries: %w", err)
	}
	defer rows.Close()

	return scanWorkEntries(rows)
}

// FindAllByDateRange returns every user's entries in the range,
// ordered by user then date, for cross-user dashboards.
func (r *WorkEntryRepository) FindAllByDateRange(startDate, endDate string) ([]*models.WorkEntry, error) {
	query := `
		SELECT id, user_id, work_date, hours, created_at, updated_at
		FROM work_entries
		WHERE work_date BETWEEN ? AND ?
		ORDER BY user_id, work_date
	`

	rows, err := r.db.Query(query, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query work entries by date range: %w", err)
	}
	defer rows.Close()

	return scanWorkEntries(rows)
}

// SumHoursForRange totals the logged hours in the range; 0 when no
// entries exist.
func (r *WorkEntryRepository) SumHoursForRange(userID int64, startDate, endDate string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(hours), 0)
		FROM work_entries
		WHERE user_id = ? AND work_date BETWEEN ? AND ?
	`

	var total float64
	if err := r.db.QueryRow(query, userID, startDate, endDate).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum work entry hours: %w", err)
	}

	return total, nil
}

// MinWorkDate returns the user's first-ever entry date, or "" for a
// user with no history.
func (r *WorkEntryRepository) MinWorkDate(userID int64) (string, error) {
	var date sql.NullString
	err := r.db.QueryRow(
		"SELECT MIN(work_date) FROM work_entries WHERE user_id = ?", userID,
	).Scan(&date)
	if err != nil {
		return "", fmt.Errorf("failed to get first work entry date: %w", err)
	}

	if !date.Valid {
		return "", nil
	}
	return date.String, nil
}

// Delete removes the entry by id. Idempotent: reports whether a row
// was removed.
func (r *WorkEntryRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM work_entries WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete work entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *WorkEntryRepository) DeleteByUserAndDate(userID int64, workDate string) (bool, error) {
	result, err := r.db.Exec(
		"DELETE FROM work_entries WHERE user_id = ? AND work_date = ?", userID, workDate,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete work entry by user and date: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected > 0, nil
}

func scanWorkEntries(rows *sql.Rows) ([]*models.WorkEntry, error) {
	var entries []*models.WorkEntry
	for rows.Next() {
		var entry models.WorkEntry
		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.WorkDate,
			&entry.Hours,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return entries, nil
}
