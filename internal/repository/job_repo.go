package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(database *sql.DB) *JobRepository {
	return &JobRepository{DB: database}
}

// GetConfirmedAppointmentIDsPastEnd returns ids of confirmed appointments
// whose end (start plus duration) is already in the past.
func (r *JobRepository) GetConfirmedAppointmentIDsPastEnd(ctx context.Context) ([]int, error) {
	query := `
		SELECT id FROM appointments
		WHERE status = 'confirmed'
		  AND appointment_date + start_time + (duration_minutes || ' minutes')::interval < NOW()`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying confirmed appointments past end: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning appointment ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateAppointmentStatuses moves the given appointments to a new status and
// touches updated_at.
func (r *JobRepository) UpdateAppointmentStatuses(ctx context.Context, ids []int, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating appointment statuses: %w", err)
	}
	return result.RowsAffected()
}

// DeletePendingOlderThan removes pending appointments created before the given time.
func (r *JobRepository) DeletePendingOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM appointments WHERE status = 'pending' AND created_at < $1`
	result, err := r.DB.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("error deleting stale pending appointments: %w", err)
	}
	return result.RowsAffected()
}
