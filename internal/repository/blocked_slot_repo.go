package repository

import (
	"context"
	"database/sql"
	"fmt"

	"kommotirio/internal/db"
)

type BlockedSlotRepository struct {
	DB *sql.DB
}

func NewBlockedSlotRepository(database *sql.DB) *BlockedSlotRepository {
	return &BlockedSlotRepository{DB: database}
}

// ListCoveringDate returns the blocks whose inclusive date range contains the date.
func (r *BlockedSlotRepository) ListCoveringDate(ctx context.Context, date string) ([]db.BlockedSlot, error) {
	query := `
		SELECT id, start_date, end_date,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       COALESCE(reason, ''), created_at
		FROM blocked_slots
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY start_date, start_time`

	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying blocked slots for date %s: %w", date, err)
	}
	defer rows.Close()

	return scanBlockedSlots(rows)
}

func (r *BlockedSlotRepository) List(ctx context.Context) ([]db.BlockedSlot, error) {
	query := `
		SELECT id, start_date, end_date,
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       COALESCE(reason, ''), created_at
		FROM blocked_slots
		ORDER BY start_date DESC, start_time`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing blocked slots: %w", err)
	}
	defer rows.Close()

	return scanBlockedSlots(rows)
}

func scanBlockedSlots(rows *sql.Rows) ([]db.BlockedSlot, error) {
	var blocks []db.BlockedSlot
	for rows.Next() {
		var b db.BlockedSlot
		if err := rows.Scan(&b.ID, &b.StartDate, &b.EndDate, &b.StartTime, &b.EndTime, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning blocked slot: %w", err)
		}
		blocks = append(blocks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating blocked slot rows: %w", err)
	}
	return blocks, nil
}

func (r *BlockedSlotRepository) Create(ctx context.Context, b *db.BlockedSlot) error {
	query := `
		INSERT INTO blocked_slots (start_date, end_date, start_time, end_time, reason, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		RETURNING id, created_at`
	return r.DB.QueryRowContext(ctx, query,
		b.StartDate, b.EndDate, b.StartTime, b.EndTime, b.Reason,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *BlockedSlotRepository) Delete(ctx context.Context, id int) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM blocked_slots WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting blocked slot %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("blocked slot %d not found", id)
	}
	return nil
}
