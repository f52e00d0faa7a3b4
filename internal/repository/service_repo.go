package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"kommotirio/internal/db"
)

type ServiceRepository struct {
	DB *sql.DB
}

func NewServiceRepository(database *sql.DB) *ServiceRepository {
	return &ServiceRepository{DB: database}
}

func (r *ServiceRepository) List(ctx context.Context) ([]db.SalonService, error) {
	query := `
		SELECT id, name_el, name_en, category, duration_minutes, price_cents
		FROM salon_services
		ORDER BY category, name_en`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing salon services: %w", err)
	}
	defer rows.Close()

	return scanSalonServices(rows)
}

// GetByIDs returns the catalog entries for the given ids; unknown ids are
// simply absent from the result.
func (r *ServiceRepository) GetByIDs(ctx context.Context, ids []int) ([]db.SalonService, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, name_el, name_en, category, duration_minutes, price_cents
		FROM salon_services
		WHERE id = ANY($1)
		ORDER BY category, name_en`

	rows, err := r.DB.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("error querying salon services by ids: %w", err)
	}
	defer rows.Close()

	return scanSalonServices(rows)
}

func scanSalonServices(rows *sql.Rows) ([]db.SalonService, error) {
	var services []db.SalonService
	for rows.Next() {
		var s db.SalonService
		if err := rows.Scan(&s.ID, &s.NameEL, &s.NameEN, &s.Category, &s.DurationMinutes, &s.PriceCents); err != nil {
			return nil, fmt.Errorf("error scanning salon service: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating salon service rows: %w", err)
	}
	return services, nil
}
