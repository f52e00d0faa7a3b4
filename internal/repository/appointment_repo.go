package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"kommotirio/internal/db"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(database *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: database}
}

// ListActiveForDate returns the appointments that occupy the calendar on the
// given date: pending and confirmed ones, in ascending start time.
func (r *AppointmentRepository) ListActiveForDate(ctx context.Context, date string) ([]db.Appointment, error) {
	query := `
		SELECT id, code, customer_name, customer_email, customer_phone,
		       appointment_date, to_char(start_time, 'HH24:MI'), duration_minutes,
		       service_names, status, language, created_at, updated_at
		FROM appointments
		WHERE appointment_date = $1 AND status IN ('pending', 'confirmed')
		ORDER BY start_time`

	rows, err := r.DB.QueryContext(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments for date %s: %w", date, err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		var a db.Appointment
		if err := rows.Scan(
			&a.ID, &a.Code, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
			&a.AppointmentDate, &a.StartTime, &a.DurationMinutes,
			&a.ServiceNames, &a.Status, &a.Language, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointment rows: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, a *db.Appointment) error {
	query := `
		INSERT INTO appointments
		(code, customer_name, customer_email, customer_phone, appointment_date, start_time,
		 duration_minutes, service_names, status, language, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at`
	return r.DB.QueryRowContext(ctx, query,
		a.Code,
		a.CustomerName,
		a.CustomerEmail,
		a.CustomerPhone,
		a.AppointmentDate,
		a.StartTime,
		a.DurationMinutes,
		a.ServiceNames,
		a.Status,
		a.Language,
		a.CreatedAt,
		a.UpdatedAt,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *AppointmentRepository) GetByCode(ctx context.Context, code, email string) (*db.Appointment, error) {
	var a db.Appointment
	query := `
		SELECT id, code, customer_name, customer_email, customer_phone,
		       appointment_date, to_char(start_time, 'HH24:MI'), duration_minutes,
		       service_names, status, language, created_at, updated_at
		FROM appointments
		WHERE code = $1 AND customer_email = $2`
	err := r.DB.QueryRowContext(ctx, query, code, email).Scan(
		&a.ID, &a.Code, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
		&a.AppointmentDate, &a.StartTime, &a.DurationMinutes,
		&a.ServiceNames, &a.Status, &a.Language, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment with code '%s' and email '%s' not found: %w", code, email, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return &a, nil
}

func (r *AppointmentRepository) GetByCodeOnly(ctx context.Context, code string) (*db.Appointment, error) {
	var a db.Appointment
	query := `
		SELECT id, code, customer_name, customer_email, customer_phone,
		       appointment_date, to_char(start_time, 'HH24:MI'), duration_minutes,
		       service_names, status, language, created_at, updated_at
		FROM appointments
		WHERE code = $1`
	err := r.DB.QueryRowContext(ctx, query, code).Scan(
		&a.ID, &a.Code, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
		&a.AppointmentDate, &a.StartTime, &a.DurationMinutes,
		&a.ServiceNames, &a.Status, &a.Language, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("appointment with code '%s' not found: %w", code, err)
		}
		return nil, fmt.Errorf("error querying appointment: %w", err)
	}
	return &a, nil
}

// UpdateStatus moves an appointment to the given status and returns the stored value.
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, code, status string) (string, error) {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE code = $2 RETURNING status`
	var stored string
	if err := r.DB.QueryRowContext(ctx, query, status, code).Scan(&stored); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("appointment with code '%s' not found: %w", code, err)
		}
		return "", fmt.Errorf("error updating appointment status: %w", err)
	}
	return stored, nil
}

// List returns appointments filtered by optional date and status, newest first.
func (r *AppointmentRepository) List(ctx context.Context, date, status string) ([]db.Appointment, error) {
	query := `
	SELECT id, code, customer_name, customer_email, customer_phone,
	       appointment_date, to_char(start_time, 'HH24:MI'), duration_minutes,
	       service_names, status, language, created_at, updated_at
	FROM appointments
	WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if date != "" {
		query += " AND appointment_date = $" + strconv.Itoa(idx)
		args = append(args, date)
		idx++
	}
	if status != "" {
		query += " AND status = $" + strconv.Itoa(idx)
		args = append(args, status)
		idx++
	}
	query += " ORDER BY appointment_date DESC, start_time DESC"

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	defer rows.Close()

	var appointments []db.Appointment
	for rows.Next() {
		var a db.Appointment
		if err := rows.Scan(
			&a.ID, &a.Code, &a.CustomerName, &a.CustomerEmail, &a.CustomerPhone,
			&a.AppointmentDate, &a.StartTime, &a.DurationMinutes,
			&a.ServiceNames, &a.Status, &a.Language, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("error scanning appointment: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating appointment rows: %w", err)
	}
	return appointments, nil
}
