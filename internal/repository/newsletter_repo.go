package repository

import (
	"context"
	"database/sql"
	"fmt"
)

type NewsletterRepository struct {
	DB *sql.DB
}

func NewNewsletterRepository(database *sql.DB) *NewsletterRepository {
	return &NewsletterRepository{DB: database}
}

// Subscribe stores a subscriber. Re-subscribing the same address is a no-op
// and reports false.
func (r *NewsletterRepository) Subscribe(ctx context.Context, email, language string) (bool, error) {
	query := `
		INSERT INTO newsletter_subscribers (email, language, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (email) DO NOTHING`
	result, err := r.DB.ExecContext(ctx, query, email, language)
	if err != nil {
		return false, fmt.Errorf("error subscribing %s to newsletter: %w", email, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}
