package repository

import (
	"context"

	"partner_cabinet/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type NewsRepository struct {
	db *pgxpool.Pool
}

func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{db: db}
}

// Create inserts a news entry.
func (r *NewsRepository) Create(ctx context.Context, n *domain.News) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO news (title, excerpt, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		n.Title, n.Excerpt, n.Body,
	).Scan(&n.ID, &n.CreatedAt)
}

// ListRecent returns the latest news entries for the cabinet dashboard.
func (r *NewsRepository) ListRecent(ctx context.Context, limit int) ([]domain.News, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, title, excerpt, body, created_at
		 FROM news ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.News
	for rows.Next() {
		var n domain.News
		if err := rows.Scan(&n.ID, &n.Title, &n.Excerpt, &n.Body, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}
