package repository

import (
	"context"

	"partner_cabinet/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PurchaseRepository struct {
	db *pgxpool.Pool
}

func NewPurchaseRepository(db *pgxpool.Pool) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// ListByUser returns a user's purchases, most recent first.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Purchase, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.user_id, p.product_id, pr.name, p.quantity, p.amount, p.date
		 FROM purchases p
		 JOIN products pr ON pr.id = p.product_id
		 WHERE p.user_id = $1
		 ORDER BY p.date DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []domain.Purchase
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProductID, &p.Product,
			&p.Quantity, &p.Amount, &p.Date); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// Create records a purchase.
func (r *PurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO purchases (user_id, product_id, quantity, amount)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, date`,
		p.UserID, p.ProductID, p.Quantity, p.Amount,
	).Scan(&p.ID, &p.Date)
}
