package domain

import "time"

type Purchase struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	ProductID int64     `db:"product_id" json:"product_id"`
	Product   string    `db:"product_name" json:"product"`
	Quantity  int       `db:"quantity" json:"quantity"`
	Amount    float64   `db:"amount" json:"amount"`
	Date      time.Time `db:"date" json:"date"`
}
