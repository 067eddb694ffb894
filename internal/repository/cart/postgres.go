package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/guedes-jr/delizandra-storefront/internal/domain"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) ([]domain.CartItem, error) {
	const q = `
SELECT product_id, variant_key, name, image, unit_price::text, quantity
FROM cart_lines
WHERE session_id = $1
ORDER BY position ASC
`
	rows, err := r.pool.Query(ctx, q, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var price string
		if err := rows.Scan(
			&item.Key.ProductID,
			&item.Key.VariantKey,
			&item.Name,
			&item.Image,
			&price,
			&item.Quantity,
		); err != nil {
			return nil, fmt.Errorf("scan cart line: %w", err)
		}
		item.UnitPrice, err = decimal.NewFromString(price)
		if err != nil {
			return nil, fmt.Errorf("parse unit price: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return items, nil
}

func (r *postgresRepo) Save(ctx context.Context, sessionID string, items []domain.CartItem) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin save cart: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
INSERT INTO carts (session_id, updated_at)
VALUES ($1, now())
ON CONFLICT (session_id) DO UPDATE SET updated_at = now()
`, sessionID); err != nil {
		return fmt.Errorf("upsert cart: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("clear cart lines: %w", err)
	}

	for pos, item := range items {
		if _, err := tx.Exec(ctx, `
INSERT INTO cart_lines (id, session_id, product_id, variant_key, name, image, unit_price, quantity, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, uuid.NewString(), sessionID, item.Key.ProductID, item.Key.VariantKey, item.Name, item.Image, item.UnitPrice.String(), item.Quantity, pos); err != nil {
			return fmt.Errorf("insert cart line: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin delete cart: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM cart_lines WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart lines: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE session_id = $1`, sessionID); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return tx.Commit(ctx)
}
