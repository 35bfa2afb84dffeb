package cart

import (
	"context"
	"errors"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Add(ctx context.Context, in AddInput) (*domain.CartLine, error) {
	// Single upsert so two concurrent adds of the same product both land.
	const q = `
INSERT INTO cart_lines (customer_key, product_id, quantity, price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (customer_key, product_id) DO UPDATE
SET quantity = cart_lines.quantity + EXCLUDED.quantity,
    price = cart_lines.price + EXCLUDED.price
RETURNING id::text, customer_key, product_id::text, quantity, price, created_at
`
	var line domain.CartLine
	err := r.pool.QueryRow(ctx, q, in.CustomerKey, in.ProductID, in.Quantity, in.Price).Scan(
		&line.ID,
		&line.CustomerKey,
		&line.ProductID,
		&line.Quantity,
		&line.Price,
		&line.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", in.ProductID).Msg("cart repo: add")
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) ChangeQuantity(ctx context.Context, customerKey, lineID string, quantity int) (*domain.CartLine, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock the line so a concurrent edit cannot interleave between the read
	// and the reprice.
	var oldQuantity int
	var storedPrice, unitPrice decimal.Decimal
	err = tx.QueryRow(ctx, `
SELECT cl.quantity, cl.price, p.price
FROM cart_lines cl
JOIN products p ON p.id = cl.product_id
WHERE cl.id = $1 AND cl.customer_key = $2
FOR UPDATE OF cl
`, lineID, customerKey).Scan(&oldQuantity, &storedPrice, &unitPrice)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("line_id", lineID).Msg("cart repo: change quantity select")
		return nil, err
	}

	newPrice := domain.PriceAfterQuantityChange(unitPrice, oldQuantity, storedPrice, quantity)

	var line domain.CartLine
	err = tx.QueryRow(ctx, `
UPDATE cart_lines
SET quantity = $1, price = $2
WHERE id = $3 AND customer_key = $4
RETURNING id::text, customer_key, product_id::text, quantity, price, created_at
`, quantity, newPrice, lineID, customerKey).Scan(
		&line.ID,
		&line.CustomerKey,
		&line.ProductID,
		&line.Quantity,
		&line.Price,
		&line.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("line_id", lineID).Msg("cart repo: change quantity update")
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &line, nil
}

func (r *postgresRepo) Delete(ctx context.Context, customerKey, lineID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_lines
WHERE id = $1 AND customer_key = $2
`, lineID, customerKey)
	if err != nil {
		r.logger.Error().Err(err).Str("line_id", lineID).Msg("cart repo: delete")
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerKey string) ([]domain.CartLine, error) {
	const q = `
SELECT id::text, customer_key, product_id::text, quantity, price, created_at
FROM cart_lines
WHERE customer_key = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, customerKey)
	if err != nil {
		r.logger.Error().Err(err).Msg("cart repo: list")
		return nil, err
	}
	defer rows.Close()

	var lines []domain.CartLine
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ID, &line.CustomerKey, &line.ProductID, &line.Quantity, &line.Price, &line.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("cart repo: list rows")
		return nil, err
	}
	return lines, nil
}

func (r *postgresRepo) Total(ctx context.Context, customerKey string) (int, decimal.Decimal, error) {
	var count int
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*), COALESCE(SUM(price), 0)
FROM cart_lines
WHERE customer_key = $1
`, customerKey).Scan(&count, &total)
	if err != nil {
		r.logger.Error().Err(err).Msg("cart repo: total")
		return 0, decimal.Zero, err
	}
	return count, total, nil
}
