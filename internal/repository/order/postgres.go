package order

import (
	"context"
	"errors"

	"gamestore/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const uniqueViolation = "23505"

const orderColumns = `id::text, customer_key, in_progress, order_date, total,
first_name, last_name, address, city, province, postal_code, phone`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger zerolog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) CreateDraft(ctx context.Context, in CreateDraftInput) (*domain.Order, error) {
	order, err := r.createDraftOnce(ctx, in)
	if err == nil {
		return order, nil
	}

	// Two concurrent submissions can both pass the delete and collide on the
	// one-draft-per-customer index. The later insert supersedes: run the
	// delete-and-insert once more.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		r.logger.Warn().Str("customer_key", in.CustomerKey).Msg("order repo: draft collision, retrying supersede")
		return r.createDraftOnce(ctx, in)
	}
	return nil, err
}

func (r *postgresRepo) createDraftOnce(ctx context.Context, in CreateDraftInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
DELETE FROM orders
WHERE customer_key = $1 AND in_progress
`, in.CustomerKey); err != nil {
		r.logger.Error().Err(err).Msg("order repo: delete stale drafts")
		return nil, err
	}

	var order domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (customer_key, in_progress, order_date, total,
	first_name, last_name, address, city, province, postal_code, phone)
VALUES ($1, true, now(), $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING `+orderColumns,
		in.CustomerKey,
		in.Total,
		in.Shipping.FirstName,
		in.Shipping.LastName,
		in.Shipping.Address,
		in.Shipping.City,
		in.Shipping.Province,
		in.Shipping.PostalCode,
		in.Shipping.Phone,
	).Scan(orderDest(&order)...)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) GetDraft(ctx context.Context, customerKey string) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE customer_key = $1 AND in_progress
`, customerKey).Scan(orderDest(&order)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Msg("order repo: get draft")
		return nil, err
	}
	return &order, nil
}

func (r *postgresRepo) Finalize(ctx context.Context, customerKey, orderID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET in_progress = false
WHERE id = $1 AND customer_key = $2 AND in_progress
`, orderID, customerKey)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("order repo: close draft")
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err := tx.Exec(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, price)
SELECT $1, product_id, quantity, price
FROM cart_lines
WHERE customer_key = $2
`, orderID, customerKey); err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("order repo: copy cart lines")
		return err
	}

	if _, err := tx.Exec(ctx, `
DELETE FROM cart_lines
WHERE customer_key = $1
`, customerKey); err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("order repo: empty cart")
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ListByCustomer(ctx context.Context, customerKey string) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE customer_key = $1 AND NOT in_progress
ORDER BY order_date DESC
`, customerKey)
	if err != nil {
		r.logger.Error().Err(err).Msg("order repo: list")
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(orderDest(&order)...); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("order repo: list rows")
		return nil, err
	}
	return orders, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, customerKey, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT `+orderColumns+`
FROM orders
WHERE id = $1 AND customer_key = $2
`, orderID, customerKey).Scan(orderDest(&order)...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error().Err(err).Str("order_id", orderID).Msg("order repo: get")
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, quantity, price
FROM order_lines
WHERE order_id = $1
`, order.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.Price); err != nil {
			return nil, err
		}
		order.Lines = append(order.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &order, nil
}

func orderDest(o *domain.Order) []any {
	return []any{
		&o.ID,
		&o.CustomerKey,
		&o.InProgress,
		&o.OrderDate,
		&o.Total,
		&o.FirstName,
		&o.LastName,
		&o.Address,
		&o.City,
		&o.Province,
		&o.PostalCode,
		&o.Phone,
	}
}
