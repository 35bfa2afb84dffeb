package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
}

// Apply inserts a demo game catalog for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Starfall Tactics",
			Description: "Turn-based fleet combat across a procedurally generated galaxy",
			Price:       "59.99",
		},
		{
			Name:        "Dungeon of the Lost Amulet",
			Description: "Classic roguelike with permadeath and far too many traps",
			Price:       "24.99",
		},
		{
			Name:        "Kart Frenzy Turbo",
			Description: "Split-screen kart racing with power-ups and bad intentions",
			Price:       "39.99",
		},
		{
			Name:        "Harvest Hollow",
			Description: "Cozy farming sim set in a valley that is definitely not haunted",
			Price:       "19.99",
		},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price)
VALUES ($1, $2, $3::numeric)
ON CONFLICT (name) DO UPDATE
SET description = EXCLUDED.description,
    price = EXCLUDED.price
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price)
	return err
}
