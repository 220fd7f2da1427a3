package storage

import (
	"context"
	"fmt"

	"dogparks/internal/domain/ratings"
	"dogparks/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Container struct {
	pool    *pgxpool.Pool
	Ratings ratings.Store
}

func NewContainer(db *pgxpool.Pool) *Container {
	return &Container{
		pool:    db,
		Ratings: ratings.NewRepository(db),
	}
}

// Ping reports whether the pool can still reach the database.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}
	return c.pool.Ping(ctx)
}

// Migrate applies the schema in a single transaction.
func (c *Container) Migrate(ctx context.Context) error {
	return c.withTx(ctx, func(q dbx.Querier) error {
		return ratings.Migrate(ctx, q)
	})
}

func (c *Container) withTx(ctx context.Context, fn func(dbx.Querier) error) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil (did you forget to set pool in NewContainer?)")
	}

	tx, err := c.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback(ctx) // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
