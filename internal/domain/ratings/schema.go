package ratings

import (
	"context"
	"fmt"

	"dogparks/internal/infra/dbx"
)

// migrations run in order on every start. Each one is idempotent, and the
// ALTERs bring a four-column parks_table from older deployments up to date.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS parks_table (
        yelp_id       TEXT PRIMARY KEY,
        park_name     TEXT NOT NULL,
        total_ratings BIGINT NOT NULL DEFAULT 0 CHECK (total_ratings >= 0),
        total_votes   BIGINT NOT NULL DEFAULT 0 CHECK (total_votes >= 0),
        created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
        updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
    )`,
	`ALTER TABLE parks_table ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
	`ALTER TABLE parks_table ADD COLUMN IF NOT EXISTS updated_at TIMESTAMPTZ NOT NULL DEFAULT now()`,
	`CREATE UNIQUE INDEX IF NOT EXISTS parks_table_yelp_id_key ON parks_table (yelp_id)`,
	`UPDATE parks_table SET total_ratings = 0 WHERE total_ratings IS NULL`,
	`UPDATE parks_table SET total_votes = 0 WHERE total_votes IS NULL`,
	`ALTER TABLE parks_table ALTER COLUMN total_ratings SET DEFAULT 0`,
	`ALTER TABLE parks_table ALTER COLUMN total_votes SET DEFAULT 0`,
}

// Migrate creates parks_table or upgrades an existing one.
func Migrate(ctx context.Context, q dbx.Querier) error {
	for i, stmt := range migrations {
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate parks_table (step %d): %w", i+1, err)
		}
	}
	return nil
}
