package ratings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dogparks/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("rating not found")
	ErrConflict      = errors.New("rating already exists")
	ErrInvalidRating = fmt.Errorf("rating must be between %d and %d", MinStars, MaxStars)

	QueryTimeoutDuration = time.Second * 5
)

// uniqueViolation is the postgres SQLSTATE for a duplicate key.
const uniqueViolation = "23505"

type Store interface {
	Get(ctx context.Context, venueID string) (*Rating, error)
	Create(ctx context.Context, venueID, name string) (*Rating, error)
	GetOrCreate(ctx context.Context, venueID, name string) (*Rating, error)
	Apply(ctx context.Context, venueID string, stars int) (*Rating, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

const ratingColumns = `yelp_id, park_name, total_ratings, total_votes, created_at, updated_at`

func (r *Repository) Get(ctx context.Context, venueID string) (*Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + ratingColumns + ` FROM parks_table WHERE yelp_id = $1`

	rating, err := scanRating(r.db.QueryRow(ctx, query, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get rating %q: %w", venueID, err)
	}
	return rating, nil
}

// Create inserts a zeroed row. The unique key on yelp_id turns a second
// insert for the same venue into ErrConflict.
func (r *Repository) Create(ctx context.Context, venueID, name string) (*Rating, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        INSERT INTO parks_table (yelp_id, park_name, total_ratings, total_votes)
        VALUES ($1, $2, 0, 0)
        RETURNING ` + ratingColumns

	rating, err := scanRating(r.db.QueryRow(ctx, query, venueID, name))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("create rating %q: %w", venueID, err)
	}
	return rating, nil
}

// GetOrCreate returns the venue's row, inserting it on first sight. Losing an
// insert race to another request falls back to reading the winner's row.
func (r *Repository) GetOrCreate(ctx context.Context, venueID, name string) (*Rating, error) {
	rating, err := r.Get(ctx, venueID)
	if err == nil {
		return rating, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rating, err = r.Create(ctx, venueID, name)
	if errors.Is(err, ErrConflict) {
		return r.Get(ctx, venueID)
	}
	return rating, err
}

// Apply adds one vote of the given stars. The increment happens in a single
// statement so concurrent submissions for one venue never lose an update.
func (r *Repository) Apply(ctx context.Context, venueID string, stars int) (*Rating, error) {
	if !ValidStars(stars) {
		return nil, ErrInvalidRating
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        UPDATE parks_table
        SET total_ratings = total_ratings + $2,
            total_votes = total_votes + 1,
            updated_at = now()
        WHERE yelp_id = $1
        RETURNING ` + ratingColumns

	rating, err := scanRating(r.db.QueryRow(ctx, query, venueID, stars))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("apply rating %q: %w", venueID, err)
	}
	return rating, nil
}

func scanRating(row pgx.Row) (*Rating, error) {
	var rating Rating
	err := row.Scan(
		&rating.VenueID,
		&rating.Name,
		&rating.TotalRatings,
		&rating.TotalVotes,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
