// Package ratingstest provides an in-memory ratings.Store for tests.
package ratingstest

import (
	"context"
	"errors"
	"sync"
	"time"

	"dogparks/internal/domain/ratings"
)

type MemoryStore struct {
	mu      sync.Mutex
	rows    map[string]ratings.Rating
	Err     error // returned by every call when set
	Applied int   // number of successful Apply calls
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: make(map[string]ratings.Rating)}
}

// Seed stores a row with the given totals, replacing any existing one.
func (s *MemoryStore) Seed(venueID, name string, totalRatings, totalVotes int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.rows[venueID] = ratings.Rating{
		VenueID:      venueID,
		Name:         name,
		TotalRatings: totalRatings,
		TotalVotes:   totalVotes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *MemoryStore) Get(_ context.Context, venueID string) (*ratings.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[venueID]
	if !ok {
		return nil, ratings.ErrNotFound
	}
	return &row, nil
}

func (s *MemoryStore) Create(_ context.Context, venueID, name string) (*ratings.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if _, ok := s.rows[venueID]; ok {
		return nil, ratings.ErrConflict
	}
	now := time.Now()
	row := ratings.Rating{VenueID: venueID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.rows[venueID] = row
	return &row, nil
}

func (s *MemoryStore) GetOrCreate(ctx context.Context, venueID, name string) (*ratings.Rating, error) {
	row, err := s.Get(ctx, venueID)
	if !errors.Is(err, ratings.ErrNotFound) {
		return row, err
	}
	return s.Create(ctx, venueID, name)
}

func (s *MemoryStore) Apply(_ context.Context, venueID string, stars int) (*ratings.Rating, error) {
	if !ratings.ValidStars(stars) {
		return nil, ratings.ErrInvalidRating
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	row, ok := s.rows[venueID]
	if !ok {
		return nil, ratings.ErrNotFound
	}
	row.TotalRatings += int64(stars)
	row.TotalVotes++
	row.UpdatedAt = time.Now()
	s.rows[venueID] = row
	s.Applied++
	return &row, nil
}

var _ ratings.Store = (*MemoryStore)(nil)
