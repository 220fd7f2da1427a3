package parks

import (
	"context"
	"fmt"
	"time"

	"dogparks/internal/domain/ratings"
	"dogparks/internal/domain/venues"
	"dogparks/internal/yelp"

	"golang.org/x/sync/errgroup"
)

const (
	// DogParksCategory is the Yelp category searched for the results page.
	DogParksCategory = "dog_parks"

	enrichmentLimit = 6
)

type searcher interface {
	Search(ctx context.Context, q yelp.Query) ([]yelp.Business, error)
}

// Request echoes the park fields posted from the results or detail page.
type Request struct {
	VenueID  string
	Name     string
	Address  string
	ImageURL string
	Lat      string
	Long     string
}

// Nearby holds the four lists of services shown under a park.
type Nearby struct {
	FoodTrucks []venues.Venue
	Groomers   []venues.Venue
	Vets       []venues.Venue
	DayCares   []venues.Venue
}

// View is everything the detail page renders.
type View struct {
	Request
	Rating  *ratings.Rating
	Average string
	Nearby
}

type Service struct {
	ratings           ratings.Store
	search            searcher
	enrichmentTimeout time.Duration
}

// NewService wires the rating store and provider client. enrichmentTimeout
// bounds each nearby-service search; zero means only the caller's context
// applies.
func NewService(store ratings.Store, search searcher, enrichmentTimeout time.Duration) *Service {
	return &Service{
		ratings:           store,
		search:            search,
		enrichmentTimeout: enrichmentTimeout,
	}
}

// SearchParks lists dog parks near location, closest first.
func (s *Service) SearchParks(ctx context.Context, location string, limit int) ([]venues.Venue, error) {
	businesses, err := s.search.Search(ctx, yelp.Query{
		Categories: DogParksCategory,
		Location:   location,
		SortBy:     yelp.SortByDistance,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search parks: %w", err)
	}

	parks, err := venues.NormalizeAll(businesses, venues.KindPark)
	if err != nil {
		return nil, fmt.Errorf("normalize parks: %w", err)
	}
	return parks, nil
}

// Details builds the detail view, creating a zeroed rating record the first
// time a park is opened.
func (s *Service) Details(ctx context.Context, req Request) (*View, error) {
	rating, err := s.ratings.GetOrCreate(ctx, req.VenueID, req.Name)
	if err != nil {
		return nil, fmt.Errorf("load rating: %w", err)
	}
	return s.view(ctx, req, rating)
}

// Rate stores one vote of stars and rebuilds the detail view from the
// updated totals.
func (s *Service) Rate(ctx context.Context, req Request, stars int) (*View, error) {
	if !ratings.ValidStars(stars) {
		return nil, ratings.ErrInvalidRating
	}

	rating, err := s.ratings.Apply(ctx, req.VenueID, stars)
	if err != nil {
		return nil, fmt.Errorf("apply rating: %w", err)
	}
	return s.view(ctx, req, rating)
}

func (s *Service) view(ctx context.Context, req Request, rating *ratings.Rating) (*View, error) {
	nearby, err := s.nearby(ctx, req.Address)
	if err != nil {
		return nil, err
	}

	return &View{
		Request: req,
		Rating:  rating,
		Average: rating.AverageDisplay(),
		Nearby:  nearby,
	}, nil
}

type nearbySearch struct {
	kind  venues.Kind
	query yelp.Query
}

var nearbySearches = [...]nearbySearch{
	{kind: venues.KindFoodTruck, query: yelp.Query{Term: "food truck", Category: "restaurant"}},
	{kind: venues.KindGroomer, query: yelp.Query{Term: "groomers", Category: "petservices,All"}},
	{kind: venues.KindVet, query: yelp.Query{Term: "veterinarians", Category: "vet,All"}},
	{kind: venues.KindDayCare, query: yelp.Query{Term: "dog daycare", Category: "petservices,All"}},
}

// nearby runs the four service searches concurrently. The first failure
// cancels the others and no partial result is returned.
func (s *Service) nearby(ctx context.Context, location string) (Nearby, error) {
	var results [len(nearbySearches)][]venues.Venue

	g, ctx := errgroup.WithContext(ctx)
	for i, ns := range nearbySearches {
		g.Go(func() error {
			q := ns.query
			q.Location = location
			q.SortBy = yelp.SortByDistance
			q.Limit = enrichmentLimit

			list, err := s.searchOne(ctx, q, ns.kind)
			if err != nil {
				return fmt.Errorf("nearby %s: %w", ns.kind, err)
			}
			results[i] = list
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Nearby{}, err
	}

	return Nearby{
		FoodTrucks: results[0],
		Groomers:   results[1],
		Vets:       results[2],
		DayCares:   results[3],
	}, nil
}

func (s *Service) searchOne(ctx context.Context, q yelp.Query, kind venues.Kind) ([]venues.Venue, error) {
	if s.enrichmentTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.enrichmentTimeout)
		defer cancel()
	}

	businesses, err := s.search.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return venues.NormalizeAll(businesses, kind)
}
