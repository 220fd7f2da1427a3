package ratings

import (
	"fmt"
	"math"
	"time"
)

const (
	MinStars = 1
	MaxStars = 5
)

// Rating holds the cumulative star totals of one venue.
type Rating struct {
	VenueID      string    `json:"yelp_id"`
	Name         string    `json:"park_name"`
	TotalRatings int64     `json:"total_ratings"` // sum of all stars ever submitted
	TotalVotes   int64     `json:"total_votes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Average is TotalRatings/TotalVotes rounded to one decimal, or 0 when the
// venue has no votes yet.
func (r *Rating) Average() float64 {
	if r == nil || r.TotalVotes <= 0 {
		return 0
	}
	avg := float64(r.TotalRatings) / float64(r.TotalVotes)
	return math.Round(avg*10) / 10
}

// AverageDisplay formats Average with exactly one decimal ("0.0", "3.0").
func (r *Rating) AverageDisplay() string {
	return fmt.Sprintf("%.1f", r.Average())
}

func ValidStars(stars int) bool {
	return stars >= MinStars && stars <= MaxStars
}
