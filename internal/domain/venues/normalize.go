package venues

import (
	"errors"
	"fmt"

	"dogparks/internal/yelp"
)

var ErrMalformedRecord = errors.New("business record has no display address")

// Normalize maps a raw Yelp business to a Venue, filling placeholders for
// missing fields. A record without a location or address line is rejected.
func Normalize(b yelp.Business, kind Kind) (Venue, error) {
	if b.Location == nil || len(b.Location.DisplayAddress) == 0 {
		return Venue{}, fmt.Errorf("%w: id=%q", ErrMalformedRecord, b.ID)
	}

	addr := b.Location.DisplayAddress
	second := ""
	if len(addr) > 1 {
		second = addr[1]
	}

	return Venue{
		Kind:     kind,
		ID:       b.ID,
		Name:     orDefault(b.Name, PlaceholderName),
		ImageURL: orDefault(b.ImageURL, PlaceholderImageURL),
		URL:      orDefault(b.URL, PlaceholderURL),
		Address:  addr[0] + " " + second,
		Phone:    orDefault(b.DisplayPhone, PlaceholderPhone),
		Lat:      b.Coordinates.Latitude,
		Long:     b.Coordinates.Longitude,
	}, nil
}

// NormalizeAll keeps the input order and fails on the first malformed record.
func NormalizeAll(businesses []yelp.Business, kind Kind) ([]Venue, error) {
	out := make([]Venue, 0, len(businesses))
	for _, b := range businesses {
		v, err := Normalize(b, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
