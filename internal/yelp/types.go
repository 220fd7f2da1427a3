package yelp

// Yelp Fusion API response types. Only the fields the pages render are decoded.

type searchResponse struct {
	Businesses []Business `json:"businesses"`
}

// Business is one raw record of a business search. Optional fields come back
// empty when Yelp omits them.
type Business struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	ImageURL     string      `json:"image_url"`
	URL          string      `json:"url"`
	DisplayPhone string      `json:"display_phone"`
	Coordinates  Coordinates `json:"coordinates"`
	Location     *Location   `json:"location"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Location struct {
	DisplayAddress []string `json:"display_address"`
}
