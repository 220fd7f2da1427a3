package venues

// Kind tags which list a venue belongs to.
type Kind string

const (
	KindPark      Kind = "park"
	KindFoodTruck Kind = "food_truck"
	KindGroomer   Kind = "groomer"
	KindVet       Kind = "vet"
	KindDayCare   Kind = "day_care"
)

// Placeholders shown when Yelp omits a field.
const (
	PlaceholderName     = "NAME NOT AVAILABLE"
	PlaceholderImageURL = "https://thumbs.dreamstime.com/b/no-image-available-icon-photo-camera-flat-vector-illustration-132483296.jpg"
	PlaceholderURL      = "URL NOT AVAILABLE"
	PlaceholderPhone    = "PHONE NUMBER NOT AVAILABLE"
)

// Venue is the presentation record rendered for a park or a nearby service.
type Venue struct {
	Kind     Kind
	ID       string
	Name     string
	ImageURL string
	URL      string
	Address  string // first two display address lines joined by a space
	Phone    string
	Lat      float64
	Long     float64
}
