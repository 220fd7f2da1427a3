package main

import (
	"errors"
	"net/http"

	"dogparks/internal/domain/ratings"
	"dogparks/internal/domain/venues"
	"dogparks/internal/params"
	"dogparks/internal/parks"
	"dogparks/internal/yelp"
)

var resultsLimit = params.Limit{Default: 12, Max: yelp.MaxLimit}

// ParkPayload is posted by the results page and by the detail page itself.
type ParkPayload struct {
	VenueID  string `schema:"yelp_id" validate:"required,max=255"`
	Name     string `schema:"name" validate:"required,max=255"`
	Address  string `schema:"address" validate:"required,max=500"`
	ImageURL string `schema:"image_url" validate:"omitempty,max=2048"`
	Lat      string `schema:"lat" validate:"omitempty,latitude"`
	Long     string `schema:"long" validate:"omitempty,longitude"`
}

func (f ParkPayload) request() parks.Request {
	return parks.Request{
		VenueID:  f.VenueID,
		Name:     f.Name,
		Address:  f.Address,
		ImageURL: f.ImageURL,
		Lat:      f.Lat,
		Long:     f.Long,
	}
}

// RatingPayload is ParkPayload plus the submitted stars. Prior totals the page
// echoes back are ignored; the store increments what it holds.
type RatingPayload struct {
	ParkPayload
	Rating int `schema:"rating" validate:"required,min=1,max=5"`
}

type resultsPage struct {
	SearchQuery string
	Parks       []venues.Venue
}

func (app *application) homeHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "index.html", nil)
}

func (app *application) aboutHandler(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "about.html", nil)
}

// renderResultsHandler lists dog parks near ?searchQuery=. The location is
// passed to Yelp as typed; Yelp decides what an empty one means.
func (app *application) renderResultsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	searchQuery := q.Get("searchQuery")

	found, err := app.parks.SearchParks(r.Context(), searchQuery, resultsLimit.Parse(q))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "results.html", resultsPage{
		SearchQuery: searchQuery,
		Parks:       found,
	})
}

func (app *application) renderDetailsHandler(w http.ResponseWriter, r *http.Request) {
	var form ParkPayload
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.parks.Details(r.Context(), form.request())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	app.render(w, r, http.StatusOK, "details.html", view)
}

func (app *application) addRatingsHandler(w http.ResponseWriter, r *http.Request) {
	var form RatingPayload
	if err := readForm(w, r, &form); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	view, err := app.parks.Rate(r.Context(), form.request(), form.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ratings.ErrInvalidRating):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, ratings.ErrNotFound):
			app.notFoundResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if app.metrics != nil {
		app.metrics.RatingsSubmitted.Inc()
	}

	app.logger.Infow("rating stored",
		"yelp_id", form.VenueID,
		"stars", form.Rating,
		"total_votes", view.Rating.TotalVotes,
	)

	app.render(w, r, http.StatusOK, "details.html", view)
}
