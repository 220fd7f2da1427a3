package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dogparks/internal/domain/venues"
	"dogparks/internal/yelp"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHomeAndAbout(t *testing.T) {
	ta := newTestApplication(t)

	for _, path := range []string{"/", "/render-about"} {
		rr := ta.get(t, path)
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html", path)
		assert.Contains(t, rr.Body.String(), `action="/render-results"`, path)
	}
}

func TestRenderResults(t *testing.T) {
	ta := newTestApplication(t)
	ta.yelp.businesses = append(ta.yelp.businesses, yelp.Business{
		ID:       "no-photo",
		Name:     "Cal Anderson Dog Park",
		Location: &yelp.Location{DisplayAddress: []string{"1635 11th Ave", "Seattle, WA 98122"}},
	})

	rr := ta.get(t, "/render-results?searchQuery=Seattle")
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, "Dog parks near Seattle")
	assert.Contains(t, body, "Magnuson Off-Leash Area")
	assert.Contains(t, body, "Cal Anderson Dog Park")
	assert.Contains(t, body, venues.PlaceholderImageURL)
	assert.Contains(t, body, "7400 Sand Point Way NE Seattle, WA 98115")

	seen := ta.yelp.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "Seattle", seen[0].Get("location"))
	assert.Equal(t, "dog_parks", seen[0].Get("categories"))
	assert.Equal(t, "12", seen[0].Get("limit"))
}

func TestRenderResults_LimitIsCapped(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.get(t, "/render-results?searchQuery=Seattle&limit=500")
	require.Equal(t, http.StatusOK, rr.Code)

	seen := ta.yelp.seen()
	require.Len(t, seen, 1)
	assert.Equal(t, "20", seen[0].Get("limit"))
}

func TestRenderResults_UpstreamFailureIsSanitized(t *testing.T) {
	ta := newTestApplication(t)
	ta.yelp.fail = true

	rr := ta.get(t, "/render-results?searchQuery=Seattle")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Reference:")
	assert.NotContains(t, rr.Body.String(), "secret-token-xyz")
}

func TestRenderDetails_UnseenVenue(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.postForm(t, "/render-details", parkValues())
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `<span class="average">0.0</span>`)
	assert.Contains(t, body, `<span class="totals">0/0</span>`)
	assert.Contains(t, body, "Food trucks")
	assert.Contains(t, body, "Dog day-cares")
	assert.Equal(t, 1, ta.store.Len())

	// one search per nearby-service list
	assert.Len(t, ta.yelp.seen(), 4)
}

func TestRenderDetails_MissingVenueID(t *testing.T) {
	ta := newTestApplication(t)

	form := parkValues()
	form.Del("yelp_id")

	rr := ta.postForm(t, "/render-details", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "yelp_id is required")
	assert.Equal(t, 0, ta.store.Len())
	assert.Empty(t, ta.yelp.seen())
}

func TestRenderDetails_EnrichmentFailure(t *testing.T) {
	ta := newTestApplication(t)
	ta.yelp.fail = true

	rr := ta.postForm(t, "/render-details", parkValues())
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "secret-token-xyz")
}

func TestAddRatings(t *testing.T) {
	ta := newTestApplication(t)
	ta.store.Seed("abc123", "Magnuson Off-Leash Area", 10, 4)

	form := parkValues()
	form.Set("rating", "5")
	// stale totals echoed by an old page are ignored
	form.Set("total_ratings", "999")
	form.Set("total_votes", "999")

	rr := ta.postForm(t, "/add-ratings", form)
	require.Equal(t, http.StatusOK, rr.Code)

	body := rr.Body.String()
	assert.Contains(t, body, `<span class="average">3.0</span>`)
	assert.Contains(t, body, `<span class="totals">15/5</span>`)
	assert.Equal(t, 1, ta.store.Applied)
	assert.Len(t, ta.yelp.seen(), 4)
}

func TestAddRatings_InvalidRating(t *testing.T) {
	tests := []struct {
		name   string
		rating string
		want   string
	}{
		{"zero", "0", "rating"},
		{"too high", "6", "rating must be at most 5"},
		{"not a number", "abc", "invalid value for rating"},
		{"missing", "", "rating"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ta := newTestApplication(t)
			ta.store.Seed("abc123", "Magnuson Off-Leash Area", 10, 4)

			form := parkValues()
			if tc.rating != "" {
				form.Set("rating", tc.rating)
			}

			rr := ta.postForm(t, "/add-ratings", form)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.want)
			assert.Equal(t, 0, ta.store.Applied)
			assert.Empty(t, ta.yelp.seen())
		})
	}
}

func TestAddRatings_UnknownVenue(t *testing.T) {
	ta := newTestApplication(t)

	form := parkValues()
	form.Set("rating", "4")

	rr := ta.postForm(t, "/add-ratings", form)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, 0, ta.store.Applied)
}

func TestAddRatings_InvalidCoordinates(t *testing.T) {
	ta := newTestApplication(t)
	ta.store.Seed("abc123", "Magnuson Off-Leash Area", 0, 0)

	form := parkValues()
	form.Set("rating", "4")
	form.Set("lat", "123.4")

	rr := ta.postForm(t, "/add-ratings", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "lat must be a valid latitude")
}

func TestUnmatchedRoute(t *testing.T) {
	ta := newTestApplication(t)

	rr := ta.get(t, "/no-such-page")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), notFoundMessage)

}

func TestKnownPathWrongMethod(t *testing.T) {
	ta := newTestApplication(t)

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/render-details"},
		{http.MethodGet, "/add-ratings"},
		{http.MethodPost, "/render-results"},
		{http.MethodPut, "/"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			var rr *httptest.ResponseRecorder
			if tc.method == http.MethodGet {
				rr = ta.get(t, tc.path)
			} else {
				req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(url.Values{}.Encode()))
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				rr = httptest.NewRecorder()
				ta.app.mount().ServeHTTP(rr, req)
			}

			assert.Equal(t, http.StatusNotFound, rr.Code)
			assert.Contains(t, rr.Body.String(), notFoundMessage)
			assert.Equal(t, 0, ta.store.Len())
			assert.Empty(t, ta.yelp.seen())
		})
	}
}

func TestAddRatings_ValidatesParkFields(t *testing.T) {
	ta := newTestApplication(t)
	ta.store.Seed("abc123", "Magnuson Off-Leash Area", 10, 4)

	form := parkValues()
	form.Del("yelp_id")
	form.Del("address")
	form.Set("rating", "5")

	rr := ta.postForm(t, "/add-ratings", form)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "yelp_id is required")
	assert.Contains(t, rr.Body.String(), "address is required")
	assert.Equal(t, 0, ta.store.Applied)
}

func TestReadForm_RatingPayload(t *testing.T) {
	form := parkValues()
	form.Set("rating", "4")

	req := httptest.NewRequest(http.MethodPost, "/add-ratings", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var payload RatingPayload
	require.NoError(t, readForm(httptest.NewRecorder(), req, &payload))

	assert.Equal(t, 4, payload.Rating)
	assert.Equal(t, "abc123", payload.VenueID)
	assert.Equal(t, "7400 Sand Point Way NE Seattle, WA 98115", payload.Address)
	assert.Equal(t, "-122.25", payload.request().Long)
}
