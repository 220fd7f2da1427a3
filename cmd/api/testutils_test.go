package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"dogparks/internal/domain/ratings/ratingstest"
	"dogparks/internal/observability"
	"dogparks/internal/parks"
	"dogparks/internal/yelp"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

// yelpStub answers business searches with the same list for every query
// unless fail is set.
type yelpStub struct {
	mu         sync.Mutex
	businesses []yelp.Business
	fail       bool
	requests   []url.Values
}

func (s *yelpStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests = append(s.requests, r.URL.Query())
	fail := s.fail
	list := s.businesses
	s.mu.Unlock()

	if fail {
		http.Error(w, "upstream exploded: secret-token-xyz", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"businesses": list})
}

func (s *yelpStub) seen() []url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]url.Values(nil), s.requests...)
}

type testApp struct {
	app   *application
	store *ratingstest.MemoryStore
	yelp  *yelpStub
}

func newTestApplication(t *testing.T) *testApp {
	t.Helper()

	stub := &yelpStub{businesses: []yelp.Business{{
		ID:       "abc123",
		Name:     "Magnuson Off-Leash Area",
		ImageURL: "https://img.example/park.jpg",
		Location: &yelp.Location{DisplayAddress: []string{"7400 Sand Point Way NE", "Seattle, WA 98115"}},
	}}}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	metrics := observability.NewMetricsForTesting()
	client := yelp.NewClient("test-key", srv.URL, 2*time.Second, metrics)
	store := ratingstest.NewMemoryStore()

	templates, err := newTemplateCache()
	require.NoError(t, err)

	app := &application{
		config:    config{Env: "test"},
		logger:    zap.NewNop().Sugar(),
		store:     pinger{},
		parks:     parks.NewService(store, client, time.Second),
		templates: templates,
		metrics:   metrics,
	}

	return &testApp{app: app, store: store, yelp: stub}
}

func (ta *testApp) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	ta.app.mount().ServeHTTP(rr, req)
	return rr
}

func (ta *testApp) postForm(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	ta.app.mount().ServeHTTP(rr, req)
	return rr
}

func parkValues() url.Values {
	return url.Values{
		"yelp_id":   {"abc123"},
		"name":      {"Magnuson Off-Leash Area"},
		"address":   {"7400 Sand Point Way NE Seattle, WA 98115"},
		"image_url": {"https://img.example/park.jpg"},
		"lat":       {"47.68"},
		"long":      {"-122.25"},
	}
}
