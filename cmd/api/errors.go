package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const notFoundMessage = "Could Not Find What You Asked For"

type errorPage struct {
	Title      string
	Message    string
	IncidentID string
}

// internalServerError logs the full error under a fresh incident id and shows
// the visitor only that id.
func (app *application) internalServerError(w http.ResponseWriter, r *http.Request, err error) {
	incidentID := uuid.NewString()

	app.logger.Errorw("internal error",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", requestID(r),
		"incident_id", incidentID,
		"error", err.Error(),
	)

	app.renderError(w, r, http.StatusInternalServerError, errorPage{
		Title:      "Something went wrong",
		Message:    "We could not complete your request. Please try again later.",
		IncidentID: incidentID,
	})
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("bad request", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.renderError(w, r, http.StatusBadRequest, errorPage{
		Title:   "Bad request",
		Message: err.Error(),
	})
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logger.Warnw("not found error", "method", r.Method, "path", r.URL.Path, "error", err.Error())

	app.renderError(w, r, http.StatusNotFound, errorPage{
		Title:   "Not found",
		Message: notFoundMessage,
	})
}

// notFoundHandler answers unmatched routes with a fixed plain-text body.
func (app *application) notFoundHandler(w http.ResponseWriter, r *http.Request) {
	http.Error(w, notFoundMessage, http.StatusNotFound)
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	app.logger.Warnw("rate limit exceeded", "method", r.Method, "path", r.URL.Path)

	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))

	http.Error(w, "rate limit exceeded, retry after: "+retryAfter.Round(time.Second).String(), http.StatusTooManyRequests)
}

func requestID(r *http.Request) string {
	return middleware.GetReqID(r.Context())
}
