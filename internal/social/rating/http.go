// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package rating provides the HTTP interface for series ratings.

# Routing Strategy

All endpoints are series-scoped under /series/{seriesID}/ratings. Submission
requires an authenticated member; a user's repeated submissions overwrite
their single rating.
*/
package rating

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsuzuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsuzuki/internal/platform/request"
	"github.com/taibuivan/tsuzuki/internal/platform/respond"
	"github.com/taibuivan/tsuzuki/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for rating submission and listing.
type Handler struct {
	service *Service
}

// NewHandler constructs a new rating [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches rating endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public listing
	api.Get("/series/{seriesID}/ratings", handler.listRatings)

	// Submission (Require authentication)
	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Put("/series/{seriesID}/ratings", handler.submitRating)
	})
}

// # Listing

/*
GET /api/v1/series/{seriesID}/ratings.

Description: Returns the series' ratings, newest first, with rater display
names.

Request:
  - seriesID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Rating: Paginated list
*/
func (handler *Handler) listRatings(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.ID(request, "seriesID")
	paginationParams := pagination.FromRequest(request)

	ratings, total, err := handler.service.ListRatings(request.Context(), seriesID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, ratings, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// # Submission

// submitRatingRequest defines the inbound JSON schema for a rating submission.
type submitRatingRequest struct {
	Score   int    `json:"score"` // 1..5 inclusive
	Comment string `json:"comment"`
}

// submitRatingResponse returns the stored rating with the recomputed
// series-level summary so clients can refresh their display immediately.
type submitRatingResponse struct {
	Rating    *Rating    `json:"rating"`
	Aggregate *Aggregate `json:"aggregate"`
}

/*
PUT /api/v1/series/{seriesID}/ratings.

Description: Records or overwrites the authenticated user's rating for the
series and recomputes the series aggregates atomically. PUT semantics: the
user's single rating is replaced, never duplicated.

Request:
  - seriesID: string (UUID)
  - Body: submitRatingRequest

Response:
  - 200: submitRatingResponse: Stored rating plus fresh aggregates
  - 400: 400: ErrValidation: Score out of bounds
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: Series not found
  - 503: 503: ErrUnavailable: Transient storage failure; safe to retry
*/
func (handler *Handler) submitRating(writer http.ResponseWriter, request *http.Request) {
	var input submitRatingRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	seriesID := requestutil.ID(request, "seriesID")

	record, aggregate, err := handler.service.SubmitRating(request.Context(), actorID, seriesID, input.Score, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, submitRatingResponse{Rating: record, Aggregate: aggregate})
}
