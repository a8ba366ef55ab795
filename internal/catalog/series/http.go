// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package series provides the HTTP interface for discovery and management of the catalog.

It exposes endpoints for browsing series and for authors to create and
maintain their own publications.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /series).
  - Restricted (v1): Mutative endpoints requiring an authenticated member;
    ownership itself is enforced transactionally in the storage layer.

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package series

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsuzuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsuzuki/internal/platform/request"
	"github.com/taibuivan/tsuzuki/internal/platform/respond"
	"github.com/taibuivan/tsuzuki/pkg/pagination"
	"github.com/taibuivan/tsuzuki/pkg/pointer"
)

// # Handler Implementation

// Handler implements the HTTP layer for series management and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new series [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the series domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.listSeries)
	router.Get("/{identifier}", handler.getSeries)

	// ## Authoring (Authenticated Members)
	router.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)

		member.Post("/", handler.createSeries)
		member.Patch("/{id}", handler.updateSeries)
	})

	return router
}

// # Series Endpoints

/*
GET /api/v1/series.

Description: Retrieves a paginated list of series from the catalog.
Supports filtering by genre, status, author, and title search.

Request:
  - q: string (Title substring search)
  - genre: string
  - status: string (ongoing, completed, hiatus)
  - author: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Series: Paginated list of series
*/
func (handler *Handler) listSeries(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:    queryParams.Get("q"),
		Genre:    queryParams.Get("genre"),
		Status:   Status(queryParams.Get("status")),
		AuthorID: queryParams.Get("author"),
	}

	collection, total, err := handler.service.ListSeries(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, collection, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/series/{identifier}.

Description: Retrieves a series using either its UUID or its unique title
slug. UUID lookups take precedence. The chapter count and rating aggregates
in the response are a single consistent snapshot.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: Series: Success
  - 404: 404: ErrNotFound: Series not found
*/
func (handler *Handler) getSeries(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	record, err := handler.service.GetSeries(request.Context(), identifier)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// # Request Payloads

// createSeriesRequest defines the inbound JSON schema for series creation.
type createSeriesRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Genre       string `json:"genre"`
	Status      Status `json:"status"`
	CoverURL    string `json:"cover_url"`
}

// # Mutation Endpoints

/*
POST /api/v1/series.

Description: Creates a new series owned by the authenticated user.
Slugs are auto-generated from the title.

Request (Body):
  - createSeriesRequest: JSON object

Response:
  - 201: Series: Created series object
  - 400: 400: ErrValidation: Invalid input data
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 409: 409: ErrConflict: Slug already taken
*/
func (handler *Handler) createSeries(writer http.ResponseWriter, request *http.Request) {
	var input createSeriesRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record := &Series{
		Title:       input.Title,
		Description: input.Description,
		Genre:       input.Genre,
		Status:      input.Status,
		CoverURL:    input.CoverURL,
	}

	if err := handler.service.CreateSeries(request.Context(), actorID, record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}

// updateSeriesRequest defines the inbound JSON schema for partial updates.
// Absent fields keep their current values.
type updateSeriesRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Genre       *string `json:"genre"`
	Status      *Status `json:"status"`
	CoverURL    *string `json:"cover_url"`
}

/*
PATCH /api/v1/series/{id}.

Description: Updates mutable metadata of a series the authenticated user
owns. Only the fields present in the body are overwritten; aggregates are
never writable through this endpoint.

Request:
  - id: string (UUID)
  - Body: updateSeriesRequest (fields to overwrite)

Response:
  - 200: Series: Updated series object
  - 403: 403: ErrForbidden: Actor is not the author
  - 404: 404: ErrNotFound: Series not found
*/
func (handler *Handler) updateSeries(writer http.ResponseWriter, request *http.Request) {
	var input updateSeriesRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// Overlay the patch onto the current record; the repository re-checks
	// ownership under the row lock before writing.
	current, err := handler.service.GetSeries(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	record := &Series{
		ID:          current.ID,
		Title:       pointer.Fallback(input.Title, current.Title),
		Description: pointer.Fallback(input.Description, current.Description),
		Genre:       pointer.Fallback(input.Genre, current.Genre),
		Status:      pointer.Fallback(input.Status, current.Status),
		CoverURL:    pointer.Fallback(input.CoverURL, current.CoverURL),
	}

	if err := handler.service.UpdateSeries(request.Context(), actorID, record); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}
