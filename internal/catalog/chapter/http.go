// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter provides the HTTP interface for chapter publication and reading.

# Routing Strategy

Chapter endpoints span two prefixes:

  - /series/{seriesID}/chapters: series-scoped listing and publication.
  - /chapters/{id}: direct chapter reads with full page content.

Publication requires an authenticated member; ownership of the series is
enforced transactionally in the storage layer.
*/
package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsuzuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsuzuki/internal/platform/request"
	"github.com/taibuivan/tsuzuki/internal/platform/respond"
	"github.com/taibuivan/tsuzuki/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter publication and retrieval.
type Handler struct {
	service *Service
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches chapter and page-related endpoints to the root API router.
// Chapter endpoints span both /series/{seriesID}/... and /chapters/... prefixes.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Discovery endpoints
	api.Get("/series/{seriesID}/chapters", handler.listChapters)
	api.Get("/chapters/{id}", handler.getChapter)

	// Publication (Require authentication)
	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/series/{seriesID}/chapters", handler.publishChapter)
	})
}

// # Chapter Retrieval

/*
GET /api/v1/series/{seriesID}/chapters.

Description: Returns a paginated roster of chapters for a series, ordered
by sequence number. Page bodies are not included.

Request:
  - seriesID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Chapter: Paginated list
*/
func (handler *Handler) listChapters(writer http.ResponseWriter, request *http.Request) {
	seriesID := requestutil.ID(request, "seriesID")
	paginationParams := pagination.FromRequest(request)

	chapters, total, err := handler.service.ListChapters(request.Context(), seriesID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, chapters, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/chapters/{id}.

Description: Returns the chapter together with its complete ordered page
list. Both come from a single database snapshot, so page_count always
matches the number of pages returned.

Request:
  - id: string (UUID)

Response:
  - 200: Chapter: Chapter with pages
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	record, err := handler.service.GetChapterWithPages(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, record)
}

// # Publication

// publishChapterRequest defines the inbound JSON schema for chapter publication.
type publishChapterRequest struct {
	Title string `json:"title"`
	// Number is the per-series sequence number; must be unique and >= 1.
	Number int `json:"number"`
	// Pages lists page image locations in reading order. Page numbers are
	// assigned 1..N from this ordering.
	Pages []string `json:"pages"`
}

/*
POST /api/v1/series/{seriesID}/chapters.

Description: Atomically publishes a chapter with its pages and advances the
series chapter counter. Either the whole publication lands or none of it.

Request:
  - seriesID: string (UUID)
  - Body: publishChapterRequest

Response:
  - 201: Chapter: The published chapter with pages
  - 400: 400: ErrValidation: Empty page list or invalid number
  - 403: 403: ErrForbidden: Actor is not the series author
  - 404: 404: ErrNotFound: Series not found
  - 409: 409: ErrConflict: Chapter number already taken
  - 503: 503: ErrUnavailable: Transient storage failure; safe to retry
*/
func (handler *Handler) publishChapter(writer http.ResponseWriter, request *http.Request) {
	var input publishChapterRequest

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

	record, err := handler.service.PublishChapter(request.Context(), actorID, seriesID, input.Title, input.Number, input.Pages)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}
