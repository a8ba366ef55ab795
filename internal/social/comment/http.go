// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsuzuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsuzuki/internal/platform/request"
	"github.com/taibuivan/tsuzuki/internal/platform/respond"
	"github.com/taibuivan/tsuzuki/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for chapter comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes attaches comment endpoints to the root API router.
func (handler *Handler) RegisterRoutes(api chi.Router) {
	// Public listing
	api.Get("/chapters/{chapterID}/comments", handler.listComments)

	// Posting (Require authentication)
	api.Group(func(member chi.Router) {
		member.Use(middleware.RequireAuth)
		member.Post("/chapters/{chapterID}/comments", handler.addComment)
	})
}

// # Comment Endpoints

/*
GET /api/v1/chapters/{chapterID}/comments.

Description: Returns the chapter's comments, newest first, with commenter
display names.

Request:
  - chapterID: string (UUID)
  - limit: int
  - page: int

Response:
  - 200: []Comment: Paginated list
*/
func (handler *Handler) listComments(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "chapterID")
	paginationParams := pagination.FromRequest(request)

	comments, total, err := handler.service.ListComments(request.Context(), chapterID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, comments, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

// addCommentRequest defines the inbound JSON schema for posting a comment.
type addCommentRequest struct {
	Body string `json:"body"`
}

/*
POST /api/v1/chapters/{chapterID}/comments.

Description: Appends a comment to the chapter's thread.

Request:
  - chapterID: string (UUID)
  - Body: addCommentRequest

Response:
  - 201: Comment: The stored comment
  - 400: 400: ErrValidation: Empty body
  - 401: 401: ErrUnauthorized: Missing or invalid token
  - 404: 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) addComment(writer http.ResponseWriter, request *http.Request) {
	var input addCommentRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	actorID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	chapterID := requestutil.ID(request, "chapterID")

	record, err := handler.service.AddComment(request.Context(), actorID, chapterID, input.Body)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, record)
}
