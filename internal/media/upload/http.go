// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upload

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tsuzuki/internal/platform/middleware"
	requestutil "github.com/taibuivan/tsuzuki/internal/platform/request"
	"github.com/taibuivan/tsuzuki/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for upload ticket issuance.
type Handler struct {
	service *Service
}

// NewHandler constructs a new upload [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] for the upload endpoints.
// All routes require authentication.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Use(middleware.RequireAuth)
	router.Post("/", handler.issueTicket)

	return router
}

// issueTicketRequest defines the inbound JSON schema for ticket issuance.
type issueTicketRequest struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
}

/*
POST /api/v1/uploads.

Description: Issues a time-limited signed PUT URL for a page image. The
returned public_url is what chapter publication accepts as a page content
reference.

Request:
  - Body: issueTicketRequest

Response:
  - 201: Ticket: Signed upload grant
  - 400: 400: ErrValidation: Missing filename or non-image content type
  - 401: 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) issueTicket(writer http.ResponseWriter, request *http.Request) {
	var input issueTicketRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	ticket, err := handler.service.IssueTicket(request.Context(), userID, input.Filename, input.ContentType)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, ticket)
}
