// Copyright (c) 2026 Tsuzuki. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upload issues time-limited signed upload URLs for page images.

The catalog core never moves image bytes itself: clients upload directly to
object storage with a signed PUT URL issued here, then submit the resulting
public URLs as page content references when publishing a chapter.
*/
package upload

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"

	"github.com/taibuivan/tsuzuki/internal/platform/constants"
	"github.com/taibuivan/tsuzuki/internal/platform/validate"
)

// # Service Layer

// Ticket is a single-use upload grant handed to a client.
type Ticket struct {
	// UploadURL accepts one PUT of the named object until ExpiresAt.
	UploadURL string `json:"upload_url"`
	// PublicURL is where the object will be readable after upload; this is
	// the value to submit as a page content reference.
	PublicURL string    `json:"public_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service issues signed PUT URLs against a Google Cloud Storage bucket.
type Service struct {
	client        *storage.Client
	bucket        string
	publicBaseURL string
	logger        *slog.Logger
}

// NewService constructs an upload [Service].
//
// publicBaseURL is the externally reachable read prefix for the bucket
// (a CDN domain or the storage.googleapis.com form).
func NewService(client *storage.Client, bucket, publicBaseURL string, logger *slog.Logger) *Service {
	return &Service{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		logger:        logger,
	}
}

// # Ticket Issuance

/*
IssueTicket creates a signed PUT URL for a page image upload.

Description: Object keys are namespaced per user and prefixed with a
millisecond timestamp, so a user re-uploading the same filename never
overwrites an object already referenced by a published page.

Parameters:
  - context: context.Context
  - userID: string (Authenticated uploader; becomes the key namespace)
  - filename: string (Client-chosen name, path components stripped)
  - contentType: string (MIME type the upload must carry)

Returns:
  - *Ticket: Signed upload grant with the future public URL
  - error: Validation or signing failures
*/
func (service *Service) IssueTicket(context context.Context, userID, filename, contentType string) (*Ticket, error) {

	validator := &validate.Validator{}
	validator.Required("filename", filename).MaxLen("filename", filename, 255)
	validator.Required("content_type", contentType)
	validator.Custom("content_type", !strings.HasPrefix(contentType, "image/"), "only image uploads are accepted")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Strip any path components the client smuggled in.
	cleanName := path.Base(filename)

	objectKey := fmt.Sprintf("%s/%d-%s", userID, time.Now().UnixMilli(), cleanName)
	expiresAt := time.Now().Add(constants.UploadURLTTL)

	uploadURL, err := service.client.Bucket(service.bucket).SignedURL(objectKey, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		Expires:     expiresAt,
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("upload_service_sign_failed: %w", err)
	}

	service.logger.Info("upload_ticket_issued",
		slog.String("user_id", userID),
		slog.String("object_key", objectKey),
	)

	return &Ticket{
		UploadURL: uploadURL,
		PublicURL: service.publicBaseURL + "/" + objectKey,
		ObjectKey: objectKey,
		ExpiresAt: expiresAt,
	}, nil
}
