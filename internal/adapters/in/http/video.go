package http

import (
	"io"
	"net/http"
	"time"

	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ValidateVideoLinkRequest is the body of POST /api/video/validate.
type ValidateVideoLinkRequest struct {
	URL string `json:"url"`
}

// ValidateVideoLinkResponse reports the detected platform and any suspicious
// substrings found in the link.
type ValidateVideoLinkResponse struct {
	URL        string   `json:"url"`
	Platform   string   `json:"platform"`
	Suspicious []string `json:"suspicious,omitempty"`
}

// ValidateVideoLink handles POST /api/video/validate - checks an external
// link against the accepted platforms without attaching it anywhere, so the
// client can give feedback before the return is submitted.
func (s *Server) ValidateVideoLink(ctx echo.Context) error {
	if _, err := identityFrom(ctx); err != nil {
		return s.writeError(ctx, err)
	}

	var req ValidateVideoLinkRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	report, err := s.linkValidator.Validate(req.URL)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, ValidateVideoLinkResponse{
		URL:        report.URL,
		Platform:   string(report.Platform),
		Suspicious: report.Suspicious,
	})
}

// UploadVideoResponse describes where the stored video can be fetched from.
type UploadVideoResponse struct {
	URL      string        `json:"url"`
	Size     int64         `json:"size"`
	Duration time.Duration `json:"duration,omitempty"`
}

// UploadVideo handles POST /api/video/upload - accepts a multipart upload
// under the "video" form field and stores it in the media store. The returned
// URL is what clients later attach to an order or return.
func (s *Server) UploadVideo(ctx echo.Context) error {
	if _, err := identityFrom(ctx); err != nil {
		return s.writeError(ctx, err)
	}

	header, err := ctx.FormFile("video")
	if err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("video", err))
	}

	file, err := header.Open()
	if err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("video", err))
	}
	defer func() {
		_ = file.Close()
	}()

	content, err := io.ReadAll(file)
	if err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("video", err))
	}

	stored, err := s.mediaStore.Upload(ctx.Request().Context(), header.Filename, content)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, UploadVideoResponse{
		URL:      stored.URL,
		Size:     stored.Size,
		Duration: stored.Duration,
	})
}
