package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/video/validate", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set(identityContextKey, Identity{ActorID: kernel.NewUUID()})
	return ctx, rec
}

func TestValidateVideoLink(t *testing.T) {
	server := NewServer(ServerParams{
		LinkValidator: services.NewVideoLinkValidator("media.example.com"),
	})

	t.Run("accepts a youtube link", func(t *testing.T) {
		ctx, rec := newVideoContext(t, `{"url":"https://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)

		require.NoError(t, server.ValidateVideoLink(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var body ValidateVideoLinkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(services.PlatformYouTube), body.Platform)
	})

	t.Run("accepts a self-hosted link", func(t *testing.T) {
		ctx, rec := newVideoContext(t, `{"url":"https://media.example.com/videos/unboxing.mp4"}`)

		require.NoError(t, server.ValidateVideoLink(ctx))
		require.Equal(t, http.StatusOK, rec.Code)

		var body ValidateVideoLinkResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, string(services.PlatformMediaStore), body.Platform)
	})

	t.Run("rejects an unsupported platform with 400", func(t *testing.T) {
		ctx, rec := newVideoContext(t, `{"url":"https://evil.example.org/video.mp4"}`)

		require.NoError(t, server.ValidateVideoLink(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a plain http link with 400", func(t *testing.T) {
		ctx, rec := newVideoContext(t, `{"url":"http://www.youtube.com/watch?v=dQw4w9WgXcQ"}`)

		require.NoError(t, server.ValidateVideoLink(ctx))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
