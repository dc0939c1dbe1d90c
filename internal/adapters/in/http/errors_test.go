package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation maps to 400", errs.NewValidationError("order_id"), http.StatusBadRequest},
		{"authorization maps to 403", errs.NewAuthorizationError("create order"), http.StatusForbidden},
		{"not found maps to 404", errs.NewObjectNotFoundError("order_id", "abc"), http.StatusNotFound},
		{"conflict maps to 409", errs.NewConflictError("order_number", "taken"), http.StatusConflict},
		{"persistence maps to 500", errs.NewPersistenceError("add order", fmt.Errorf("connection reset")), http.StatusInternalServerError},
		{"unknown maps to 500", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}

func TestWriteError(t *testing.T) {
	newContext := func() (echo.Context, *httptest.ResponseRecorder) {
		e := echo.New()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return e.NewContext(req, rec), rec
	}

	t.Run("includes error detail outside production", func(t *testing.T) {
		server := &Server{production: false}
		ctx, rec := newContext()

		err := server.writeError(ctx, errs.NewValidationError("video_url"))
		require.NoError(t, err)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, http.StatusBadRequest, body.Code)
		assert.Contains(t, body.Detail, "video_url")
	})

	t.Run("suppresses error detail in production", func(t *testing.T) {
		server := &Server{production: true}
		ctx, rec := newContext()

		err := server.writeError(ctx, errs.NewPersistenceError("add order",
			fmt.Errorf("pq: relation orders does not exist")))
		require.NoError(t, err)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Empty(t, body.Detail)
		assert.Equal(t, "Internal error", body.Message)
	})
}
