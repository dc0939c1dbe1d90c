package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokeMiddleware(t *testing.T, headers map[string]string) (*httptest.ResponseRecorder, Identity, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for name, value := range headers {
		req.Header.Set(name, value)
	}
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	var captured Identity
	var reached bool
	handler := IdentityMiddleware()(func(ctx echo.Context) error {
		reached = true
		captured, _ = identityFrom(ctx)
		return ctx.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(ctx))
	return rec, captured, reached
}

func TestIdentityMiddleware(t *testing.T) {
	actorID := kernel.NewUUID()

	t.Run("parses a customer principal", func(t *testing.T) {
		_, identity, reached := invokeMiddleware(t, map[string]string{
			HeaderActorID:   actorID.String(),
			HeaderActorRole: RoleCustomer,
		})

		require.True(t, reached)
		assert.True(t, identity.ActorID.IsEqual(actorID))
		assert.False(t, identity.Admin)
	})

	t.Run("parses an admin principal", func(t *testing.T) {
		_, identity, reached := invokeMiddleware(t, map[string]string{
			HeaderActorID:   actorID.String(),
			HeaderActorRole: RoleAdmin,
		})

		require.True(t, reached)
		assert.True(t, identity.Admin)
	})

	t.Run("rejects a missing actor id", func(t *testing.T) {
		rec, _, reached := invokeMiddleware(t, map[string]string{
			HeaderActorRole: RoleCustomer,
		})

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects a malformed actor id", func(t *testing.T) {
		rec, _, reached := invokeMiddleware(t, map[string]string{
			HeaderActorID:   "not-a-uuid",
			HeaderActorRole: RoleCustomer,
		})

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects an unknown role", func(t *testing.T) {
		rec, _, reached := invokeMiddleware(t, map[string]string{
			HeaderActorID:   actorID.String(),
			HeaderActorRole: "superuser",
		})

		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestIdentityCustomerScope(t *testing.T) {
	actorID := kernel.NewUUID()

	t.Run("customers are scoped to themselves", func(t *testing.T) {
		scope := Identity{ActorID: actorID}.CustomerScope()

		require.NotNil(t, scope)
		assert.True(t, scope.IsEqual(actorID))
	})

	t.Run("admins see everything", func(t *testing.T) {
		assert.Nil(t, Identity{ActorID: actorID, Admin: true}.CustomerScope())
	})
}

func TestRequireAdmin(t *testing.T) {
	e := echo.New()

	newContext := func(identity any) echo.Context {
		ctx := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if identity != nil {
			ctx.Set(identityContextKey, identity)
		}
		return ctx
	}

	t.Run("passes an admin through", func(t *testing.T) {
		identity, err := requireAdmin(newContext(Identity{ActorID: kernel.NewUUID(), Admin: true}), "create order")

		require.NoError(t, err)
		assert.True(t, identity.Admin)
	})

	t.Run("rejects a customer", func(t *testing.T) {
		_, err := requireAdmin(newContext(Identity{ActorID: kernel.NewUUID()}), "create order")

		assert.ErrorIs(t, err, errs.ErrAuthorization)
	})

	t.Run("rejects a request without identity", func(t *testing.T) {
		_, err := requireAdmin(newContext(nil), "create order")

		assert.ErrorIs(t, err, errs.ErrAuthorization)
	})
}
