package http

import (
	"fmt"
	"net/http"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Authentication happens upstream: the gateway verifies the session and
// forwards the resolved principal in headers. This layer only parses them.
const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"

	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	identityContextKey = "identity"
)

// Identity is the authenticated principal acting on a request. For customers
// the actor id is the customer aggregate id; for admins it is the admin's
// user id.
type Identity struct {
	ActorID kernel.UUID
	Admin   bool
}

// CustomerScope returns the customer id queries should be restricted to, or
// nil when the actor is an admin and sees everything.
func (i Identity) CustomerScope() *kernel.UUID {
	if i.Admin {
		return nil
	}
	return &i.ActorID
}

// IdentityMiddleware parses the principal headers and rejects requests that
// carry none. Every route behind it can assume a valid Identity is present.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actorID, err := kernel.UUIDFromString(ctx.Request().Header.Get(HeaderActorID))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing or malformed " + HeaderActorID + " header",
				})
			}

			role := ctx.Request().Header.Get(HeaderActorRole)
			if role != RoleAdmin && role != RoleCustomer {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing or malformed " + HeaderActorRole + " header",
				})
			}

			ctx.Set(identityContextKey, Identity{
				ActorID: actorID,
				Admin:   role == RoleAdmin,
			})
			return next(ctx)
		}
	}
}

// identityFrom retrieves the Identity stored by IdentityMiddleware.
func identityFrom(ctx echo.Context) (Identity, error) {
	identity, ok := ctx.Get(identityContextKey).(Identity)
	if !ok {
		return Identity{}, errs.NewAuthorizationErrorWithCause("resolve identity",
			fmt.Errorf("request reached a handler without passing the identity middleware"))
	}
	return identity, nil
}

// requireAdmin retrieves the Identity and rejects non-admin actors.
func requireAdmin(ctx echo.Context, action string) (Identity, error) {
	identity, err := identityFrom(ctx)
	if err != nil {
		return Identity{}, err
	}
	if !identity.Admin {
		return Identity{}, errs.NewAuthorizationError(action)
	}
	return identity, nil
}
