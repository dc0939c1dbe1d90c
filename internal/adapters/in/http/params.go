package http

import (
	"strconv"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// MoneyResponse renders a monetary value with its currency. Amounts are
// decimal strings to keep JSON clients away from float rounding.
type MoneyResponse struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func newMoneyResponse(m kernel.Money) MoneyResponse {
	return MoneyResponse{
		Amount:   m.Amount().StringFixed(2),
		Currency: m.Currency(),
	}
}

// pathUUID parses the named path parameter as a UUID.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		return kernel.UUID{}, errs.NewValidationErrorWithCause(name, err)
	}
	return id, nil
}

// optionalUUID parses an optional UUID field, mapping "" to nil.
func optionalUUID(raw, paramName string) (*kernel.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return nil, errs.NewValidationErrorWithCause(paramName, err)
	}
	return &id, nil
}

// parsePagination reads limit and offset query params, leaving zero values
// for the query constructors to replace with their defaults and caps.
func parsePagination(ctx echo.Context) (limit, offset int, err error) {
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValidationErrorWithCause("limit", err)
		}
	}
	if raw := ctx.QueryParam("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil {
			return 0, 0, errs.NewValidationErrorWithCause("offset", err)
		}
	}
	return limit, offset, nil
}
