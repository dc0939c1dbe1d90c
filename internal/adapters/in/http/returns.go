package http

import (
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/returns"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateReturnItemRequest is one returned line.
type CreateReturnItemRequest struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int    `json:"quantity"`
	Reason      string `json:"reason"`
	Condition   string `json:"condition,omitempty"`
}

// CreateReturnRequest is the body of POST /api/returns. CustomerID and
// WaiverReason are admin-only: an admin opens the return on the customer's
// behalf and may waive the video-evidence requirement with a recorded reason.
type CreateReturnRequest struct {
	OrderID      string                    `json:"order_id"`
	CustomerID   string                    `json:"customer_id,omitempty"`
	Type         string                    `json:"type"`
	Reason       string                    `json:"reason"`
	Description  string                    `json:"description,omitempty"`
	Items        []CreateReturnItemRequest `json:"items"`
	VideoURL     string                    `json:"video_url,omitempty"`
	WaiverReason string                    `json:"waiver_reason,omitempty"`
}

// CreateReturnResponse identifies the freshly opened return.
type CreateReturnResponse struct {
	ReturnID     string `json:"return_id"`
	ReturnNumber string `json:"return_number"`
}

// CreateReturn handles POST /api/returns - opens a return against a delivered
// or completed order.
func (s *Server) CreateReturn(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req CreateReturnRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	orderID, err := kernel.UUIDFromString(req.OrderID)
	if err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("order_id", err))
	}

	requesterID := identity.ActorID
	if identity.Admin {
		customerID, idErr := kernel.UUIDFromString(req.CustomerID)
		if idErr != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause("customer_id", idErr))
		}
		requesterID = customerID
	}

	var waiver *returns.Waiver
	if req.WaiverReason != "" {
		if !identity.Admin {
			return s.writeError(ctx, errs.NewAuthorizationError("waive video evidence"))
		}
		waiver = &returns.Waiver{AdminID: identity.ActorID, Reason: req.WaiverReason}
	}

	items := make([]commands.ReturnItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		itemID, idErr := kernel.UUIDFromString(item.OrderItemID)
		if idErr != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause("items.order_item_id", idErr))
		}

		items = append(items, commands.ReturnItemInput{
			OrderItemID: itemID,
			Quantity:    item.Quantity,
			Reason:      returns.Reason(item.Reason),
			Condition:   item.Condition,
		})
	}

	cmd, err := commands.NewCreateReturnCommand(
		orderID, requesterID, returns.Type(req.Type), returns.Reason(req.Reason),
		req.Description, items, req.VideoURL, waiver, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.createReturnHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateReturnResponse{
		ReturnID:     result.ReturnID.String(),
		ReturnNumber: result.ReturnNumber,
	})
}

// ReturnSummaryResponse is one row of the return list.
type ReturnSummaryResponse struct {
	ID           string         `json:"id"`
	ReturnNumber string         `json:"return_number"`
	OrderID      string         `json:"order_id"`
	OrderNumber  string         `json:"order_number"`
	Status       string         `json:"status"`
	Type         string         `json:"type"`
	Reason       string         `json:"reason"`
	RefundAmount *MoneyResponse `json:"refund_amount,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// ListReturns handles GET /api/returns - customers see their own returns,
// admins see everything.
func (s *Server) ListReturns(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var status *returns.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := returns.StatusFromString(raw)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		status = &parsed
	}

	limit, offset, err := parsePagination(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListReturnsQuery(identity.CustomerScope(), status, limit, offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	rows, err := s.listReturnsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := make([]ReturnSummaryResponse, len(rows))
	for i, row := range rows {
		response[i] = ReturnSummaryResponse{
			ID:           row.ID.String(),
			ReturnNumber: row.ReturnNumber,
			OrderID:      row.OrderID.String(),
			OrderNumber:  row.OrderNumber,
			Status:       row.Status.String(),
			Type:         string(row.Type),
			Reason:       string(row.Reason),
			CreatedAt:    row.CreatedAt,
		}
		if row.RefundAmount != nil {
			refund := newMoneyResponse(*row.RefundAmount)
			response[i].RefundAmount = &refund
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ChangeReturnStatusRequest is the body of PATCH /api/returns/:id/status.
// RefundAmount and RestockingFee are decimal strings in Currency, only
// meaningful on settlement transitions.
type ChangeReturnStatusRequest struct {
	Status        string `json:"status"`
	Notes         string `json:"notes,omitempty"`
	RefundAmount  string `json:"refund_amount,omitempty"`
	RestockingFee string `json:"restocking_fee,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// ChangeReturnStatus handles PATCH /api/returns/:id/status - an admin moves
// the return along its lifecycle, optionally recording the settlement.
func (s *Server) ChangeReturnStatus(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "change return status")
	if err != nil {
		return s.writeError(ctx, err)
	}

	returnID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req ChangeReturnStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	next, err := returns.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	settlement, err := buildSettlement(req)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeReturnStatusCommand(
		returnID, next, identity.ActorID, req.Notes, settlement, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.changeReturnStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

func buildSettlement(req ChangeReturnStatusRequest) (returns.Settlement, error) {
	var settlement returns.Settlement

	if req.RefundAmount != "" {
		refund, err := kernel.NewMoney(req.RefundAmount, req.Currency)
		if err != nil {
			return returns.Settlement{}, errs.NewValidationErrorWithCause("refund_amount", err)
		}
		settlement.RefundAmount = &refund
	}
	if req.RestockingFee != "" {
		fee, err := kernel.NewMoney(req.RestockingFee, req.Currency)
		if err != nil {
			return returns.Settlement{}, errs.NewValidationErrorWithCause("restocking_fee", err)
		}
		settlement.RestockingFee = &fee
	}

	return settlement, nil
}
