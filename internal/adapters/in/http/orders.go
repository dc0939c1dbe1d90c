package http

import (
	"fmt"
	"net/http"
	"time"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	ProductName  string `json:"product_name"`
	SKU          string `json:"sku"`
	Description  string `json:"description,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    string `json:"unit_price"`
	Size         string `json:"size,omitempty"`
	Color        string `json:"color,omitempty"`
	Material     string `json:"material,omitempty"`
	Measurements string `json:"measurements,omitempty"`
}

// CreateOrderDetailsRequest carries the optional order attributes.
type CreateOrderDetailsRequest struct {
	PaymentMethod       string     `json:"payment_method,omitempty"`
	ShippingAddressID   string     `json:"shipping_address_id,omitempty"`
	BillingAddressID    string     `json:"billing_address_id,omitempty"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	InternalNotes       string     `json:"internal_notes,omitempty"`
	EstimatedDelivery   *time.Time `json:"estimated_delivery,omitempty"`
}

// CreateOrderRequest is the body of POST /api/orders.
type CreateOrderRequest struct {
	CustomerID string                    `json:"customer_id"`
	Currency   string                    `json:"currency"`
	Items      []CreateOrderItemRequest  `json:"items"`
	Details    CreateOrderDetailsRequest `json:"details"`
}

// CreateOrderResponse identifies the freshly created order.
type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
}

// CreateOrder handles POST /api/orders - an admin places an order for a customer.
func (s *Server) CreateOrder(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "create order")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	customerID, err := kernel.UUIDFromString(req.CustomerID)
	if err != nil {
		return s.writeError(ctx, err)
	}

	items := make([]order.ItemSpec, 0, len(req.Items))
	for i, item := range req.Items {
		price, priceErr := kernel.NewMoney(item.UnitPrice, req.Currency)
		if priceErr != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause(
				fmt.Sprintf("items[%d].unit_price", i), priceErr))
		}

		items = append(items, order.ItemSpec{
			ProductName:  item.ProductName,
			SKU:          item.SKU,
			Description:  item.Description,
			Quantity:     item.Quantity,
			UnitPrice:    price,
			Size:         item.Size,
			Color:        item.Color,
			Material:     item.Material,
			Measurements: item.Measurements,
		})
	}

	details, err := buildOrderDetails(req.Details)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCreateOrderCommand(
		customerID, identity.ActorID, items, req.Currency, details, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	result, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateOrderResponse{
		OrderID:     result.OrderID.String(),
		OrderNumber: result.OrderNumber,
	})
}

func buildOrderDetails(req CreateOrderDetailsRequest) (order.Details, error) {
	shippingID, err := optionalUUID(req.ShippingAddressID, "details.shipping_address_id")
	if err != nil {
		return order.Details{}, err
	}
	billingID, err := optionalUUID(req.BillingAddressID, "details.billing_address_id")
	if err != nil {
		return order.Details{}, err
	}

	return order.Details{
		PaymentMethod:       req.PaymentMethod,
		ShippingAddressID:   shippingID,
		BillingAddressID:    billingID,
		SpecialInstructions: req.SpecialInstructions,
		InternalNotes:       req.InternalNotes,
		EstimatedDelivery:   req.EstimatedDelivery,
	}, nil
}

// OrderSummaryResponse is one row of the order list.
type OrderSummaryResponse struct {
	ID            string        `json:"id"`
	OrderNumber   string        `json:"order_number"`
	CustomerID    string        `json:"customer_id"`
	Status        string        `json:"status"`
	PaymentStatus string        `json:"payment_status"`
	TotalAmount   MoneyResponse `json:"total_amount"`
	ItemCount     int           `json:"item_count"`
	CreatedAt     time.Time     `json:"created_at"`
}

// ListOrdersResponse is one page of orders plus the total match count.
type ListOrdersResponse struct {
	Orders []OrderSummaryResponse `json:"orders"`
	Total  int64                  `json:"total"`
}

// ListOrders handles GET /api/orders - customers see their own orders, admins
// see everything. Supports status filtering, sorting, and pagination.
func (s *Server) ListOrders(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var status *order.Status
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, parseErr := order.StatusFromString(raw)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		status = &parsed
	}

	sortBy := ctx.QueryParam("sort_by")
	if sortBy == "" {
		sortBy = queries.SortByCreatedAt
	}

	limit, offset, err := parsePagination(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListOrdersQuery(
		identity.CustomerScope(), status, sortBy,
		ctx.QueryParam("sort_desc") == "true", limit, offset)
	if err != nil {
		return s.writeError(ctx, err)
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := ListOrdersResponse{
		Orders: make([]OrderSummaryResponse, len(page.Orders)),
		Total:  page.Total,
	}
	for i, row := range page.Orders {
		response.Orders[i] = OrderSummaryResponse{
			ID:            row.ID.String(),
			OrderNumber:   row.OrderNumber,
			CustomerID:    row.CustomerID.String(),
			Status:        row.Status.String(),
			PaymentStatus: row.PaymentStatus.String(),
			TotalAmount:   newMoneyResponse(row.TotalAmount),
			ItemCount:     row.ItemCount,
			CreatedAt:     row.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// OrderItemResponse is one line of the order detail view.
type OrderItemResponse struct {
	ID          string        `json:"id"`
	ProductName string        `json:"product_name"`
	SKU         string        `json:"sku"`
	Quantity    int           `json:"quantity"`
	UnitPrice   MoneyResponse `json:"unit_price"`
	Subtotal    MoneyResponse `json:"subtotal"`
}

// StatusHistoryEntryResponse is one entry of the status trail.
type StatusHistoryEntryResponse struct {
	Status    string    `json:"status"`
	ChangedBy string    `json:"changed_by"`
	Notes     string    `json:"notes,omitempty"`
	ChangedAt time.Time `json:"changed_at"`
}

// GetOrderResponse is the full order detail view.
type GetOrderResponse struct {
	ID             string                       `json:"id"`
	OrderNumber    string                       `json:"order_number"`
	CustomerID     string                       `json:"customer_id"`
	Status         string                       `json:"status"`
	PaymentStatus  string                       `json:"payment_status"`
	TotalAmount    MoneyResponse                `json:"total_amount"`
	TrackingNumber string                       `json:"tracking_number,omitempty"`
	VideoURL       string                       `json:"video_url,omitempty"`
	Items          []OrderItemResponse          `json:"items"`
	History        []StatusHistoryEntryResponse `json:"history"`
	ConfirmedAt    *time.Time                   `json:"confirmed_at,omitempty"`
	CreatedAt      time.Time                    `json:"created_at"`
}

// GetOrder handles GET /api/orders/:id - full detail with items and history.
// A customer asking for somebody else's order gets a plain 404.
func (s *Server) GetOrder(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetOrderQuery(orderID, identity.CustomerScope())
	if err != nil {
		return s.writeError(ctx, err)
	}

	detail, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := GetOrderResponse{
		ID:             detail.ID.String(),
		OrderNumber:    detail.OrderNumber,
		CustomerID:     detail.CustomerID.String(),
		Status:         detail.Status.String(),
		PaymentStatus:  detail.PaymentStatus.String(),
		TotalAmount:    newMoneyResponse(detail.TotalAmount),
		TrackingNumber: detail.TrackingNumber,
		VideoURL:       detail.VideoURL,
		Items:          make([]OrderItemResponse, len(detail.Items)),
		History:        make([]StatusHistoryEntryResponse, len(detail.History)),
		ConfirmedAt:    detail.ConfirmedAt,
		CreatedAt:      detail.CreatedAt,
	}
	for i, item := range detail.Items {
		response.Items[i] = OrderItemResponse{
			ID:          item.ID.String(),
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   newMoneyResponse(item.UnitPrice),
			Subtotal:    newMoneyResponse(item.Subtotal),
		}
	}
	for i, entry := range detail.History {
		response.History[i] = StatusHistoryEntryResponse{
			Status:    entry.Status,
			ChangedBy: entry.ChangedBy.String(),
			Notes:     entry.Notes,
			ChangedAt: entry.ChangedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ApproveOrderRequest is the body of POST /api/orders/:id/approve.
type ApproveOrderRequest struct {
	TermsAccepted bool   `json:"terms_accepted"`
	TermsVersion  string `json:"terms_version"`
	PolicyVersion string `json:"policy_version"`
}

// ApproveOrder handles POST /api/orders/:id/approve - the customer accepts
// the order and the recorded terms, moving it from pending approval to
// confirmed.
func (s *Server) ApproveOrder(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req ApproveOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	cmd, err := commands.NewApproveOrderCommand(
		orderID, identity.ActorID, req.TermsAccepted, req.TermsVersion,
		req.PolicyVersion, ctx.RealIP(), ctx.Request().UserAgent())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.approveOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// TrackingRequest carries courier tracking detail for shipping transitions.
type TrackingRequest struct {
	Number      string `json:"number,omitempty"`
	URL         string `json:"url,omitempty"`
	CourierName string `json:"courier_name,omitempty"`
}

// ChangeOrderStatusRequest is the body of PATCH /api/orders/:id/status.
type ChangeOrderStatusRequest struct {
	Status   string          `json:"status"`
	Notes    string          `json:"notes,omitempty"`
	Tracking TrackingRequest `json:"tracking"`
}

// ChangeOrderStatus handles PATCH /api/orders/:id/status - an admin moves the
// order along the fulfillment lifecycle.
func (s *Server) ChangeOrderStatus(ctx echo.Context) error {
	identity, err := requireAdmin(ctx, "change order status")
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req ChangeOrderStatusRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	next, err := order.StatusFromString(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(
		orderID, next, identity.ActorID, req.Notes,
		order.Tracking{
			Number:      req.Tracking.Number,
			URL:         req.Tracking.URL,
			CourierName: req.Tracking.CourierName,
		}, ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AttachOrderVideoRequest is the body of POST /api/orders/:id/video.
type AttachOrderVideoRequest struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// AttachOrderVideo handles POST /api/orders/:id/video - attaches package
// opening evidence, either an uploaded file URL or an external link.
func (s *Server) AttachOrderVideo(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	var req AttachOrderVideoRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, errs.NewValidationErrorWithCause("body", err))
	}

	cmd, err := commands.NewAttachPackageVideoCommand(
		orderID, identity.ActorID, identity.Admin, req.URL,
		order.VideoType(req.Type), ctx.RealIP())
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.attachVideoHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// DownloadInvoice handles GET /api/orders/:id/invoice - renders the order
// invoice as a PDF. Customers can only fetch invoices for their own orders;
// a foreign order id yields the same 404 an unknown id does.
func (s *Server) DownloadInvoice(ctx echo.Context) error {
	identity, err := identityFrom(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}

	uow := s.orderUoWFactory.Create()

	ord, err := uow.OrderRepository().Get(ctx.Request().Context(), orderID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if !identity.Admin && !ord.CustomerID().IsEqual(identity.ActorID) {
		return s.writeError(ctx, errs.NewObjectNotFoundError("order_id", orderID.String()))
	}

	buyer, err := uow.CustomerRepository().Get(ctx.Request().Context(), ord.CustomerID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	document, err := s.invoiceRenderer.RenderInvoice(ord, buyer)
	if err != nil {
		return s.writeError(ctx, err)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, ord.OrderNumber()))
	return ctx.Blob(http.StatusOK, "application/pdf", document)
}

// OrderStatsResponse is the admin dashboard summary.
type OrderStatsResponse struct {
	CountsByStatus map[string]int64 `json:"counts_by_status"`
	RecentOrders   int64            `json:"recent_orders"`
	RecentRevenue  []MoneyResponse  `json:"recent_revenue"`
	OpenReturns    int64            `json:"open_returns"`
	OpenTickets    int64            `json:"open_tickets"`
}

// GetOrderStats handles GET /api/orders/stats - admin dashboard counters over
// a recent window, 30 days unless ?since= narrows it.
func (s *Server) GetOrderStats(ctx echo.Context) error {
	if _, err := requireAdmin(ctx, "view order stats"); err != nil {
		return s.writeError(ctx, err)
	}

	since := time.Now().AddDate(0, 0, -30)
	if raw := ctx.QueryParam("since"); raw != "" {
		parsed, parseErr := time.Parse(time.RFC3339, raw)
		if parseErr != nil {
			return s.writeError(ctx, errs.NewValidationErrorWithCause("since", parseErr))
		}
		since = parsed
	}

	query, err := queries.NewGetOrderStatsQuery(since)
	if err != nil {
		return s.writeError(ctx, err)
	}

	stats, err := s.getOrderStatsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	response := OrderStatsResponse{
		CountsByStatus: make(map[string]int64, len(stats.CountsByStatus)),
		RecentOrders:   stats.RecentOrders,
		RecentRevenue:  make([]MoneyResponse, len(stats.RecentRevenue)),
		OpenReturns:    stats.OpenReturns,
		OpenTickets:    stats.OpenTickets,
	}
	for status, count := range stats.CountsByStatus {
		response.CountsByStatus[status.String()] = count
	}
	for i, revenue := range stats.RecentRevenue {
		response.RecentRevenue[i] = newMoneyResponse(revenue)
	}

	return ctx.JSON(http.StatusOK, response)
}
