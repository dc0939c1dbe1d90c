// Package http exposes the application use cases over a REST API built on
// Echo. Handlers parse and bind requests, resolve the acting principal from
// the gateway headers, and delegate to the command and query handlers; they
// hold no business rules of their own. Domain error kinds are mapped onto
// HTTP status codes in errors.go.
package http

import (
	"net/http"

	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/services"
	"atelier/internal/core/ports"

	"github.com/labstack/echo/v4"
)

// ServerParams carries everything the server needs, wired up by the
// composition root.
type ServerParams struct {
	// Command handlers
	CreateOrderHandler        commands.CreateOrderCommandHandler
	ApproveOrderHandler       commands.ApproveOrderCommandHandler
	ChangeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	AttachVideoHandler        commands.AttachPackageVideoCommandHandler
	CreateReturnHandler       commands.CreateReturnCommandHandler
	ChangeReturnStatusHandler commands.ChangeReturnStatusCommandHandler
	OpenTicketHandler         commands.OpenTicketCommandHandler
	UpdateTicketHandler       commands.UpdateTicketCommandHandler
	UpsertSettingHandler      commands.UpsertSettingCommandHandler
	PublishPolicyHandler      commands.PublishPolicyCommandHandler

	// Query handlers
	ListOrdersHandler      queries.ListOrdersQueryHandler
	GetOrderHandler        queries.GetOrderQueryHandler
	ListReturnsHandler     queries.ListReturnsQueryHandler
	ListTicketsHandler     queries.ListTicketsQueryHandler
	GetTicketHandler       queries.GetTicketQueryHandler
	GetOrderStatsHandler   queries.GetOrderStatsQueryHandler
	GetSettingHandler      queries.GetSettingQueryHandler
	GetActivePolicyHandler queries.GetActivePolicyQueryHandler

	// Collaborators used directly by the edge: link validation and media
	// upload have no transactional state, invoices read aggregates as-is.
	LinkValidator   services.VideoLinkValidator
	MediaStore      ports.MediaStore
	InvoiceRenderer ports.InvoiceRenderer
	OrderUoWFactory commands.OrderUoWFactory

	// Production suppresses error detail in responses.
	Production bool
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler        commands.CreateOrderCommandHandler
	approveOrderHandler       commands.ApproveOrderCommandHandler
	changeOrderStatusHandler  commands.ChangeOrderStatusCommandHandler
	attachVideoHandler        commands.AttachPackageVideoCommandHandler
	createReturnHandler       commands.CreateReturnCommandHandler
	changeReturnStatusHandler commands.ChangeReturnStatusCommandHandler
	openTicketHandler         commands.OpenTicketCommandHandler
	updateTicketHandler       commands.UpdateTicketCommandHandler
	upsertSettingHandler      commands.UpsertSettingCommandHandler
	publishPolicyHandler      commands.PublishPolicyCommandHandler

	listOrdersHandler      queries.ListOrdersQueryHandler
	getOrderHandler        queries.GetOrderQueryHandler
	listReturnsHandler     queries.ListReturnsQueryHandler
	listTicketsHandler     queries.ListTicketsQueryHandler
	getTicketHandler       queries.GetTicketQueryHandler
	getOrderStatsHandler   queries.GetOrderStatsQueryHandler
	getSettingHandler      queries.GetSettingQueryHandler
	getActivePolicyHandler queries.GetActivePolicyQueryHandler

	linkValidator   services.VideoLinkValidator
	mediaStore      ports.MediaStore
	invoiceRenderer ports.InvoiceRenderer
	orderUoWFactory commands.OrderUoWFactory

	production bool
}

// NewServer creates a new HTTP server with the required collaborators.
func NewServer(params ServerParams) *Server {
	return &Server{
		createOrderHandler:        params.CreateOrderHandler,
		approveOrderHandler:       params.ApproveOrderHandler,
		changeOrderStatusHandler:  params.ChangeOrderStatusHandler,
		attachVideoHandler:        params.AttachVideoHandler,
		createReturnHandler:       params.CreateReturnHandler,
		changeReturnStatusHandler: params.ChangeReturnStatusHandler,
		openTicketHandler:         params.OpenTicketHandler,
		updateTicketHandler:       params.UpdateTicketHandler,
		upsertSettingHandler:      params.UpsertSettingHandler,
		publishPolicyHandler:      params.PublishPolicyHandler,
		listOrdersHandler:         params.ListOrdersHandler,
		getOrderHandler:           params.GetOrderHandler,
		listReturnsHandler:        params.ListReturnsHandler,
		listTicketsHandler:        params.ListTicketsHandler,
		getTicketHandler:          params.GetTicketHandler,
		getOrderStatsHandler:      params.GetOrderStatsHandler,
		getSettingHandler:         params.GetSettingHandler,
		getActivePolicyHandler:    params.GetActivePolicyHandler,
		linkValidator:             params.LinkValidator,
		mediaStore:                params.MediaStore,
		invoiceRenderer:           params.InvoiceRenderer,
		orderUoWFactory:           params.OrderUoWFactory,
		production:                params.Production,
	}
}

// RegisterRoutes mounts the API under /api behind the identity middleware.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api", IdentityMiddleware())

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/stats", s.GetOrderStats)
	orders.GET("/:id", s.GetOrder)
	orders.POST("/:id/approve", s.ApproveOrder)
	orders.PATCH("/:id/status", s.ChangeOrderStatus)
	orders.POST("/:id/video", s.AttachOrderVideo)
	orders.GET("/:id/invoice", s.DownloadInvoice)

	rets := api.Group("/returns")
	rets.POST("", s.CreateReturn)
	rets.GET("", s.ListReturns)
	rets.PATCH("/:id/status", s.ChangeReturnStatus)

	support := api.Group("/support")
	support.POST("/tickets", s.OpenTicket)
	support.GET("/tickets", s.ListTickets)
	support.GET("/tickets/:id", s.GetTicket)
	support.PATCH("/tickets/:id", s.UpdateTicket)

	siteSettings := api.Group("/settings")
	siteSettings.GET("/policies/:kind", s.GetActivePolicy)
	siteSettings.POST("/policies", s.PublishPolicy)
	siteSettings.GET("/:key", s.GetSiteSetting)
	siteSettings.PUT("/:key", s.UpdateSiteSetting)

	video := api.Group("/video")
	video.POST("/validate", s.ValidateVideoLink)
	video.POST("/upload", s.UploadVideo)
}

// Health handles GET /health - liveness probe, no auth.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
