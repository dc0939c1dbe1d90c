package cmd

import (
	"log/slog"

	httpin "atelier/internal/adapters/in/http"
	"atelier/internal/adapters/out/media"
	"atelier/internal/adapters/out/pdf"
	"atelier/internal/adapters/out/postgres"
	"atelier/internal/adapters/out/smtp"
	"atelier/internal/core/application/usecases/commands"
	"atelier/internal/core/application/usecases/queries"
	"atelier/internal/core/domain/services"
	"atelier/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application's use cases.
type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	notifier        *smtp.Notifier
	mediaStore      *media.LocalStore
	invoiceRenderer *pdf.InvoiceRenderer
	linkValidator   services.VideoLinkValidator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	mediaStore, err := media.NewLocalStore(config.MediaDir, config.MediaURLPrefix)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		notifier: smtp.NewNotifier(smtp.Config{
			Host:     config.SMTPHost,
			Port:     config.SMTPPort,
			User:     config.SMTPUser,
			Pass:     config.SMTPPassword,
			From:     config.SMTPFrom,
			FromName: config.SMTPFromName,
			StartTLS: config.SMTPStartTLS,
		}),
		mediaStore: mediaStore,
		invoiceRenderer: pdf.NewInvoiceRenderer(pdf.Seller{
			Name:    config.SellerName,
			Address: config.SellerAddress,
			VAT:     config.SellerVAT,
			Email:   config.SellerEmail,
		}),
		linkValidator: services.NewVideoLinkValidator(mediaStore.Host()),
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateApproveOrderCommandHandler() commands.ApproveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewApproveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeOrderStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateAttachPackageVideoCommandHandler() commands.AttachPackageVideoCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAttachPackageVideoCommandHandler(f, c.linkValidator)
}

func (c *CompositionRoot) CreateCreateReturnCommandHandler() commands.CreateReturnCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateReturnCommandHandler(f, c.linkValidator)
}

func (c *CompositionRoot) CreateChangeReturnStatusCommandHandler() commands.ChangeReturnStatusCommandHandler {
	var f commands.ReturnUoWFactory = FuncReturnUoWFactory(func() commands.ReturnUoW {
		return c.uowFactory.Create()
	})
	return commands.NewChangeReturnStatusCommandHandler(f)
}

func (c *CompositionRoot) CreateOpenTicketCommandHandler() commands.OpenTicketCommandHandler {
	var f commands.TicketUoWFactory = FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewOpenTicketCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateTicketCommandHandler() commands.UpdateTicketCommandHandler {
	var f commands.TicketUoWFactory = FuncTicketUoWFactory(func() commands.TicketUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateTicketCommandHandler(f)
}

func (c *CompositionRoot) CreateUpsertSettingCommandHandler() commands.UpsertSettingCommandHandler {
	var f commands.SettingsUoWFactory = FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertSettingCommandHandler(f)
}

func (c *CompositionRoot) CreatePublishPolicyCommandHandler() commands.PublishPolicyCommandHandler {
	var f commands.SettingsUoWFactory = FuncSettingsUoWFactory(func() commands.SettingsUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPublishPolicyCommandHandler(f)
}

func (c *CompositionRoot) CreateDrainOutboxCommandHandler() commands.DrainOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDrainOutboxCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListReturnsQueryHandler() queries.ListReturnsQueryHandler {
	return queries.NewListReturnsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListTicketsQueryHandler() queries.ListTicketsQueryHandler {
	return queries.NewListTicketsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTicketQueryHandler() queries.GetTicketQueryHandler {
	return queries.NewGetTicketQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderStatsQueryHandler() queries.GetOrderStatsQueryHandler {
	return queries.NewGetOrderStatsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSettingQueryHandler() queries.GetSettingQueryHandler {
	return queries.NewGetSettingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActivePolicyQueryHandler() queries.GetActivePolicyQueryHandler {
	return queries.NewGetActivePolicyQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the REST server from the use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	var orderUoWFactory commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})

	return httpin.NewServer(httpin.ServerParams{
		CreateOrderHandler:        c.CreateCreateOrderCommandHandler(),
		ApproveOrderHandler:       c.CreateApproveOrderCommandHandler(),
		ChangeOrderStatusHandler:  c.CreateChangeOrderStatusCommandHandler(),
		AttachVideoHandler:        c.CreateAttachPackageVideoCommandHandler(),
		CreateReturnHandler:       c.CreateCreateReturnCommandHandler(),
		ChangeReturnStatusHandler: c.CreateChangeReturnStatusCommandHandler(),
		OpenTicketHandler:         c.CreateOpenTicketCommandHandler(),
		UpdateTicketHandler:       c.CreateUpdateTicketCommandHandler(),
		UpsertSettingHandler:      c.CreateUpsertSettingCommandHandler(),
		PublishPolicyHandler:      c.CreatePublishPolicyCommandHandler(),
		ListOrdersHandler:         c.CreateListOrdersQueryHandler(),
		GetOrderHandler:           c.CreateGetOrderQueryHandler(),
		ListReturnsHandler:        c.CreateListReturnsQueryHandler(),
		ListTicketsHandler:        c.CreateListTicketsQueryHandler(),
		GetTicketHandler:          c.CreateGetTicketQueryHandler(),
		GetOrderStatsHandler:      c.CreateGetOrderStatsQueryHandler(),
		GetSettingHandler:         c.CreateGetSettingQueryHandler(),
		GetActivePolicyHandler:    c.CreateGetActivePolicyQueryHandler(),
		LinkValidator:             c.linkValidator,
		MediaStore:                c.mediaStore,
		InvoiceRenderer:           c.invoiceRenderer,
		OrderUoWFactory:           orderUoWFactory,
		Production:                c.config.IsProduction(),
	})
}

// CreateJobManager assembles the background jobs.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDrainOutboxCommandHandler(), logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReturnUoWFactory func() commands.ReturnUoW

func (f FuncReturnUoWFactory) Create() commands.ReturnUoW {
	return f()
}

type FuncTicketUoWFactory func() commands.TicketUoW

func (f FuncTicketUoWFactory) Create() commands.TicketUoW {
	return f()
}

type FuncSettingsUoWFactory func() commands.SettingsUoW

func (f FuncSettingsUoWFactory) Create() commands.SettingsUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
