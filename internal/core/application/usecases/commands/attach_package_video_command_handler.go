package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/audit"
	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/core/domain/services"
	"atelier/internal/pkg/errs"
)

// AttachPackageVideoCommandHandler stores a package-opening video reference on
// an order. External links are validated by the VideoLinkValidator first;
// suspicious substrings it flags end up in the activity log entry.
type AttachPackageVideoCommandHandler struct {
	uowFactory OrderUoWFactory
	validator  services.VideoLinkValidator
}

// NewAttachPackageVideoCommandHandler creates a handler for video attachments.
func NewAttachPackageVideoCommandHandler(
	uowFactory OrderUoWFactory,
	validator services.VideoLinkValidator,
) AttachPackageVideoCommandHandler {
	return AttachPackageVideoCommandHandler{
		uowFactory: uowFactory,
		validator:  validator,
	}
}

// Handle processes the attach-video command.
func (h AttachPackageVideoCommandHandler) Handle(ctx context.Context, cmd AttachPackageVideoCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	var report services.LinkReport
	if cmd.VideoType() == order.VideoLink {
		var err error
		if report, err = h.validator.Validate(cmd.URL()); err != nil {
			return err
		}
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if !cmd.AsAdmin() && !aggregate.CustomerID().IsEqual(cmd.ActorID()) {
		return errs.NewAuthorizationError("attach video")
	}

	now := time.Now().UTC()
	if err = aggregate.AttachVideo(cmd.URL(), cmd.VideoType(), now); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	details := fmt.Sprintf(`{"order_number":%q,"video_type":%q`,
		aggregate.OrderNumber(), cmd.VideoType())
	if len(report.Suspicious) > 0 {
		details += fmt.Sprintf(`,"flagged":%q`, strings.Join(report.Suspicious, " "))
	}
	details += "}"

	activity, err := audit.NewActivityLog(
		kernel.NewUUID(), cmd.ActorID(), "order.attach_video", audit.EntityOrder, aggregate.ID(),
		details, cmd.IP(), now)
	if err != nil {
		return err
	}
	if err = uow.AuditRepository().AppendActivity(ctx, activity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
