package commands

import (
	"errors"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/core/domain/model/order"
	"atelier/internal/pkg/guard"
)

var (
	ErrAttachPackageVideoCommandIsNotConstructed = errors.New(
		"AttachPackageVideoCommand must be created via NewAttachPackageVideoCommand constructor",
	)
	ErrVideoURLIsRequired = errors.New("video url is required")
)

// AttachPackageVideoCommand represents a request to attach a package-opening
// video to an order, either as an externally hosted link or as a reference to
// an upload in the system's own media store.
type AttachPackageVideoCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	actorID   kernel.UUID
	asAdmin   bool
	url       string
	videoType order.VideoType
	ip        string

	guard guard.ConstructorGuard
}

// NewAttachPackageVideoCommand creates an attach-video command. asAdmin marks
// staff callers, who may attach videos to any order; customers only to their
// own.
func NewAttachPackageVideoCommand(
	orderID kernel.UUID,
	actorID kernel.UUID,
	asAdmin bool,
	url string,
	videoType order.VideoType,
	ip string,
) (AttachPackageVideoCommand, error) {
	cmd := AttachPackageVideoCommand{
		asAdmin: asAdmin,
		ip:      ip,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActorID(actorID),
		cmd.setURL(url),
		cmd.setVideoType(videoType),
	); err != nil {
		return AttachPackageVideoCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachPackageVideoCommand) Validate() error {
	return c.guard.Validate(ErrAttachPackageVideoCommandIsNotConstructed)
}

// OrderID returns the order the video belongs to.
func (c AttachPackageVideoCommand) OrderID() kernel.UUID { return c.orderID }

// ActorID returns the user attaching the video.
func (c AttachPackageVideoCommand) ActorID() kernel.UUID { return c.actorID }

// AsAdmin reports whether the actor is staff.
func (c AttachPackageVideoCommand) AsAdmin() bool { return c.asAdmin }

// URL returns the video location.
func (c AttachPackageVideoCommand) URL() string { return c.url }

// VideoType reports whether the video is an upload or an external link.
func (c AttachPackageVideoCommand) VideoType() order.VideoType { return c.videoType }

// IP returns the requesting client address.
func (c AttachPackageVideoCommand) IP() string { return c.ip }

func (c *AttachPackageVideoCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *AttachPackageVideoCommand) setActorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.actorID = id
	return nil
}

func (c *AttachPackageVideoCommand) setURL(url string) error {
	if url == "" {
		return ErrVideoURLIsRequired
	}
	c.url = url
	return nil
}

func (c *AttachPackageVideoCommand) setVideoType(videoType order.VideoType) error {
	if err := videoType.Validate(); err != nil {
		return err
	}
	c.videoType = videoType
	return nil
}
