package ticket

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"atelier/internal/core/domain/model/kernel"
	"atelier/internal/pkg/errs"
)

var (
	// ErrTicketIsNotConstructed is returned when a Ticket instance was not
	// created through the NewTicket factory method.
	ErrTicketIsNotConstructed = errors.New("Ticket must be created via NewTicket constructor")
)

// Message is a single entry in a ticket's conversation thread.
type Message struct {
	id        kernel.UUID
	authorID  kernel.UUID
	fromAdmin bool
	body      string
	createdAt time.Time
}

// NewMessage creates a conversation entry. The body must be non-blank.
func NewMessage(id kernel.UUID, authorID kernel.UUID, fromAdmin bool, body string, createdAt time.Time) (*Message, error) {
	if err := errors.Join(id.Validate(), authorID.Validate()); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, errs.NewValidationError("body")
	}

	return &Message{
		id:        id,
		authorID:  authorID,
		fromAdmin: fromAdmin,
		body:      body,
		createdAt: createdAt,
	}, nil
}

// ID returns the message identifier.
func (m *Message) ID() kernel.UUID { return m.id }

// AuthorID returns the user who wrote the message.
func (m *Message) AuthorID() kernel.UUID { return m.authorID }

// FromAdmin reports whether support staff wrote the message.
func (m *Message) FromAdmin() bool { return m.fromAdmin }

// Body returns the message text.
func (m *Message) Body() string { return m.body }

// CreatedAt returns the message timestamp.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// Ticket represents a support conversation opened by a customer, optionally
// linked to one of their orders. It is the aggregate root owning its messages.
type Ticket struct {
	id           kernel.UUID
	ticketNumber string
	customerID   kernel.UUID
	orderID      *kernel.UUID
	subject      string
	category     Category
	priority     Priority
	status       Status
	assigneeID   *kernel.UUID
	messages     []*Message

	resolvedAt *time.Time
	createdAt  time.Time

	isConstructed bool
}

// NewSpec carries the inputs for opening a support ticket.
type NewSpec struct {
	ID           kernel.UUID
	TicketNumber string
	CustomerID   kernel.UUID
	OrderID      *kernel.UUID
	Subject      string
	Category     Category
	Priority     Priority
	FirstMessage *Message
	CreatedAt    time.Time
}

// NewTicket opens a ticket in Open status with its first message. An empty
// priority defaults to medium.
func NewTicket(spec NewSpec) (*Ticket, error) {
	if spec.Priority == "" {
		spec.Priority = PriorityMedium
	}

	ticket := &Ticket{
		status:        Open,
		createdAt:     spec.CreatedAt,
		isConstructed: true,
	}

	if err := errors.Join(
		ticket.setID(spec.ID),
		ticket.setTicketNumber(spec.TicketNumber),
		ticket.setCustomerID(spec.CustomerID),
		ticket.setOrderID(spec.OrderID),
		ticket.setSubject(spec.Subject),
		ticket.setCategory(spec.Category),
		ticket.setPriority(spec.Priority),
		ticket.setFirstMessage(spec.FirstMessage),
	); err != nil {
		return nil, err
	}

	return ticket, nil
}

// RestoreSpec carries the full persisted state of a ticket for rehydration.
type RestoreSpec struct {
	ID           kernel.UUID
	TicketNumber string
	CustomerID   kernel.UUID
	OrderID      *kernel.UUID
	Subject      string
	Category     Category
	Priority     Priority
	Status       Status
	AssigneeID   *kernel.UUID
	Messages     []*Message
	ResolvedAt   *time.Time
	CreatedAt    time.Time
}

// RestoreTicket reconstructs a Ticket from persistence.
func RestoreTicket(spec RestoreSpec) (*Ticket, error) {
	if err := errors.Join(
		spec.ID.Validate(),
		spec.CustomerID.Validate(),
		spec.Status.Validate(),
		spec.Category.Validate(),
		spec.Priority.Validate(),
	); err != nil {
		return nil, err
	}
	if spec.TicketNumber == "" {
		return nil, errs.NewValidationError("ticket_number")
	}

	return &Ticket{
		id:            spec.ID,
		ticketNumber:  spec.TicketNumber,
		customerID:    spec.CustomerID,
		orderID:       spec.OrderID,
		subject:       spec.Subject,
		category:      spec.Category,
		priority:      spec.Priority,
		status:        spec.Status,
		assigneeID:    spec.AssigneeID,
		messages:      spec.Messages,
		resolvedAt:    spec.ResolvedAt,
		createdAt:     spec.CreatedAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Ticket instance was properly constructed.
func (t *Ticket) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTicketIsNotConstructed
	}
	return nil
}

// IsEqual compares two tickets by their unique identifiers.
func (t *Ticket) IsEqual(other *Ticket) bool {
	return other != nil && t.id.IsEqual(other.id)
}

// ID returns the ticket's unique identifier.
func (t *Ticket) ID() kernel.UUID { return t.id }

// TicketNumber returns the immutable human-readable ticket number.
func (t *Ticket) TicketNumber() string { return t.ticketNumber }

// CustomerID returns the opening customer's identifier.
func (t *Ticket) CustomerID() kernel.UUID { return t.customerID }

// OrderID returns the linked order, or nil.
func (t *Ticket) OrderID() *kernel.UUID { return t.orderID }

// Subject returns the ticket subject line.
func (t *Ticket) Subject() string { return t.subject }

// Category returns the ticket category.
func (t *Ticket) Category() Category { return t.category }

// Priority returns the ticket priority.
func (t *Ticket) Priority() Priority { return t.priority }

// Status returns the current handling status.
func (t *Ticket) Status() Status { return t.status }

// AssigneeID returns the handling admin, or nil while unassigned.
func (t *Ticket) AssigneeID() *kernel.UUID { return t.assigneeID }

// Messages returns the conversation thread in insertion order.
func (t *Ticket) Messages() []*Message { return t.messages }

// ResolvedAt returns the resolution timestamp, or nil.
func (t *Ticket) ResolvedAt() *time.Time { return t.resolvedAt }

// CreatedAt returns the creation timestamp.
func (t *Ticket) CreatedAt() time.Time { return t.createdAt }

// AddMessage appends a reply to the thread. A customer reply moves an
// in-progress or waiting-customer ticket to WaitingAdmin; an admin reply moves
// a waiting-admin or open ticket to the admin side. Closed tickets reject
// further messages.
func (t *Ticket) AddMessage(message *Message) error {
	if message == nil {
		return errs.NewValidationError("message")
	}
	if t.status == Closed {
		return errs.NewConflictError("status",
			fmt.Sprintf("ticket %s is closed", t.ticketNumber))
	}

	t.messages = append(t.messages, message)

	if message.fromAdmin {
		if t.status == Open || t.status == WaitingAdmin {
			t.status = InProgress
		}
	} else {
		if t.status == InProgress || t.status == WaitingCustomer {
			t.status = WaitingAdmin
		}
	}
	return nil
}

// Assign sets the handling admin and moves an open ticket to InProgress.
func (t *Ticket) Assign(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if t.status == Closed {
		return errs.NewConflictError("status",
			fmt.Sprintf("ticket %s is closed", t.ticketNumber))
	}

	t.assigneeID = &adminID
	if t.status == Open {
		t.status = InProgress
	}
	return nil
}

// ChangeStatus applies an admin-initiated status change, validated against the
// transition graph. Moving to Resolved stamps the resolution timestamp.
func (t *Ticket) ChangeStatus(next Status, at time.Time) error {
	newStatus, err := t.status.TransitionTo(next)
	if err != nil {
		return err
	}

	t.status = newStatus
	if newStatus == Resolved {
		stamp := at
		t.resolvedAt = &stamp
	}
	return nil
}

// ChangePriority updates the ticket priority.
func (t *Ticket) ChangePriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.priority = priority
	return nil
}

func (t *Ticket) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.id = id
	return nil
}

func (t *Ticket) setTicketNumber(number string) error {
	if number == "" {
		return errs.NewValidationError("ticket_number")
	}
	t.ticketNumber = number
	return nil
}

func (t *Ticket) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	t.customerID = id
	return nil
}

func (t *Ticket) setOrderID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	t.orderID = id
	return nil
}

func (t *Ticket) setSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return errs.NewValidationError("subject")
	}
	t.subject = subject
	return nil
}

func (t *Ticket) setCategory(category Category) error {
	if err := category.Validate(); err != nil {
		return err
	}
	t.category = category
	return nil
}

func (t *Ticket) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	t.priority = priority
	return nil
}

func (t *Ticket) setFirstMessage(message *Message) error {
	if message == nil {
		return errs.NewValidationErrorWithCause("message",
			errors.New("a ticket is opened with its first message"))
	}
	t.messages = []*Message{message}
	return nil
}
