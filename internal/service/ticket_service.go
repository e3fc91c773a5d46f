package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/helpdesk-mx/soporte/internal/domain"
	"github.com/helpdesk-mx/soporte/internal/events"
	"github.com/helpdesk-mx/soporte/internal/repository"
	"github.com/helpdesk-mx/soporte/internal/validation"
	apperrors "github.com/helpdesk-mx/soporte/pkg/util/errorutil"
)

// PageSize is the fixed number of tickets per listing page.
const PageSize = 10

// TicketService coordinates ticket writes and the filtered listing view.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// TicketListFilter describes listing parameters. Nil members mean "no
// filter"; Page is 1-based and clamps to 1.
type TicketListFilter struct {
	Status *domain.TicketStatus
	Search *string
	Page   int
}

// TicketPage is one page of the listing plus its metadata.
type TicketPage struct {
	Items      []domain.Ticket
	Total      int
	Page       int
	PerPage    int
	TotalPages int
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// CreateTicket validates the field set and persists a new ticket. An omitted
// status defaults to open here, after validation, never inside the validator.
func (s *TicketService) CreateTicket(ctx context.Context, fields validation.TicketFields) (*domain.Ticket, error) {
	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	if err := validation.ValidateTicket(ctx, s.users, fields); err != nil {
		return nil, err
	}

	status := domain.TicketStatus(fields.Status)
	if fields.Status == "" {
		status = domain.TicketStatusOpen
	}

	ticket := &domain.Ticket{
		UserID:      fields.UserID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      status,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			UserID: ticket.UserID,
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	return ticket, nil
}

// UpdateTicket replaces title, description, status and user_id of an
// existing ticket. The field set is validated in full, like a create.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, fields validation.TicketFields) (*domain.Ticket, error) {
	existing, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, ticketError(err, id)
	}

	fields.Title = strings.TrimSpace(fields.Title)
	fields.Description = strings.TrimSpace(fields.Description)
	if err := validation.ValidateTicket(ctx, s.users, fields); err != nil {
		return nil, err
	}

	status := domain.TicketStatus(fields.Status)
	if fields.Status == "" {
		status = existing.Status
	}

	ticket := &domain.Ticket{
		ID:          existing.ID,
		UserID:      fields.UserID,
		Title:       fields.Title,
		Description: fields.Description,
		Status:      status,
		CreatedAt:   existing.CreatedAt,
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, ticketError(err, id)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: ticket.ID,
		Payload: events.TicketUpdatedPayload{
			UserID: ticket.UserID,
			Title:  ticket.Title,
			Status: ticket.Status,
		},
	})
	if existing.Status != ticket.Status {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: existing.Status,
				NewStatus: ticket.Status,
			},
		})
	}
	return ticket, nil
}

// DeleteTicket removes a ticket permanently. There is no recovery path.
func (s *TicketService) DeleteTicket(ctx context.Context, id string) error {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return ticketError(err, id)
	}
	if err := s.tickets.Delete(ctx, id); err != nil {
		return ticketError(err, id)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: id,
		Payload: events.TicketDeletedPayload{
			UserID: ticket.UserID,
			Title:  ticket.Title,
		},
	})
	return nil
}

// GetTicket fetches a ticket joined with its owning user.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, ticketError(err, id)
	}
	return ticket, nil
}

// ListTickets returns the requested page of the filtered, sorted listing.
// Pages past the end are valid empty pages, never an error.
func (s *TicketService) ListTickets(ctx context.Context, filter TicketListFilter) (*TicketPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}

	items, total, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{
		Status: filter.Status,
		Search: filter.Search,
		Limit:  PageSize,
		Offset: (page - 1) * PageSize,
	})
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	totalPages := (total + PageSize - 1) / PageSize
	return &TicketPage{
		Items:      items,
		Total:      total,
		Page:       page,
		PerPage:    PageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func ticketError(err error, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	return apperrors.MapError(err)
}
