package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/events"
	"github.com/hivedesk/helpdesk/internal/repository"
	apperrors "github.com/hivedesk/helpdesk/pkg/util"
)

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	notifier   *NotificationService
	dispatcher events.Dispatcher
}

// TicketDependencies bundles repositories for ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Notifier   *NotificationService
	Dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		notifier:   deps.Notifier,
		dispatcher: deps.Dispatcher,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
}

// TicketUpdateInput describes an edit. Nil fields are untouched. The
// operator field only changes when SetOperator is true, so "not provided"
// and "clear the operator" stay distinguishable.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	Status      *domain.TicketStatus
	OperatorID  *string
	SetOperator bool
}

// CreateTicket creates an open, unassigned ticket for a user.
func (s *TicketService) CreateTicket(ctx context.Context, creatorID string, input TicketCreateInput) (*domain.Ticket, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	priority := input.Priority
	if priority == "" {
		priority = domain.TicketPriorityMedium
	}

	ticket := &domain.Ticket{
		CreatorID:   creatorID,
		Title:       input.Title,
		Description: input.Description,
		Status:      domain.TicketStatusOpen,
		Priority:    priority,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventTicketCreated, creatorID, ticket.ID, events.TicketCreatedPayload{
		Priority: ticket.Priority,
		Title:    ticket.Title,
	})
	return ticket, nil
}

// GetTicket loads a ticket the actor may see.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canAccess(actor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

// ListForCreator lists tickets the user filed.
func (s *TicketService) ListForCreator(ctx context.Context, creatorID string, limit, offset int) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListByCreator(ctx, creatorID, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// ListWithFilter serves staff listings.
func (s *TicketService) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// UpdateTicket applies an edit. When the edit touches the operator field the
// notification fan-out runs synchronously; its failure fails the edit so the
// caller never reports a silently unnotified reassignment.
func (s *TicketService) UpdateTicket(ctx context.Context, editor *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	if editor == nil {
		return nil, apperrors.NewUnauthorized("editor required")
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !canAccess(editor, ticket) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if input.SetOperator && !editor.IsStaff() {
		return nil, apperrors.NewForbidden("insufficient role for assignment")
	}

	oldOperator := ticket.OperatorID

	if input.Title != nil {
		ticket.Title = *input.Title
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	oldStatus := ticket.Status
	if input.Status != nil {
		ticket.Status = *input.Status
		if ticket.Status == domain.TicketStatusClosed && ticket.ClosedAt == nil {
			now := time.Now()
			ticket.ClosedAt = &now
		}
	}
	if input.SetOperator {
		if input.OperatorID != nil {
			if err := s.checkOperator(ctx, *input.OperatorID); err != nil {
				return nil, err
			}
		}
		ticket.OperatorID = input.OperatorID
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.SetOperator {
		if err := s.notifier.NotifyOperatorChange(ctx, ticket, oldOperator, editor.ID); err != nil {
			return nil, apperrors.MapError(err)
		}
		s.publish(ctx, events.EventTicketOperatorChanged, editor.ID, ticket.ID, events.TicketOperatorChangedPayload{
			OldOperatorID: oldOperator,
			NewOperatorID: ticket.OperatorID,
		})
	}
	if input.Status != nil && oldStatus != ticket.Status {
		s.publish(ctx, events.EventTicketStatusChanged, editor.ID, ticket.ID, events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: ticket.Status,
		})
	}
	return ticket, nil
}

// AssignOperator assigns or reassigns the ticket to an operator.
func (s *TicketService) AssignOperator(ctx context.Context, editor *domain.User, ticketID, operatorID string) (*domain.Ticket, error) {
	return s.UpdateTicket(ctx, editor, ticketID, TicketUpdateInput{
		OperatorID:  &operatorID,
		SetOperator: true,
	})
}

// UnassignOperator clears the ticket's operator.
func (s *TicketService) UnassignOperator(ctx context.Context, editor *domain.User, ticketID string) (*domain.Ticket, error) {
	return s.UpdateTicket(ctx, editor, ticketID, TicketUpdateInput{
		SetOperator: true,
	})
}

// DeleteTicket removes a ticket. Admin only.
func (s *TicketService) DeleteTicket(ctx context.Context, actor *domain.User, ticketID string) error {
	if actor == nil || actor.Role != domain.UserRoleAdmin {
		return apperrors.NewForbidden("admin required")
	}
	if err := s.tickets.Delete(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return apperrors.MapError(err)
	}
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// checkOperator verifies the new operator resolves to an active staff user.
// The fan-out itself never validates identifiers; this is the caller-side
// check done here once, before the edit persists.
func (s *TicketService) checkOperator(ctx context.Context, operatorID string) error {
	operator, err := s.users.GetByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("operator", map[string]any{"user_id": operatorID})
		}
		return apperrors.MapError(err)
	}
	if !operator.IsStaff() {
		return apperrors.NewConflict("user is not an operator", map[string]any{"user_id": operatorID})
	}
	if operator.Status != domain.UserStatusActive {
		return apperrors.NewConflict("operator suspended", map[string]any{"user_id": operatorID})
	}
	return nil
}

func canAccess(actor *domain.User, ticket *domain.Ticket) bool {
	if actor == nil {
		return false
	}
	if actor.IsStaff() {
		return true
	}
	return ticket.CreatorID == actor.ID
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, actorID, ticketID string, payload any) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		TicketID:  ticketID,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	_ = s.dispatcher.Publish(ctx, event)
}
