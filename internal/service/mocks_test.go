package service

import (
	"context"

	"github.com/hivedesk/helpdesk/internal/domain"
	"github.com/hivedesk/helpdesk/internal/repository"
)

type mockTicketRepo struct {
	CreateFunc         func(ctx context.Context, ticket *domain.Ticket) error
	UpdateFunc         func(ctx context.Context, ticket *domain.Ticket) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Ticket, error)
	DeleteFunc         func(ctx context.Context, id string) error
	ListByCreatorFunc  func(ctx context.Context, creatorID string, limit, offset int) ([]domain.Ticket, error)
	ListWithFilterFunc func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	return m.CreateFunc(ctx, ticket)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	return m.UpdateFunc(ctx, ticket)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockTicketRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *mockTicketRepo) ListByCreator(ctx context.Context, creatorID string, limit, offset int) ([]domain.Ticket, error) {
	return m.ListByCreatorFunc(ctx, creatorID, limit, offset)
}

func (m *mockTicketRepo) ListWithFilter(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	return m.ListWithFilterFunc(ctx, filter)
}

type mockUserRepo struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	UpdateFunc      func(ctx context.Context, user *domain.User) error
	GetByIDFunc     func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc  func(ctx context.Context, email string) (*domain.User, error)
	ListByRolesFunc func(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFunc(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFunc(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *mockUserRepo) ListByRoles(ctx context.Context, roles ...domain.UserRole) ([]domain.User, error) {
	return m.ListByRolesFunc(ctx, roles...)
}

type mockNotificationRepo struct {
	CreateNotificationFunc  func(ctx context.Context, notification *domain.Notification) error
	CreateRecipientLinkFunc func(ctx context.Context, link *domain.RecipientLink) error
	ListForUserFunc         func(ctx context.Context, userID string, limit, offset int) ([]repository.UserNotification, error)
	MarkReadFunc            func(ctx context.Context, notificationID, userID string) error
	CountUnreadFunc         func(ctx context.Context, userID string) (int64, error)

	notifications []domain.Notification
	links         []domain.RecipientLink
}

func (m *mockNotificationRepo) CreateNotification(ctx context.Context, notification *domain.Notification) error {
	if m.CreateNotificationFunc != nil {
		if err := m.CreateNotificationFunc(ctx, notification); err != nil {
			return err
		}
	}
	m.notifications = append(m.notifications, *notification)
	return nil
}

func (m *mockNotificationRepo) CreateRecipientLink(ctx context.Context, link *domain.RecipientLink) error {
	if m.CreateRecipientLinkFunc != nil {
		if err := m.CreateRecipientLinkFunc(ctx, link); err != nil {
			return err
		}
	}
	m.links = append(m.links, *link)
	return nil
}

func (m *mockNotificationRepo) ListForUser(ctx context.Context, userID string, limit, offset int) ([]repository.UserNotification, error) {
	return m.ListForUserFunc(ctx, userID, limit, offset)
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, notificationID, userID string) error {
	return m.MarkReadFunc(ctx, notificationID, userID)
}

func (m *mockNotificationRepo) CountUnread(ctx context.Context, userID string) (int64, error) {
	return m.CountUnreadFunc(ctx, userID)
}

type mockAttachmentRepo struct {
	CreateFunc        func(ctx context.Context, attachment *domain.Attachment) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.Attachment, error)
	ListByTicketFunc  func(ctx context.Context, ticketID string) ([]domain.Attachment, error)
	UpdateContentFunc func(ctx context.Context, id, path, fileName, mimeType string, sizeBytes int64) error
	DeleteFunc        func(ctx context.Context, id string) error
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	return m.CreateFunc(ctx, attachment)
}

func (m *mockAttachmentRepo) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	return m.ListByTicketFunc(ctx, ticketID)
}

func (m *mockAttachmentRepo) UpdateContent(ctx context.Context, id, path, fileName, mimeType string, sizeBytes int64) error {
	return m.UpdateContentFunc(ctx, id, path, fileName, mimeType, sizeBytes)
}

func (m *mockAttachmentRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func strPtr(s string) *string { return &s }

func staffUser(id string, role domain.UserRole) *domain.User {
	return &domain.User{ID: id, Role: role, Status: domain.UserStatusActive}
}
