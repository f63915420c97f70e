package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/event"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
)

// ContactService handles the contact form and the admin inbox.
type ContactService struct {
	repo   repository.ContactRepository
	events event.Publisher
	info   domain.ContactInfo
	logger *slog.Logger
}

func NewContactService(repo repository.ContactRepository, events event.Publisher, logger *slog.Logger) *ContactService {
	return &ContactService{repo: repo, events: events, info: domain.DefaultContactInfo(), logger: logger}
}

// Info returns the static contact card.
func (s *ContactService) Info() domain.ContactInfo {
	return s.info
}

// SendInput is a submitted contact form.
type SendInput struct {
	Name             string
	Phone            string
	Email            *string
	Topic            *string
	Message          string
	PreferredContact string
}

// Send stores a new unread message and notifies staff through the event
// stream.
func (s *ContactService) Send(ctx context.Context, in SendInput) (*domain.ContactReceipt, error) {
	preferred := in.PreferredContact
	if preferred == "" {
		preferred = domain.DefaultPreferredContact
	}

	m := &domain.ContactMessage{
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            trimmedOrNil(in.Email),
		Topic:            trimmedOrNil(in.Topic),
		Message:          in.Message,
		PreferredContact: preferred,
		Status:           domain.ContactStatusNew,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create contact message: %w", err)
	}

	if err := s.events.ContactReceived(ctx, m); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish contact.received event",
			slog.Int64("contact_id", m.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "contact message received", slog.Int64("contact_id", m.ID))
	return &domain.ContactReceipt{OK: true, ID: m.ID, ReceivedAt: m.CreatedAt, Note: domain.ContactReceivedNote}, nil
}

func (s *ContactService) List(ctx context.Context, f domain.ContactFilter) ([]domain.ContactMessage, error) {
	return s.repo.List(ctx, f)
}

func (s *ContactService) Get(ctx context.Context, id int64) (*domain.ContactMessage, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies an admin patch and returns the stored message.
func (s *ContactService) Update(ctx context.Context, id int64, patch domain.ContactPatch) (*domain.ContactMessage, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(m)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "contact message updated",
		slog.Int64("contact_id", m.ID),
		slog.String("status", m.Status),
		slog.Bool("is_read", m.IsRead),
	)
	return m, nil
}

func (s *ContactService) Delete(ctx context.Context, id int64) (domain.Deleted, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Deleted{}, err
	}
	s.logger.InfoContext(ctx, "contact message deleted", slog.Int64("contact_id", id))
	return domain.Deleted{OK: true, DeletedID: id}, nil
}
