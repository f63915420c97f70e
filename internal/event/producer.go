package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	pkgkafka "github.com/Pavlo-fo95/ls-resort-backend/pkg/kafka"
)

// Event types. The topic is derived with pkgkafka.Topic.
const (
	TypeUserRegistered  = "user.registered"
	TypeContactReceived = "contact.received"
	TypeReviewSubmitted = "review.submitted"
)

const (
	AggregateTypeUser    = "user"
	AggregateTypeContact = "contact_message"
	AggregateTypeReview  = "review"

	Source = "ls-resort-backend"
)

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID    int64   `json:"id"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	Role  string  `json:"role"`
}

// ContactReceivedData is the payload for a contact.received event.
type ContactReceivedData struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Phone            string  `json:"phone"`
	Email            *string `json:"email,omitempty"`
	Topic            *string `json:"topic,omitempty"`
	PreferredContact string  `json:"preferred_contact"`
}

// ReviewSubmittedData is the payload for a review.submitted event.
type ReviewSubmittedData struct {
	ID         int64   `json:"id"`
	AuthorName string  `json:"author_name"`
	Rating     *int    `json:"rating,omitempty"`
	Sentiment  *string `json:"sentiment,omitempty"`
}

// Publisher emits domain events. Callers treat failures as non-fatal.
type Publisher interface {
	UserRegistered(ctx context.Context, u *domain.User) error
	ContactReceived(ctx context.Context, m *domain.ContactMessage) error
	ReviewSubmitted(ctx context.Context, r *domain.Review) error
}

type eventWriter interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// PublishTimeout bounds each publish made from a request.
const PublishTimeout = 2 * time.Second

// Producer publishes domain events to Kafka.
type Producer struct {
	kafka   eventWriter
	timeout time.Duration
	logger  *slog.Logger
}

func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, timeout: PublishTimeout, logger: logger}
}

func (p *Producer) UserRegistered(ctx context.Context, u *domain.User) error {
	return p.publish(ctx, TypeUserRegistered, u.ID, AggregateTypeUser, UserRegisteredData{
		ID:    u.ID,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	})
}

func (p *Producer) ContactReceived(ctx context.Context, m *domain.ContactMessage) error {
	return p.publish(ctx, TypeContactReceived, m.ID, AggregateTypeContact, ContactReceivedData{
		ID:               m.ID,
		Name:             m.Name,
		Phone:            m.Phone,
		Email:            m.Email,
		Topic:            m.Topic,
		PreferredContact: m.PreferredContact,
	})
}

func (p *Producer) ReviewSubmitted(ctx context.Context, r *domain.Review) error {
	return p.publish(ctx, TypeReviewSubmitted, r.ID, AggregateTypeReview, ReviewSubmittedData{
		ID:         r.ID,
		AuthorName: r.AuthorName,
		Rating:     r.Rating,
		Sentiment:  r.Sentiment,
	})
}

func (p *Producer) publish(ctx context.Context, eventType string, id int64, aggregate string, data any) error {
	aggregateID := strconv.FormatInt(id, 10)
	evt, err := pkgkafka.NewEvent(eventType, aggregateID, aggregate, Source, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}

	pubCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		pubCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	if err := p.kafka.Publish(pubCtx, pkgkafka.Topic(eventType), evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", aggregateID),
	)
	return nil
}

// NopPublisher discards every event. It is used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) UserRegistered(context.Context, *domain.User) error            { return nil }
func (NopPublisher) ContactReceived(context.Context, *domain.ContactMessage) error { return nil }
func (NopPublisher) ReviewSubmitted(context.Context, *domain.Review) error         { return nil }
