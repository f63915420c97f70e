package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Pavlo-fo95/ls-resort-backend/internal/domain"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/event"
	"github.com/Pavlo-fo95/ls-resort-backend/internal/repository"
)

// ReviewService handles review submission and moderation.
type ReviewService struct {
	repo   repository.ReviewRepository
	events event.Publisher
	logger *slog.Logger
}

func NewReviewService(repo repository.ReviewRepository, events event.Publisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{repo: repo, events: events, logger: logger}
}

// CreateReviewInput is a submitted review.
type CreateReviewInput struct {
	AuthorName string
	Text       string
	Rating     *int
}

// Create stores a pending review. A given rating also sets the sentiment.
func (s *ReviewService) Create(ctx context.Context, in CreateReviewInput) (*domain.Review, error) {
	r := &domain.Review{
		AuthorName: in.AuthorName,
		Text:       in.Text,
		Status:     domain.ReviewStatusPending,
	}
	if in.Rating != nil {
		r.SetRating(*in.Rating)
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	if err := s.events.ReviewSubmitted(ctx, r); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish review.submitted event",
			slog.Int64("review_id", r.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "review submitted", slog.Int64("review_id", r.ID))
	return r, nil
}

func (s *ReviewService) ListPublic(ctx context.Context, limit int, onlyPublished bool) ([]domain.Review, error) {
	return s.repo.ListPublic(ctx, limit, onlyPublished)
}

func (s *ReviewService) ListAll(ctx context.Context) ([]domain.Review, error) {
	return s.repo.ListAll(ctx)
}

func (s *ReviewService) Get(ctx context.Context, id int64) (*domain.Review, error) {
	return s.repo.GetByID(ctx, id)
}

// Patch applies moderation changes and returns the stored review.
func (s *ReviewService) Patch(ctx context.Context, id int64, patch domain.ReviewPatch) (*domain.Review, error) {
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(r)
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review moderated",
		slog.Int64("review_id", r.ID),
		slog.String("status", r.Status),
		slog.Bool("is_featured", r.IsFeatured),
	)
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) (domain.Deleted, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.Deleted{}, err
	}
	s.logger.InfoContext(ctx, "review deleted", slog.Int64("review_id", id))
	return domain.Deleted{OK: true, DeletedID: id}, nil
}
