package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/learningcamp/enrollment-api/internal/core/domain"
	"github.com/learningcamp/enrollment-api/internal/core/ports"
)

// ClassService implements catalog use cases.
type ClassService struct {
	repo   ports.ClassRepository
	logger zerolog.Logger
}

func NewClassService(repo ports.ClassRepository, logger zerolog.Logger) *ClassService {
	return &ClassService{repo: repo, logger: logger}
}

func (s *ClassService) List(ctx context.Context) ([]*domain.Class, error) {
	return s.repo.List(ctx)
}

func (s *ClassService) ListByInstructor(ctx context.Context, email string) ([]*domain.Class, error) {
	return s.repo.ListByInstructor(ctx, email)
}

// Create stores a new listing. Every class enters the catalog pending review
// regardless of what the submission claims.
func (s *ClassService) Create(ctx context.Context, class *domain.Class) (*ports.InsertOutcome, error) {
	class.Status = domain.StatusPending
	class.Feedback = ""

	outcome, err := s.repo.Insert(ctx, class)
	if err != nil {
		return nil, fmt.Errorf("create class: %w", err)
	}

	s.logger.Info().Str("class", class.ClassName).Str("instructor", class.InstructorEmail).Msg("class created")
	return outcome, nil
}

func (s *ClassService) ReplaceContent(ctx context.Context, id string, content domain.ClassContent) (*ports.UpdateOutcome, error) {
	outcome, err := s.repo.ReplaceContent(ctx, id, content)
	if err != nil {
		return nil, fmt.Errorf("update class: %w", err)
	}
	return outcome, nil
}

func (s *ClassService) Approve(ctx context.Context, id string) (*ports.UpdateOutcome, error) {
	return s.setStatus(ctx, id, domain.StatusApproved)
}

func (s *ClassService) Deny(ctx context.Context, id string) (*ports.UpdateOutcome, error) {
	return s.setStatus(ctx, id, domain.StatusDenied)
}

func (s *ClassService) setStatus(ctx context.Context, id string, status domain.ClassStatus) (*ports.UpdateOutcome, error) {
	outcome, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("set class status: %w", err)
	}
	s.logger.Info().Str("class_id", id).Str("status", string(status)).Int64("matched", outcome.MatchedCount).Msg("class status updated")
	return outcome, nil
}

func (s *ClassService) SetFeedback(ctx context.Context, id, feedback string) (*ports.UpdateOutcome, error) {
	outcome, err := s.repo.SetFeedback(ctx, id, feedback)
	if err != nil {
		return nil, fmt.Errorf("set class feedback: %w", err)
	}
	return outcome, nil
}
