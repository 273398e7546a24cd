package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/chrono"
	"github.com/schooldesk/neis-dashboard/internal/models"
	"github.com/schooldesk/neis-dashboard/internal/repository"
	"github.com/schooldesk/neis-dashboard/internal/service/integration"
)

type AssessmentService interface {
	Create(ctx context.Context, req *models.CreateAssessmentRequest) (*models.Assessment, error)
	ListAll(ctx context.Context) ([]models.Assessment, error)
}

type assessmentService struct {
	assessmentRepo repository.AssessmentRepository
	events         integration.EventPublisher
	clock          chrono.Clock
	logger         zerolog.Logger
}

func NewAssessmentService(
	assessmentRepo repository.AssessmentRepository,
	events integration.EventPublisher,
	clock chrono.Clock,
	logger zerolog.Logger,
) AssessmentService {
	return &assessmentService{
		assessmentRepo: assessmentRepo,
		events:         events,
		clock:          clock,
		logger:         logger,
	}
}

// Create stores the record exactly as submitted; fields are not validated.
// created_at is stamped by the store, not the caller.
func (s *assessmentService) Create(ctx context.Context, req *models.CreateAssessmentRequest) (*models.Assessment, error) {
	assessment := &models.Assessment{
		Subject:   req.Subject,
		Title:     req.Title,
		DueDate:   req.DueDate,
		Detail:    req.Detail,
		CreatedAt: s.clock.Now().Format(time.RFC3339),
	}

	if err := s.assessmentRepo.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}

	s.logger.Info().
		Int64("assessment_id", assessment.ID).
		Str("subject", assessment.Subject).
		Str("due_date", assessment.DueDate).
		Msg("Assessment created")

	s.publishCreated(ctx, assessment)

	return assessment, nil
}

func (s *assessmentService) ListAll(ctx context.Context) ([]models.Assessment, error) {
	assessments, err := s.assessmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	if assessments == nil {
		assessments = []models.Assessment{}
	}

	return assessments, nil
}

// publishCreated is best-effort: the broker may be absent and a failed
// publish never affects the request outcome.
func (s *assessmentService) publishCreated(ctx context.Context, assessment *models.Assessment) {
	if s.events == nil {
		return
	}

	event := &models.AssessmentCreatedEvent{
		EventID:      uuid.New().String(),
		AssessmentID: assessment.ID,
		Subject:      assessment.Subject,
		Title:        assessment.Title,
		DueDate:      assessment.DueDate,
		Timestamp:    s.clock.Now().Unix(),
	}

	if err := s.events.PublishAssessmentCreated(ctx, event); err != nil {
		s.logger.Warn().Err(err).
			Int64("assessment_id", assessment.ID).
			Msg("Failed to publish assessment created event")
	}
}
