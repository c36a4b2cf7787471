package services

import (
	"context"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	"clouddictionary/domain/events"
	apperrors "clouddictionary/pkg/errors"

	"go.uber.org/zap"
)

// RotationJob names the daily rotation in metrics and logs.
const RotationJob = "rotate-definition-of-the-day"

// DefinitionOfTheDayService serves and rotates the definition of the day.
type DefinitionOfTheDayService struct {
	definitions ports.DefinitionRepository
	today       ports.DefinitionOfTheDayRepository
	publisher   ports.EventPublisher
	metrics     ports.Metrics
	logger      *zap.Logger
}

// NewDefinitionOfTheDayService creates a new DefinitionOfTheDayService
func NewDefinitionOfTheDayService(
	definitions ports.DefinitionRepository,
	today ports.DefinitionOfTheDayRepository,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *DefinitionOfTheDayService {
	return &DefinitionOfTheDayService{
		definitions: definitions,
		today:       today,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Current returns the definition of the day
func (s *DefinitionOfTheDayService) Current(ctx context.Context) (*entities.Definition, error) {
	d, err := s.today.GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.NewNotFoundError("No definition of the day found.")
	}
	return d, nil
}

// Rotate picks a random definition and makes it the definition of the day.
func (s *DefinitionOfTheDayService) Rotate(ctx context.Context) (d *entities.Definition, err error) {
	start := time.Now()
	defer func() {
		s.metrics.RecordJobExecution(ctx, RotationJob, time.Since(start), err)
	}()

	d, err = s.definitions.PickRandom(ctx)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.NewNotFoundError("No definitions found.")
	}

	previous, err := s.today.Rotate(ctx, d)
	if err != nil {
		return nil, err
	}

	previousWord := ""
	if previous != nil {
		previousWord = previous.Word
	}

	event := events.NewDefinitionOfTheDayRotated(d.ID, d.Word, previousWord, time.Now())
	if perr := s.publisher.Publish(ctx, event); perr != nil {
		s.logger.Warn("Failed to publish event", zap.Error(perr), zap.String("eventType", event.GetEventType()))
	}

	s.logger.Info("Rotated definition of the day",
		zap.String("word", d.Word),
		zap.String("previous", previousWord),
		zap.Duration("duration", time.Since(start)),
	)
	return d, nil
}
