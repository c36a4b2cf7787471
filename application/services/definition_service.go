package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	"clouddictionary/domain/events"
	"clouddictionary/pkg/common"
	apperrors "clouddictionary/pkg/errors"

	"go.uber.org/zap"
)

// Change labels recorded in metrics.
const (
	ChangeCreated = "created"
	ChangeUpdated = "updated"
	ChangeDeleted = "deleted"
)

// DefinitionService implements the dictionary use cases over a
// DefinitionRepository.
type DefinitionService struct {
	repo      ports.DefinitionRepository
	publisher ports.EventPublisher
	metrics   ports.Metrics
	logger    *zap.Logger
}

// NewDefinitionService creates a new definition service
func NewDefinitionService(
	repo ports.DefinitionRepository,
	publisher ports.EventPublisher,
	metrics ports.Metrics,
	logger *zap.Logger,
) *DefinitionService {
	return &DefinitionService{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// GetAll returns a page of every definition. An empty first page is NotFound.
func (s *DefinitionService) GetAll(ctx context.Context, page common.PageRequest) (*ports.DefinitionPage, error) {
	result, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return notFoundIfEmpty(result, page, "No definitions found.")
}

// GetByTag returns a page of definitions with the given tag
func (s *DefinitionService) GetByTag(ctx context.Context, tag string, page common.PageRequest) (*ports.DefinitionPage, error) {
	if strings.TrimSpace(tag) == "" {
		return nil, apperrors.NewValidationError("tag is required")
	}
	result, err := s.repo.ListByTag(ctx, tag, page)
	if err != nil {
		return nil, err
	}
	return notFoundIfEmpty(result, page, fmt.Sprintf("No definitions found for tag %s.", tag))
}

// Search returns a page of definitions matching term in any text field
func (s *DefinitionService) Search(ctx context.Context, term string, page common.PageRequest) (*ports.DefinitionPage, error) {
	if strings.TrimSpace(term) == "" {
		return nil, apperrors.NewValidationError("searchTerm is required")
	}
	result, err := s.repo.Search(ctx, term, page)
	if err != nil {
		return nil, err
	}
	return notFoundIfEmpty(result, page, fmt.Sprintf("No definitions found matching %s.", term))
}

// A continuation can legitimately come back empty when the previous page
// ended exactly at the last match, so only a first page is reported as a miss.
func notFoundIfEmpty(result *ports.DefinitionPage, page common.PageRequest, message string) (*ports.DefinitionPage, error) {
	if len(result.Items) == 0 && page.ContinuationToken == "" {
		return nil, apperrors.NewNotFoundError(message)
	}
	return result, nil
}

// GetByID returns the definition with the given identifier
func (s *DefinitionService) GetByID(ctx context.Context, id, wordHint string) (*entities.Definition, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return s.repo.GetByID(ctx, id, wordHint)
}

// GetByWord returns the definition for word, ignoring case
func (s *DefinitionService) GetByWord(ctx context.Context, word string) (*entities.Definition, error) {
	if strings.TrimSpace(word) == "" {
		return nil, apperrors.NewValidationError("word is required")
	}
	return s.repo.GetByWord(ctx, word)
}

// GetRandom returns a uniformly chosen definition
func (s *DefinitionService) GetRandom(ctx context.Context) (*entities.Definition, error) {
	d, err := s.repo.PickRandom(ctx)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperrors.NewNotFoundError("No random definition could be found.")
	}
	return d, nil
}

// Count returns the number of stored definitions
func (s *DefinitionService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Create validates and stores a new definition. Any identifier in the
// input is replaced by a generated one.
func (s *DefinitionService) Create(ctx context.Context, d *entities.Definition) (*entities.Definition, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByWord(ctx, d.Word)
	switch {
	case err == nil && existing != nil:
		return nil, apperrors.NewConflictError(fmt.Sprintf("A definition for %s already exists.", d.Word))
	case err != nil && !apperrors.IsNotFound(err):
		return nil, err
	}

	created := *d
	created.ID = ""
	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}

	s.metrics.RecordDefinitionChange(ctx, ChangeCreated)
	s.publish(ctx, events.NewDefinitionCreated(created.ID, created.Word, time.Now()))
	return &created, nil
}

// UpdateByID replaces the definition with identifier id. The word cannot
// change since it keys the record.
func (s *DefinitionService) UpdateByID(ctx context.Context, id string, d *entities.Definition) (*entities.Definition, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.ID != "" && d.ID != id {
		return nil, apperrors.NewValidationError("Definition id does not match the request.")
	}

	existing, err := s.repo.GetByID(ctx, id, "")
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Definition with id %s not found.", id))
		}
		return nil, err
	}
	return s.replace(ctx, existing, d)
}

// UpdateByWord replaces the definition stored under word
func (s *DefinitionService) UpdateByWord(ctx context.Context, word string, d *entities.Definition) (*entities.Definition, error) {
	if strings.TrimSpace(word) == "" {
		return nil, apperrors.NewValidationError("word is required")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if d.ID != "" {
		return nil, apperrors.NewValidationError("Definition id cannot be changed.")
	}

	existing, err := s.repo.GetByWord(ctx, word)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, existing, d)
}

func (s *DefinitionService) replace(ctx context.Context, existing, d *entities.Definition) (*entities.Definition, error) {
	if !existing.SameWord(d.Word) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Word cannot be changed from %s.", existing.Word))
	}

	updated := *d
	updated.ID = existing.ID
	if err := s.repo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.metrics.RecordDefinitionChange(ctx, ChangeUpdated)
	s.publish(ctx, events.NewDefinitionUpdated(updated.ID, updated.Word, time.Now()))
	return &updated, nil
}

// DeleteByWord removes the definition stored under word
func (s *DefinitionService) DeleteByWord(ctx context.Context, word string) error {
	existing, err := s.GetByWord(ctx, word)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, existing); err != nil {
		return err
	}

	s.metrics.RecordDefinitionChange(ctx, ChangeDeleted)
	s.publish(ctx, events.NewDefinitionDeleted(existing.ID, existing.Word, time.Now()))
	return nil
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Failed  []string `json:"failed,omitempty"`
}

// Import creates each definition in turn. Words that already exist are
// skipped; invalid entries are reported in Failed. A store failure stops
// the import.
func (s *DefinitionService) Import(ctx context.Context, definitions []*entities.Definition) (*ImportResult, error) {
	result := &ImportResult{}
	for _, d := range definitions {
		_, err := s.Create(ctx, d)
		switch {
		case err == nil:
			result.Created++
		case apperrors.IsConflict(err):
			result.Skipped++
		case apperrors.IsValidation(err):
			word := "<unnamed>"
			if d != nil && d.Word != "" {
				word = d.Word
			}
			result.Failed = append(result.Failed, word)
		default:
			return result, err
		}
	}

	s.logger.Info("Imported definitions",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// Events are notifications; a delivery failure does not undo the change.
func (s *DefinitionService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("eventType", event.GetEventType()),
			zap.String("aggregateID", event.GetAggregateID()),
		)
	}
}
