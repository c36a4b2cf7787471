package ports

import (
	"context"
	"time"

	"clouddictionary/domain/core/entities"
	"clouddictionary/domain/events"
	"clouddictionary/pkg/common"
)

// DefinitionPage is one page of definitions.
type DefinitionPage = common.Page[*entities.Definition]

// DefinitionRepository defines the interface for definition persistence.
// Lookup misses are reported as NotFound errors; store failures as
// Database errors.
type DefinitionRepository interface {
	// GetByID retrieves a definition by identifier. wordHint, when set,
	// allows a direct key read instead of an index query.
	GetByID(ctx context.Context, id, wordHint string) (*entities.Definition, error)

	// GetByWord retrieves a definition by word, ignoring case
	GetByWord(ctx context.Context, word string) (*entities.Definition, error)

	// List pages through every definition
	List(ctx context.Context, page common.PageRequest) (*DefinitionPage, error)

	// ListByTag pages through definitions whose tag matches, ignoring case
	ListByTag(ctx context.Context, tag string, page common.PageRequest) (*DefinitionPage, error)

	// Search pages through definitions with term in any text field, ignoring case
	Search(ctx context.Context, term string, page common.PageRequest) (*DefinitionPage, error)

	// Create stores a new definition, assigning its identifier. Fails with
	// Conflict when the word is taken.
	Create(ctx context.Context, definition *entities.Definition) error

	// Update replaces an existing definition matched by identifier and word
	Update(ctx context.Context, definition *entities.Definition) error

	// Delete removes a definition matched by identifier and word
	Delete(ctx context.Context, definition *entities.Definition) error

	// Count returns the number of stored definitions
	Count(ctx context.Context) (int, error)

	// PickRandom returns a uniformly chosen definition, or nil when the
	// collection is empty
	PickRandom(ctx context.Context) (*entities.Definition, error)
}

// DefinitionOfTheDayRepository stores the single current definition of the day.
type DefinitionOfTheDayRepository interface {
	// GetCurrent returns the current definition, or nil if none is set
	GetCurrent(ctx context.Context) (*entities.Definition, error)

	// Rotate replaces the current definition. The delete and the write are
	// separate calls, so readers may briefly observe no current definition.
	Rotate(ctx context.Context, definition *entities.Definition) (previous *entities.Definition, err error)
}

// ProjectRepository provides read access to projects.
type ProjectRepository interface {
	GetByWord(ctx context.Context, word string) (*entities.Project, error)
}

// EventPublisher delivers domain events to subscribers outside the service.
type EventPublisher interface {
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordJobExecution(ctx context.Context, job string, duration time.Duration, err error)
	RecordDefinitionChange(ctx context.Context, change string)
}
