package events

import "time"

// SourceDictionary is the EventBridge source for every event this service emits.
const SourceDictionary = "clouddictionary.definitions"

// Event types
const (
	TypeDefinitionCreated  = "definition.created"
	TypeDefinitionUpdated  = "definition.updated"
	TypeDefinitionDeleted  = "definition.deleted"
	TypeDefinitionOfTheDay = "definition_of_the_day.rotated"
)

// DomainEvent is the base interface for all domain events
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// DefinitionChanged is raised when a definition is created, updated or deleted.
type DefinitionChanged struct {
	BaseEvent
	DefinitionID string `json:"definition_id"`
	Word         string `json:"word"`
}

func newDefinitionChanged(eventType, id, word string, timestamp time.Time) DefinitionChanged {
	return DefinitionChanged{
		BaseEvent: BaseEvent{
			AggregateID: id,
			EventType:   eventType,
			Timestamp:   timestamp,
			Version:     1,
		},
		DefinitionID: id,
		Word:         word,
	}
}

// NewDefinitionCreated creates a definition.created event
func NewDefinitionCreated(id, word string, timestamp time.Time) DefinitionChanged {
	return newDefinitionChanged(TypeDefinitionCreated, id, word, timestamp)
}

// NewDefinitionUpdated creates a definition.updated event
func NewDefinitionUpdated(id, word string, timestamp time.Time) DefinitionChanged {
	return newDefinitionChanged(TypeDefinitionUpdated, id, word, timestamp)
}

// NewDefinitionDeleted creates a definition.deleted event
func NewDefinitionDeleted(id, word string, timestamp time.Time) DefinitionChanged {
	return newDefinitionChanged(TypeDefinitionDeleted, id, word, timestamp)
}

// DefinitionOfTheDayRotated is raised after the daily rotation stores a new word.
type DefinitionOfTheDayRotated struct {
	BaseEvent
	PreviousWord string `json:"previous_word,omitempty"`
	Word         string `json:"word"`
}

// NewDefinitionOfTheDayRotated creates a DefinitionOfTheDayRotated event
func NewDefinitionOfTheDayRotated(id, word, previousWord string, timestamp time.Time) DefinitionOfTheDayRotated {
	return DefinitionOfTheDayRotated{
		BaseEvent: BaseEvent{
			AggregateID: id,
			EventType:   TypeDefinitionOfTheDay,
			Timestamp:   timestamp,
			Version:     1,
		},
		PreviousWord: previousWord,
		Word:         word,
	}
}
