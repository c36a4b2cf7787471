// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"
	"time"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	"clouddictionary/domain/events"
	"clouddictionary/pkg/common"

	"github.com/stretchr/testify/mock"
)

type MockDefinitionRepository struct {
	mock.Mock
}

func definition(args mock.Arguments, i int) *entities.Definition {
	d, _ := args.Get(i).(*entities.Definition)
	return d
}

func page(args mock.Arguments, i int) *ports.DefinitionPage {
	p, _ := args.Get(i).(*ports.DefinitionPage)
	return p
}

func (m *MockDefinitionRepository) GetByID(ctx context.Context, id, wordHint string) (*entities.Definition, error) {
	args := m.Called(ctx, id, wordHint)
	return definition(args, 0), args.Error(1)
}

func (m *MockDefinitionRepository) GetByWord(ctx context.Context, word string) (*entities.Definition, error) {
	args := m.Called(ctx, word)
	return definition(args, 0), args.Error(1)
}

func (m *MockDefinitionRepository) List(ctx context.Context, req common.PageRequest) (*ports.DefinitionPage, error) {
	args := m.Called(ctx, req)
	return page(args, 0), args.Error(1)
}

func (m *MockDefinitionRepository) ListByTag(ctx context.Context, tag string, req common.PageRequest) (*ports.DefinitionPage, error) {
	args := m.Called(ctx, tag, req)
	return page(args, 0), args.Error(1)
}

func (m *MockDefinitionRepository) Search(ctx context.Context, term string, req common.PageRequest) (*ports.DefinitionPage, error) {
	args := m.Called(ctx, term, req)
	return page(args, 0), args.Error(1)
}

func (m *MockDefinitionRepository) Create(ctx context.Context, d *entities.Definition) error {
	args := m.Called(ctx, d)
	if args.Error(0) == nil && d.ID == "" {
		d.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockDefinitionRepository) Update(ctx context.Context, d *entities.Definition) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDefinitionRepository) Delete(ctx context.Context, d *entities.Definition) error {
	return m.Called(ctx, d).Error(0)
}

func (m *MockDefinitionRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockDefinitionRepository) PickRandom(ctx context.Context) (*entities.Definition, error) {
	args := m.Called(ctx)
	return definition(args, 0), args.Error(1)
}

type MockDefinitionOfTheDayRepository struct {
	mock.Mock
}

func (m *MockDefinitionOfTheDayRepository) GetCurrent(ctx context.Context) (*entities.Definition, error) {
	args := m.Called(ctx)
	return definition(args, 0), args.Error(1)
}

func (m *MockDefinitionOfTheDayRepository) Rotate(ctx context.Context, d *entities.Definition) (*entities.Definition, error) {
	args := m.Called(ctx, d)
	return definition(args, 0), args.Error(1)
}

type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) GetByWord(ctx context.Context, word string) (*entities.Project, error) {
	args := m.Called(ctx, word)
	p, _ := args.Get(0).(*entities.Project)
	return p, args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	args := m.Called(ctx, domainEvents)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) RecordJobExecution(ctx context.Context, job string, duration time.Duration, err error) {
	m.Called(ctx, job, duration, err)
}

func (m *MockMetrics) RecordDefinitionChange(ctx context.Context, change string) {
	m.Called(ctx, change)
}

var (
	_ ports.DefinitionRepository         = (*MockDefinitionRepository)(nil)
	_ ports.DefinitionOfTheDayRepository = (*MockDefinitionOfTheDayRepository)(nil)
	_ ports.ProjectRepository            = (*MockProjectRepository)(nil)
	_ ports.EventPublisher               = (*MockEventPublisher)(nil)
	_ ports.Metrics                      = (*MockMetrics)(nil)
)
