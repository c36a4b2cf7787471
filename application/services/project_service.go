package services

import (
	"context"
	"strings"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	apperrors "clouddictionary/pkg/errors"
)

// ProjectService provides read access to projects.
type ProjectService struct {
	repo ports.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(repo ports.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// GetByWord returns the project for word, ignoring case
func (s *ProjectService) GetByWord(ctx context.Context, word string) (*entities.Project, error) {
	if strings.TrimSpace(word) == "" {
		return nil, apperrors.NewValidationError("word is required")
	}
	return s.repo.GetByWord(ctx, word)
}
