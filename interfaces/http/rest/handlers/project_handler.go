package handlers

import (
	"context"
	"net/http"

	"clouddictionary/domain/core/entities"
	"clouddictionary/pkg/common"
	apperrors "clouddictionary/pkg/errors"
)

// ProjectService looks up projects by word.
type ProjectService interface {
	GetByWord(ctx context.Context, word string) (*entities.Project, error)
}

// ProjectHandler handles project lookups
type ProjectHandler struct {
	projects     ProjectService
	errorHandler *apperrors.ErrorHandler
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projects ProjectService, errorHandler *apperrors.ErrorHandler) *ProjectHandler {
	return &ProjectHandler{
		projects:     projects,
		errorHandler: errorHandler,
	}
}

// GetByWord handles GET /GetProjectByWord?word=
func (h *ProjectHandler) GetByWord(w http.ResponseWriter, r *http.Request) {
	p, err := h.projects.GetByWord(r.Context(), r.URL.Query().Get("word"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, p)
}
