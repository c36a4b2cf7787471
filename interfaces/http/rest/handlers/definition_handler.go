package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"clouddictionary/application/ports"
	"clouddictionary/domain/core/entities"
	"clouddictionary/pkg/common"
	apperrors "clouddictionary/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Default page sizes per listing.
const (
	DefaultListPageSize   = 10
	DefaultTagPageSize    = 5
	DefaultSearchPageSize = 10
)

// DefinitionService is what the handler needs from the definition service.
type DefinitionService interface {
	GetAll(ctx context.Context, page common.PageRequest) (*ports.DefinitionPage, error)
	GetByTag(ctx context.Context, tag string, page common.PageRequest) (*ports.DefinitionPage, error)
	Search(ctx context.Context, term string, page common.PageRequest) (*ports.DefinitionPage, error)
	GetByID(ctx context.Context, id, wordHint string) (*entities.Definition, error)
	GetByWord(ctx context.Context, word string) (*entities.Definition, error)
	GetRandom(ctx context.Context) (*entities.Definition, error)
	Create(ctx context.Context, d *entities.Definition) (*entities.Definition, error)
	UpdateByID(ctx context.Context, id string, d *entities.Definition) (*entities.Definition, error)
	UpdateByWord(ctx context.Context, word string, d *entities.Definition) (*entities.Definition, error)
	DeleteByWord(ctx context.Context, word string) error
}

// DefinitionOfTheDayService serves the current definition of the day.
type DefinitionOfTheDayService interface {
	Current(ctx context.Context) (*entities.Definition, error)
}

// DefinitionHandler handles definition-related HTTP requests
type DefinitionHandler struct {
	definitions  DefinitionService
	today        DefinitionOfTheDayService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewDefinitionHandler creates a new definition handler
func NewDefinitionHandler(
	definitions DefinitionService,
	today DefinitionOfTheDayService,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *DefinitionHandler {
	return &DefinitionHandler{
		definitions:  definitions,
		today:        today,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

// GetAll handles GET /GetAllDefinitions
func (h *DefinitionHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	page, err := common.ExtractPageRequest(r, DefaultListPageSize)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.definitions.GetAll(r.Context(), page)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.NewPageResponse(*result))
}

// GetByID handles GET /GetDefinitionById?id=&word=
func (h *DefinitionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	d, err := h.definitions.GetByID(r.Context(), query.Get("id"), query.Get("word"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, d)
}

// GetByWord handles GET /GetDefinitionByWord?word=
func (h *DefinitionHandler) GetByWord(w http.ResponseWriter, r *http.Request) {
	d, err := h.definitions.GetByWord(r.Context(), r.URL.Query().Get("word"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, d)
}

// GetByTag handles GET /GetDefinitionsByTag?tag=
func (h *DefinitionHandler) GetByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")
	if tag == "" {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("tag is required"))
		return
	}

	page, err := common.ExtractPageRequest(r, DefaultTagPageSize)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.definitions.GetByTag(r.Context(), tag, page)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.NewPageResponse(*result))
}

// Search handles GET /GetDefinitionsBySearch?searchTerm=
func (h *DefinitionHandler) Search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("searchTerm")
	if term == "" {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("searchTerm is required"))
		return
	}

	page, err := common.ExtractPageRequest(r, DefaultSearchPageSize)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	result, err := h.definitions.Search(r.Context(), term, page)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.NewPageResponse(*result))
}

// GetRandom handles GET /GetRandomDefinition
func (h *DefinitionHandler) GetRandom(w http.ResponseWriter, r *http.Request) {
	d, err := h.definitions.GetRandom(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, d)
}

// Create handles POST /CreateDefinition
func (h *DefinitionHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDefinition(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	created, err := h.definitions.Create(r.Context(), d)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Definition created",
		zap.String("id", created.ID),
		zap.String("word", created.Word),
	)
	common.RespondJSON(w, http.StatusCreated, created)
}

// UpdateByID handles PUT /UpdateDefinition/{id}
func (h *DefinitionHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDefinition(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	updated, err := h.definitions.UpdateByID(r.Context(), chi.URLParam(r, "id"), d)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated)
}

// UpdateByWord handles PUT /UpdateDefinition?word=
func (h *DefinitionHandler) UpdateByWord(w http.ResponseWriter, r *http.Request) {
	d, err := decodeDefinition(r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	updated, err := h.definitions.UpdateByWord(r.Context(), r.URL.Query().Get("word"), d)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /DeleteDefinition?word=
func (h *DefinitionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if err := h.definitions.DeleteByWord(r.Context(), word); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	h.logger.Info("Definition deleted", zap.String("word", word))
	w.WriteHeader(http.StatusNoContent)
}

// DefinitionOfTheDay handles GET /GetDefinitionOfTheDay
func (h *DefinitionHandler) DefinitionOfTheDay(w http.ResponseWriter, r *http.Request) {
	d, err := h.today.Current(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, common.DataResponse{Data: d})
}

// decodeDefinition reads a definition from the request body. A missing
// body or a literal null yields a nil definition, which the service
// rejects as empty.
func decodeDefinition(r *http.Request) (*entities.Definition, error) {
	if r.Body == nil {
		return nil, nil
	}

	var d *entities.Definition
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, apperrors.NewValidationError("Invalid data in request body.").WithCause(err)
	}
	return d, nil
}
