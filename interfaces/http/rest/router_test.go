package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"clouddictionary/application/services"
	"clouddictionary/domain/core/entities"
	"clouddictionary/infrastructure/messaging/eventbridge"
	"clouddictionary/infrastructure/persistence/dynamodb"
	"clouddictionary/infrastructure/persistence/dynamodb/dynamotest"
	"clouddictionary/interfaces/http/rest/handlers"
	"clouddictionary/interfaces/http/rest/middleware"
	apperrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/observability"
	"clouddictionary/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminKey = "admin-key"

type testServer struct {
	handler   http.Handler
	store     *dynamotest.FakeClient
	today     *services.DefinitionOfTheDayService
	collector *observability.Collector
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := dynamotest.NewFakeClient()
	store.CreateTable("definitions", "WordKey")
	store.CreateIndex("definitions", "IdIndex", "DefinitionID")
	store.CreateTable("definition-of-the-day", "WordKey")
	store.CreateTable("projects", "WordKey")

	logger := zap.NewNop()
	tracer := observability.NewTracer("test", false)
	collector := observability.NewCollector("clouddictionary_test")
	metrics := observability.Fanout{collector}
	publisher := eventbridge.NewNoopPublisher(logger)

	definitionRepo := dynamodb.NewDefinitionRepository(store, "definitions", "IdIndex", utils.DefaultRandomSource(), tracer, logger)
	todayRepo := dynamodb.NewDefinitionOfTheDayRepository(store, "definition-of-the-day", tracer, logger)
	projectRepo := dynamodb.NewProjectRepository(store, "projects", tracer, logger)

	definitionService := services.NewDefinitionService(definitionRepo, publisher, metrics, logger)
	todayService := services.NewDefinitionOfTheDayService(definitionRepo, todayRepo, publisher, metrics, logger)
	projectService := services.NewProjectService(projectRepo)

	errorHandler := apperrors.NewErrorHandler(logger, true)
	router := NewRouter(
		handlers.NewDefinitionHandler(definitionService, todayService, errorHandler, logger),
		handlers.NewProjectHandler(projectService, errorHandler),
		errorHandler,
		logger,
		Options{
			AccessKeys: middleware.AccessKeys{FunctionKey: "fn-key", AdminKey: adminKey},
			Collector:  collector,
		},
	)

	return &testServer{handler: router.Setup(), store: store, today: todayService, collector: collector}
}

func (s *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(middleware.FunctionKeyHeader, adminKey)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func definitionJSON(word, tag string) string {
	return fmt.Sprintf(`{"word":%q,"content":"Meaning of %s","author":{"name":"Ada","link":"https://example.com/ada"},`+
		`"learnMoreUrl":"https://example.com/%s","tag":%q}`, word, word, word, tag)
}

type pageBody struct {
	Data              []entities.Definition `json:"data"`
	ContinuationToken *string               `json:"continuationToken"`
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) pageBody {
	t.Helper()
	var body pageBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRouter_CreateDuplicateAndLookup(t *testing.T) {
	server := newTestServer(t)

	// Arrange / Act
	created := server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON("Serendipity", "general"))
	duplicate := server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON("Serendipity", "general"))
	lookup := server.do(http.MethodGet, "/api/GetDefinitionByWord?word=SERENDIPITY", "")

	// Assert
	require.Equal(t, http.StatusCreated, created.Code)
	var first entities.Definition
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &first))
	assert.NotEmpty(t, first.ID)

	assert.Equal(t, http.StatusConflict, duplicate.Code)
	assert.Equal(t, 1, server.store.Len("definitions"))

	require.Equal(t, http.StatusOK, lookup.Code)
	var found entities.Definition
	require.NoError(t, json.Unmarshal(lookup.Body.Bytes(), &found))
	assert.Equal(t, first, found)

	byID := server.do(http.MethodGet, "/api/GetDefinitionById?id="+url.QueryEscape(first.ID), "")
	require.Equal(t, http.StatusOK, byID.Code)
}

func TestRouter_TagPaging(t *testing.T) {
	server := newTestServer(t)
	for i := 0; i < 12; i++ {
		require.Equal(t, http.StatusCreated,
			server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON(fmt.Sprintf("word%02d", i), "obscure")).Code)
	}
	require.Equal(t, http.StatusCreated,
		server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON("plain", "general")).Code)

	seen := map[string]bool{}
	target := "/api/GetDefinitionsByTag?tag=obscure&pageSize=5"
	var sizes []int

	for pages := 0; pages < 5; pages++ {
		rec := server.do(http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodePage(t, rec)

		sizes = append(sizes, len(body.Data))
		for _, d := range body.Data {
			assert.Equal(t, "obscure", d.Tag)
			assert.False(t, seen[d.Word], "word %s repeated across pages", d.Word)
			seen[d.Word] = true
		}

		if body.ContinuationToken == nil {
			break
		}
		target = "/api/GetDefinitionsByTag?tag=obscure&pageSize=5&continuationToken=" + url.QueryEscape(*body.ContinuationToken)
	}

	assert.Equal(t, []int{5, 5, 2}, sizes)
	assert.Len(t, seen, 12)
}

func TestRouter_TokenFromAnotherQuery(t *testing.T) {
	server := newTestServer(t)
	for i := 0; i < 3; i++ {
		server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON(fmt.Sprintf("word%02d", i), "obscure"))
	}

	first := decodePage(t, server.do(http.MethodGet, "/api/GetAllDefinitions?pageSize=1", ""))
	require.NotNil(t, first.ContinuationToken)

	rec := server.do(http.MethodGet,
		"/api/GetDefinitionsByTag?tag=obscure&pageSize=1&continuationToken="+url.QueryEscape(*first.ContinuationToken), "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UpdateMissingID(t *testing.T) {
	server := newTestServer(t)

	rec := server.do(http.MethodPut, "/api/UpdateDefinition/does-not-exist", definitionJSON("Ghost", "general"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, server.store.Len("definitions"))
}

func TestRouter_UpdateAndDelete(t *testing.T) {
	server := newTestServer(t)
	created := server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON("Kludge", "slang"))
	require.Equal(t, http.StatusCreated, created.Code)
	var d entities.Definition
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &d))

	updated := server.do(http.MethodPut, "/api/UpdateDefinition/"+d.ID, strings.Replace(definitionJSON("Kludge", "slang"), "Meaning of Kludge", "A clumsy fix", 1))
	require.Equal(t, http.StatusOK, updated.Code)

	got := server.do(http.MethodGet, "/api/GetDefinitionById?id="+d.ID, "")
	var after entities.Definition
	require.NoError(t, json.Unmarshal(got.Body.Bytes(), &after))
	assert.Equal(t, d.ID, after.ID)
	assert.Equal(t, "A clumsy fix", after.Content)

	deleted := server.do(http.MethodDelete, "/api/DeleteDefinition?word=kludge", "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	assert.Equal(t, http.StatusNotFound, server.do(http.MethodGet, "/api/GetDefinitionByWord?word=kludge", "").Code)
}

func TestRouter_DefinitionOfTheDay(t *testing.T) {
	server := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, server.do(http.MethodGet, "/api/GetDefinitionOfTheDay", "").Code)

	require.Equal(t, http.StatusCreated,
		server.do(http.MethodPost, "/api/CreateDefinition", definitionJSON("Ephemeral", "general")).Code)
	_, err := server.today.Rotate(context.Background())
	require.NoError(t, err)

	rec := server.do(http.MethodGet, "/api/GetDefinitionOfTheDay", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data entities.Definition `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Ephemeral", body.Data.Word)
	assert.Equal(t, 1, server.store.Len("definition-of-the-day"))
}

func TestRouter_AccessTiers(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		key    string
		want   int
	}{
		{"Should serve open routes without a key", http.MethodGet, "/api/GetAllDefinitions", "", http.StatusNotFound},
		{"Should guard restricted routes", http.MethodGet, "/api/GetRandomDefinition", "", http.StatusUnauthorized},
		{"Should accept the function key on restricted routes", http.MethodGet, "/api/GetRandomDefinition?code=fn-key", "", http.StatusNotFound},
		{"Should guard admin routes from the function key", http.MethodDelete, "/api/DeleteDefinition?word=x", "fn-key", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			if tt.key != "" {
				req.Header.Set(middleware.FunctionKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()

			server.handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRouter_Operational(t *testing.T) {
	server := newTestServer(t)

	t.Run("Should report health", func(t *testing.T) {
		rec := server.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("Should serve the OpenAPI description", func(t *testing.T) {
		rec := server.do(http.MethodGet, "/openapi", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "GetDefinitionOfTheDay")
	})

	t.Run("Should expose request metrics", func(t *testing.T) {
		server.do(http.MethodGet, "/api/GetAllDefinitions", "")

		rec := server.do(http.MethodGet, "/metrics", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `route="/api/GetAllDefinitions"`)
	})

	t.Run("Should answer unknown routes with a JSON 404", func(t *testing.T) {
		rec := server.do(http.MethodGet, "/api/Nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Route not found."}`, rec.Body.String())
	})
}
