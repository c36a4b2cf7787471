package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOpenAPISpecJSON(t *testing.T) {
	t.Run("Should convert every path to JSON", func(t *testing.T) {
		// Act
		raw, err := OpenAPISpecJSON()

		// Assert
		require.NoError(t, err)
		var spec struct {
			Paths map[string]interface{} `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(raw, &spec))
		for _, path := range []string{
			"/GetAllDefinitions", "/GetDefinitionById", "/GetDefinitionByWord",
			"/GetDefinitionsByTag", "/GetDefinitionsBySearch", "/GetRandomDefinition",
			"/GetProjectByWord", "/CreateDefinition", "/UpdateDefinition/{id}",
			"/UpdateDefinition", "/DeleteDefinition", "/GetDefinitionOfTheDay",
		} {
			assert.Contains(t, spec.Paths, path)
		}
	})
}

func TestHandler(t *testing.T) {
	t.Run("Should serve YAML by default", func(t *testing.T) {
		// Arrange
		rec := httptest.NewRecorder()

		// Act
		Handler()(rec, httptest.NewRequest(http.MethodGet, "/openapi", nil))

		// Assert
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/yaml", rec.Header().Get("Content-Type"))
		var doc map[string]interface{}
		require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "3.0.3", doc["openapi"])
	})

	t.Run("Should serve JSON when asked", func(t *testing.T) {
		// Arrange
		req := httptest.NewRequest(http.MethodGet, "/openapi", nil)
		req.Header.Set("Accept", "application/json")
		rec := httptest.NewRecorder()

		// Act
		Handler()(rec, req)

		// Assert
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.True(t, json.Valid(rec.Body.Bytes()))
	})
}
