// Package api serves the embedded OpenAPI description of the HTTP API.
package api

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

// OpenAPISpec returns the embedded description as YAML
func OpenAPISpec() []byte {
	return openAPIYAML
}

// OpenAPISpecJSON returns the description converted to JSON
func OpenAPISpecJSON() ([]byte, error) {
	var spec interface{}
	if err := yaml.Unmarshal(openAPIYAML, &spec); err != nil {
		return nil, err
	}
	return json.Marshal(spec)
}

// Handler serves the description, as JSON when the client asks for it
// and as YAML otherwise.
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.Header.Get("Accept"), "application/json") {
			spec, err := OpenAPISpecJSON()
			if err != nil {
				http.Error(w, "Failed to convert OpenAPI description to JSON", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			_, _ = w.Write(spec)
			return
		}

		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openAPIYAML)
	}
}
