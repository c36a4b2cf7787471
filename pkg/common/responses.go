package common

import (
	"encoding/json"
	"net/http"
)

// DataResponse wraps a single payload as {"data": ...}.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// PageResponse is the body of every paged listing. ContinuationToken is
// null on the last page.
type PageResponse struct {
	Data              interface{} `json:"data"`
	ContinuationToken *string     `json:"continuationToken"`
}

// NewPageResponse builds a PageResponse from a page of items.
func NewPageResponse[T any](page Page[T]) PageResponse {
	resp := PageResponse{Data: page.Items}
	if page.Items == nil {
		resp.Data = []T{}
	}
	if page.HasMore() {
		token := page.ContinuationToken
		resp.ContinuationToken = &token
	}
	return resp
}

// RespondJSON sends a JSON response
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
