package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "clouddictionary/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_EffectivePageSize(t *testing.T) {
	tests := []struct {
		requested int
		expected  int
	}{
		{0, DefaultPageSize},
		{-3, DefaultPageSize},
		{1, 1},
		{50, 50},
		{51, 50},
		{500, 50},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, NewPageRequest(tt.requested, "").EffectivePageSize(), "requested %d", tt.requested)
	}
}

func TestExtractPageRequest(t *testing.T) {
	t.Run("Should use the endpoint default", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/GetDefinitionsByTag?tag=x", nil)

		page, err := ExtractPageRequest(req, 5)

		require.NoError(t, err)
		assert.Equal(t, 5, page.PageSize)
		assert.Empty(t, page.ContinuationToken)
	})

	t.Run("Should read size and token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/GetAllDefinitions?pageSize=20&continuationToken=abc_-", nil)

		page, err := ExtractPageRequest(req, DefaultPageSize)

		require.NoError(t, err)
		assert.Equal(t, 20, page.PageSize)
		assert.Equal(t, "abc_-", page.ContinuationToken)
	})

	t.Run("Should reject non-numeric page size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/GetAllDefinitions?pageSize=ten", nil)

		_, err := ExtractPageRequest(req, DefaultPageSize)

		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestNewPageResponse(t *testing.T) {
	last := NewPageResponse(Page[string]{Items: []string{"a"}})
	assert.Nil(t, last.ContinuationToken)

	more := NewPageResponse(Page[string]{Items: []string{"a"}, ContinuationToken: "next"})
	require.NotNil(t, more.ContinuationToken)
	assert.Equal(t, "next", *more.ContinuationToken)

	empty := NewPageResponse(Page[int]{})
	assert.Equal(t, []int{}, empty.Data)
}
