package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleAuthor struct {
	Name string `json:"name" validate:"required,notblank"`
}

type sample struct {
	Word   string       `json:"word" validate:"required,notblank"`
	Author sampleAuthor `json:"author"`
	Note   string       `json:"note" validate:"max=5"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("Should accept a valid struct", func(t *testing.T) {
		err := ValidateStruct(sample{Word: "ennui", Author: sampleAuthor{Name: "Ann"}})
		assert.NoError(t, err)
	})

	t.Run("Should report missing fields by json name", func(t *testing.T) {
		err := ValidateStruct(sample{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "word is required")
		assert.Contains(t, err.Error(), "author.name is required")
	})

	t.Run("Should reject whitespace-only strings", func(t *testing.T) {
		err := ValidateStruct(sample{Word: "   ", Author: sampleAuthor{Name: "Ann"}})
		require.Error(t, err)
		assert.Equal(t, "word is required", err.Error())
	})

	t.Run("Should report max length", func(t *testing.T) {
		err := ValidateStruct(sample{Word: "w", Author: sampleAuthor{Name: "A"}, Note: "too long"})
		require.Error(t, err)
		assert.Equal(t, "note must be at most 5 characters", err.Error())
	})
}

func TestDefaultRandomSource_ConcurrentUse(t *testing.T) {
	src := DefaultRandomSource()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				v := src.IntN(7)
				assert.GreaterOrEqual(t, v, 0)
				assert.Less(t, v, 7)
			}
		}()
	}
	wg.Wait()
}
