package entities

import (
	"testing"

	pkgerrors "clouddictionary/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDefinition() *Definition {
	return &Definition{
		Word:         "Serendipity",
		Content:      "Finding something good without looking for it.",
		Author:       Author{Name: "Horace Walpole", Link: "https://example.com/walpole"},
		LearnMoreURL: "https://example.com/serendipity",
		Tag:          "general",
		Abbreviation: "ser",
	}
}

func TestDefinition_Validate(t *testing.T) {
	t.Run("Should accept a complete definition", func(t *testing.T) {
		assert.NoError(t, validDefinition().Validate())
	})

	t.Run("Should reject a nil definition", func(t *testing.T) {
		var d *Definition
		err := d.Validate()
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("Should reject missing fields", func(t *testing.T) {
		d := validDefinition()
		d.Content = ""
		d.Author.Link = ""

		err := d.Validate()

		require.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
		appErr := pkgerrors.GetAppError(err)
		assert.Contains(t, appErr.Message, "content is required")
		assert.Contains(t, appErr.Message, "author.link is required")
	})

	t.Run("Should reject a blank word", func(t *testing.T) {
		d := validDefinition()
		d.Word = "  "
		assert.True(t, pkgerrors.IsValidation(d.Validate()))
	})
}

func TestNormalizeWord(t *testing.T) {
	assert.Equal(t, "serendipity", NormalizeWord("  SERENDIPITY "))
	assert.True(t, validDefinition().SameWord("serendipity"))
	assert.False(t, validDefinition().SameWord("serendipitous"))
	assert.Equal(t, "serendipity", validDefinition().Key())
}

func TestDefinition_AbbreviationIsOptional(t *testing.T) {
	d := validDefinition()
	d.Abbreviation = ""
	assert.NoError(t, d.Validate())
}
