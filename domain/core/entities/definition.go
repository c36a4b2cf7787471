package entities

import (
	"strings"

	pkgerrors "clouddictionary/pkg/errors"
	"clouddictionary/pkg/utils"
)

// Author credits the person who wrote a definition.
type Author struct {
	Name string `json:"name" yaml:"name" validate:"required,notblank"`
	Link string `json:"link" yaml:"link" validate:"required,notblank"`
}

// Definition is a dictionary entry. Word is unique across the collection
// ignoring case; ID is assigned by the store on create and never changes.
type Definition struct {
	ID           string `json:"id" yaml:"id,omitempty"`
	Word         string `json:"word" yaml:"word" validate:"required,notblank"`
	Content      string `json:"content" yaml:"content" validate:"required,notblank"`
	Author       Author `json:"author" yaml:"author"`
	LearnMoreURL string `json:"learnMoreUrl" yaml:"learnMoreUrl" validate:"required,notblank"`
	Tag          string `json:"tag" yaml:"tag" validate:"required,notblank"`
	Abbreviation string `json:"abbreviation,omitempty" yaml:"abbreviation,omitempty"`
}

// Validate checks that every required field is present.
func (d *Definition) Validate() error {
	if d == nil {
		return pkgerrors.NewValidationError("Request body is null or empty.")
	}
	if err := utils.ValidateStruct(d); err != nil {
		return pkgerrors.NewValidationError("Invalid data in request body: " + err.Error())
	}
	return nil
}

// Key returns the normalized word under which the definition is stored.
func (d *Definition) Key() string {
	return NormalizeWord(d.Word)
}

// SameWord reports whether other names the same word ignoring case.
func (d *Definition) SameWord(other string) bool {
	return d.Key() == NormalizeWord(other)
}

// NormalizeWord folds a word to the form used for uniqueness and lookups.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}
