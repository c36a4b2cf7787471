package dynamodb

import (
	"strings"

	"clouddictionary/domain/core/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Attribute names shared by the key schema, the IdIndex GSI and filters.
const (
	attrWordKey           = "WordKey"
	attrDefinitionID      = "DefinitionID"
	attrTagLower          = "TagLower"
	attrContentLower      = "ContentLower"
	attrAuthorNameLower   = "AuthorNameLower"
	attrAbbreviationLower = "AbbreviationLower"
)

type authorItem struct {
	Name string `dynamodbav:"Name"`
	Link string `dynamodbav:"Link"`
}

// definitionItem is the stored shape of a definition. The *Lower
// attributes hold lowercase copies for case-insensitive filters.
type definitionItem struct {
	WordKey           string     `dynamodbav:"WordKey"`
	DefinitionID      string     `dynamodbav:"DefinitionID"`
	Word              string     `dynamodbav:"Word"`
	Content           string     `dynamodbav:"Content"`
	Author            authorItem `dynamodbav:"Author"`
	LearnMoreURL      string     `dynamodbav:"LearnMoreURL"`
	Tag               string     `dynamodbav:"Tag"`
	Abbreviation      string     `dynamodbav:"Abbreviation,omitempty"`
	TagLower          string     `dynamodbav:"TagLower"`
	ContentLower      string     `dynamodbav:"ContentLower"`
	AuthorNameLower   string     `dynamodbav:"AuthorNameLower"`
	AbbreviationLower string     `dynamodbav:"AbbreviationLower,omitempty"`
	UpdatedAt         string     `dynamodbav:"UpdatedAt,omitempty"`
}

func newDefinitionItem(d *entities.Definition) definitionItem {
	return definitionItem{
		WordKey:           d.Key(),
		DefinitionID:      d.ID,
		Word:              d.Word,
		Content:           d.Content,
		Author:            authorItem{Name: d.Author.Name, Link: d.Author.Link},
		LearnMoreURL:      d.LearnMoreURL,
		Tag:               d.Tag,
		Abbreviation:      d.Abbreviation,
		TagLower:          strings.ToLower(d.Tag),
		ContentLower:      strings.ToLower(d.Content),
		AuthorNameLower:   strings.ToLower(d.Author.Name),
		AbbreviationLower: strings.ToLower(d.Abbreviation),
	}
}

func (i definitionItem) toEntity() *entities.Definition {
	return &entities.Definition{
		ID:           i.DefinitionID,
		Word:         i.Word,
		Content:      i.Content,
		Author:       entities.Author{Name: i.Author.Name, Link: i.Author.Link},
		LearnMoreURL: i.LearnMoreURL,
		Tag:          i.Tag,
		Abbreviation: i.Abbreviation,
	}
}

type projectItem struct {
	WordKey     string `dynamodbav:"WordKey"`
	ProjectID   string `dynamodbav:"ProjectID"`
	Word        string `dynamodbav:"Word"`
	Description string `dynamodbav:"Description"`
}

func (i projectItem) toEntity() *entities.Project {
	return &entities.Project{
		ID:          i.ProjectID,
		Word:        i.Word,
		Description: i.Description,
	}
}

func wordKey(word string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrWordKey: &types.AttributeValueMemberS{Value: entities.NormalizeWord(word)},
	}
}
