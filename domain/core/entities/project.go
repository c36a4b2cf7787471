package entities

// Project is a read-only record describing a project named by a word.
type Project struct {
	ID          string `json:"id"`
	Word        string `json:"word"`
	Description string `json:"description"`
}
