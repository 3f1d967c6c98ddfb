package models

import "time"

type Entry struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	ExampleValue string    `json:"exampleValue"`
	CreatedAt    time.Time `json:"createdDate"`
}

// EntryPatch describes a partial update of an entry. The owner is not
// mutable: entries cannot be reassigned between users.
type EntryPatch struct {
	ExampleValue *string `json:"exampleValue"`
}

func (p EntryPatch) IsEmpty() bool {
	return p.ExampleValue == nil
}
