package models

import "time"

// MindfulnessEntry is a daily reflection: three free-form answers owned by
// a user.
type MindfulnessEntry struct {
	ID                    string    `json:"id"`
	UserID                string    `json:"userId"`
	QuestionGrateful      string    `json:"questionGrateful"`
	QuestionServiceSelf   string    `json:"questionServiceSelf"`
	QuestionServiceOthers string    `json:"questionServiceOthers"`
	CreatedAt             time.Time `json:"createdDate"`
}

type MindfulnessEntryPatch struct {
	QuestionGrateful      *string `json:"questionGrateful"`
	QuestionServiceSelf   *string `json:"questionServiceSelf"`
	QuestionServiceOthers *string `json:"questionServiceOthers"`
}

func (p MindfulnessEntryPatch) IsEmpty() bool {
	return p.QuestionGrateful == nil && p.QuestionServiceSelf == nil &&
		p.QuestionServiceOthers == nil
}
