package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	WordStatusToLearn  = "to_learn"
	WordStatusLearning = "learning"
	WordStatusKnown    = "known"
)

type Word struct {
	bun.BaseModel `bun:"table:words,alias:w"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ChapterID int       `bun:",notnull" json:"chapter_id"`
	UserID    int       `bun:",notnull" json:"user_id"`
	Word      string    `bun:",notnull" json:"word"`
	BaseForm  string    `bun:",notnull" json:"base_form"`
	Output    string    `bun:",notnull" json:"output"`
	Status    string    `bun:",notnull" json:"status"`
}

func (w *Word) OwnerID() int { return w.UserID }
