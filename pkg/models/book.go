package models

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
	LanguageSpanish = "es"
	LanguageGerman  = "de"
	LanguageItalian = "it"
)

type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	ID        int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    int       `bun:",notnull" json:"user_id"`
	Title     string    `bun:",notnull" json:"title"`
	Author    *string   `json:"author"`
	Language  string    `bun:",notnull" json:"language"`
}

func (b *Book) OwnerID() int { return b.UserID }
