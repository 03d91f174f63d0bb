package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CEFR levels, easiest first.
const (
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
	LevelC1 = "C1"
	LevelC2 = "C2"
)

const (
	TranslationModeTranslation = "translation"
	TranslationModeDefinition  = "definition"
)

// Levels lists every CEFR level in ascending difficulty.
var Levels = []string{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

type Chapter struct {
	bun.BaseModel `bun:"table:chapters,alias:ch"`

	ID              int       `bun:",pk,autoincrement" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	UserID          int       `bun:",notnull" json:"user_id"`
	Title           string    `bun:",notnull" json:"title"`
	ChapterNumber   int       `bun:",notnull" json:"chapter_number"`
	Text            string    `bun:",notnull" json:"text"`
	WordCount       int       `bun:",notnull" json:"word_count"`
	TargetLanguage  string    `bun:",notnull" json:"target_language"`
	Level           string    `bun:",notnull" json:"level"`
	TranslationMode string    `bun:",notnull" json:"translation_mode"`
	WordsToExtract  int       `bun:",notnull" json:"words_to_extract"`
}

func (ch *Chapter) OwnerID() int { return ch.UserID }
