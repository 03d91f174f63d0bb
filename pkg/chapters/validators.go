package chapters

import (
	"github.com/chapterprep/chapterprep/pkg/words"
)

type ListChaptersQuery struct {
	Title  *string `query:"title" json:"title,omitempty" mod:"trim" validate:"omitempty,max=255"`
	Limit  int     `query:"limit" json:"limit,omitempty" default:"50" validate:"min=1,max=100"`
	Offset int     `query:"offset" json:"offset,omitempty" validate:"min=0"`
}

type CreateChapterPayload struct {
	Title           string `json:"title" mod:"trim" validate:"required,max=255"`
	ChapterNumber   int    `json:"chapter_number" validate:"required,min=1"`
	Text            string `json:"text" mod:"trim" validate:"required"`
	TargetLanguage  string `json:"target_language" mod:"trim" validate:"required,max=50"`
	WordsToExtract  *int   `json:"words_to_extract,omitempty" validate:"omitempty,min=1,max=50"`
	Level           string `json:"level" mod:"trim,ucase" validate:"required,oneof=A1 A2 B1 B2 C1 C2"`
	TranslationMode string `json:"translation_mode" mod:"trim,lcase" validate:"required,oneof=translation definition"`
}

type ConfirmWordsPayload struct {
	Words []words.WordPayload `json:"words" mod:"dive" validate:"required,min=1,dive"`
}
