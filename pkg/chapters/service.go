package chapters

import (
	"context"
	"strings"
	"time"

	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/ownership"
	"github.com/chapterprep/chapterprep/pkg/vocabulary"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

type CreateChapterOptions struct {
	UserID          int
	Title           string
	ChapterNumber   int
	Text            string
	TargetLanguage  string
	Level           string
	TranslationMode string
	// WordsToExtract is recommended from the text length when nil.
	WordsToExtract *int
}

func (svc *Service) CreateChapter(ctx context.Context, opts CreateChapterOptions) (*models.Chapter, error) {
	wordCount := vocabulary.CountWords(opts.Text)
	wordsToExtract := vocabulary.RecommendWordsToExtract(wordCount)
	if opts.WordsToExtract != nil {
		wordsToExtract = *opts.WordsToExtract
	}

	now := time.Now()
	chapter := &models.Chapter{
		CreatedAt:       now,
		UpdatedAt:       now,
		UserID:          opts.UserID,
		Title:           opts.Title,
		ChapterNumber:   opts.ChapterNumber,
		Text:            opts.Text,
		WordCount:       wordCount,
		TargetLanguage:  opts.TargetLanguage,
		Level:           opts.Level,
		TranslationMode: opts.TranslationMode,
		WordsToExtract:  wordsToExtract,
	}

	_, err := svc.db.NewInsert().Model(chapter).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return chapter, nil
}

// RetrieveChapter returns the chapter only if userID owns it.
func (svc *Service) RetrieveChapter(ctx context.Context, id, userID int, action string) (*models.Chapter, error) {
	return ownership.Retrieve[models.Chapter](ctx, svc.db, id, userID, action)
}

type ListChaptersOptions struct {
	UserID int
	// Title filters on a case-insensitive substring.
	Title  *string
	Limit  int
	Offset int
}

// ListChaptersWithTotal returns a page of the user's chapters, newest first,
// and the total matching the filter.
func (svc *Service) ListChaptersWithTotal(ctx context.Context, opts ListChaptersOptions) ([]*models.Chapter, int, error) {
	chapters := []*models.Chapter{}

	q := svc.db.
		NewSelect().
		Model(&chapters).
		Where("ch.user_id = ?", opts.UserID).
		Order("ch.created_at DESC", "ch.id DESC")

	if opts.Title != nil && *opts.Title != "" {
		q = q.Where(`ch.title LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(*opts.Title)+"%")
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}

	total, err := q.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, errors.WithStack(err)
	}

	return chapters, total, nil
}

// DeleteChapter removes a chapter; its words go with it.
func (svc *Service) DeleteChapter(ctx context.Context, id int) error {
	_, err := svc.db.NewDelete().
		Model((*models.Chapter)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}

// PromptParams are the extraction parameters stored on a chapter.
func PromptParams(chapter *models.Chapter) vocabulary.PromptParams {
	return vocabulary.PromptParams{
		Text:            chapter.Text,
		Level:           chapter.Level,
		TargetLanguage:  chapter.TargetLanguage,
		WordCount:       chapter.WordsToExtract,
		TranslationMode: chapter.TranslationMode,
	}
}
