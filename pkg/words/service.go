package words

import (
	"context"
	"time"

	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/ownership"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type Service struct {
	db *bun.DB
}

func NewService(db *bun.DB) *Service {
	return &Service{db}
}

type CreateWordsOptions struct {
	ChapterID int
	UserID    int
	Words     []WordPayload
}

// CreateWords stores confirmed words for a chapter in one transaction. The
// caller is responsible for checking that UserID owns the chapter.
func (svc *Service) CreateWords(ctx context.Context, opts CreateWordsOptions) error {
	if len(opts.Words) == 0 {
		return nil
	}

	now := time.Now()
	words := make([]*models.Word, 0, len(opts.Words))
	for _, w := range opts.Words {
		words = append(words, &models.Word{
			CreatedAt: now,
			UpdatedAt: now,
			ChapterID: opts.ChapterID,
			UserID:    opts.UserID,
			Word:      w.Word,
			BaseForm:  w.BaseForm,
			Output:    w.Output,
			Status:    models.WordStatusToLearn,
		})
	}

	return svc.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().Model(&words).Exec(ctx)
		return errors.WithStack(err)
	})
}

// ListWords returns the words of a chapter that belong to userID, in
// insertion order.
func (svc *Service) ListWords(ctx context.Context, chapterID, userID int) ([]*models.Word, error) {
	words := []*models.Word{}
	err := svc.db.NewSelect().
		Model(&words).
		Where("w.chapter_id = ?", chapterID).
		Where("w.user_id = ?", userID).
		Order("w.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return words, nil
}

// RetrieveWord returns the word only if userID owns it.
func (svc *Service) RetrieveWord(ctx context.Context, id, userID int, action string) (*models.Word, error) {
	return ownership.Retrieve[models.Word](ctx, svc.db, id, userID, action)
}

type UpdateWordOptions struct {
	Columns []string
}

func (svc *Service) UpdateWord(ctx context.Context, word *models.Word, opts UpdateWordOptions) error {
	if len(opts.Columns) == 0 {
		return nil
	}

	word.UpdatedAt = time.Now()
	opts.Columns = append(opts.Columns, "updated_at")

	_, err := svc.db.NewUpdate().
		Model(word).
		Column(opts.Columns...).
		WherePK().
		Exec(ctx)
	return errors.WithStack(err)
}

func (svc *Service) DeleteWord(ctx context.Context, id int) error {
	_, err := svc.db.NewDelete().
		Model((*models.Word)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
