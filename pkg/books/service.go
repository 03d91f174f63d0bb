package books

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

type CreateBookOptions struct {
	UserID   int
	Title    string
	Author   *string
	Language string
}

func (svc *Service) CreateBook(ctx context.Context, opts CreateBookOptions) (*models.Book, error) {
	author := opts.Author
	if author != nil && *author == "" {
		author = nil
	}

	now := time.Now()
	book := &models.Book{
		CreatedAt: now,
		UpdatedAt: now,
		UserID:    opts.UserID,
		Title:     opts.Title,
		Author:    author,
		Language:  opts.Language,
	}

	_, err := svc.db.NewInsert().Model(book).Exec(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return book, nil
}

// RetrieveBook returns the book only if userID owns it.
func (svc *Service) RetrieveBook(ctx context.Context, id, userID int) (*models.Book, error) {
	return ownership.Retrieve[models.Book](ctx, svc.db, id, userID, "Accessing this book")
}

type ListBooksOptions struct {
	UserID int
	Limit  int
	Offset int
}

// ListBooksWithTotal returns a page of the user's books, newest first.
func (svc *Service) ListBooksWithTotal(ctx context.Context, opts ListBooksOptions) ([]*models.Book, int, error) {
	books := []*models.Book{}

	q := svc.db.
		NewSelect().
		Model(&books).
		Where("b.user_id = ?", opts.UserID).
		Order("b.created_at DESC", "b.id DESC")

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

	return books, total, nil
}

// DeleteBook removes a book owned by userID.
func (svc *Service) DeleteBook(ctx context.Context, id, userID int) error {
	if err := ownership.Check[models.Book](ctx, svc.db, id, userID, "Deleting this book"); err != nil {
		return err
	}

	_, err := svc.db.NewDelete().
		Model((*models.Book)(nil)).
		Where("id = ?", id).
		Where("user_id = ?", userID).
		Exec(ctx)
	return errors.WithStack(err)
}
