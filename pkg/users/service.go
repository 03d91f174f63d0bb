package users

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/chapterprep/chapterprep/pkg/database"
	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	usernameTakenMessage = "Username already exists."
	emailTakenMessage    = "Email already exists."
)

// Service is the credential store. It never sees plaintext passwords.
type Service struct {
	db bun.IDB
}

// NewService creates a new users service.
func NewService(db bun.IDB) *Service {
	return &Service{db: db}
}

// CreateUserOptions contains options for creating a user.
type CreateUserOptions struct {
	Username     string
	Email        string
	PasswordHash string
}

// Create stores a new user. A taken username or email is reported as a
// Conflict, whether the pre-check catches it or the unique index does.
func (s *Service) Create(ctx context.Context, opts CreateUserOptions) (*models.User, error) {
	exists, err := s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("username = ? COLLATE NOCASE", opts.Username).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict(usernameTakenMessage)
	}

	exists, err = s.db.NewSelect().
		Model((*models.User)(nil)).
		Where("email = ? COLLATE NOCASE", opts.Email).
		Exists(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if exists {
		return nil, errcodes.Conflict(emailTakenMessage)
	}

	user := &models.User{
		CreatedAt:    time.Now(),
		Username:     opts.Username,
		Email:        opts.Email,
		PasswordHash: opts.PasswordHash,
	}
	if err := s.insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// insert is the part of Create that races: two registrations can both pass
// the existence checks, and only the unique index decides.
func (s *Service) insert(ctx context.Context, user *models.User) error {
	_, err := s.db.NewInsert().Model(user).Exec(ctx)
	if database.IsUniqueViolation(err) {
		if strings.Contains(err.Error(), "email") {
			return errcodes.Conflict(emailTakenMessage)
		}
		return errcodes.Conflict(usernameTakenMessage)
	}
	return errors.WithStack(err)
}

// RetrieveUserOptions selects a user by exactly one of its fields.
type RetrieveUserOptions struct {
	ID       *int
	Username *string
}

// Retrieve gets a single user. An absent user is a NotFound.
func (s *Service) Retrieve(ctx context.Context, opts RetrieveUserOptions) (*models.User, error) {
	user := &models.User{}
	q := s.db.NewSelect().Model(user)

	switch {
	case opts.ID != nil:
		q = q.Where("u.id = ?", *opts.ID)
	case opts.Username != nil:
		q = q.Where("u.username = ? COLLATE NOCASE", *opts.Username)
	default:
		return nil, errors.New("either ID or Username must be provided")
	}

	err := q.Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errcodes.NotFound("User")
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Delete removes a user; books, chapters and words go with it.
func (s *Service) Delete(ctx context.Context, id int) error {
	_, err := s.db.NewDelete().
		Model((*models.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return errors.WithStack(err)
}
