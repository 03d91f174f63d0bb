package auth

import (
	"context"
	"sync"

	"github.com/chapterprep/chapterprep/pkg/errcodes"
	"github.com/chapterprep/chapterprep/pkg/models"
	"github.com/chapterprep/chapterprep/pkg/users"
	"github.com/pkg/errors"
	"github.com/robinjoseph08/golib/logger"
)

const invalidCredentialsMessage = "Invalid username or password."

// Service handles registration and login on top of the credential store.
type Service struct {
	users  *users.Service
	tokens *TokenService
}

// NewService creates a new auth service.
func NewService(userService *users.Service, tokens *TokenService) *Service {
	return &Service{
		users:  userService,
		tokens: tokens,
	}
}

// RegisterOptions contains the fields of a registration. They are expected to
// be trimmed and validated already.
type RegisterOptions struct {
	Username string
	Email    string
	Password string
}

// Register creates a user with a hashed password.
func (s *Service) Register(ctx context.Context, opts RegisterOptions) (*models.User, error) {
	hash, err := HashPassword(opts.Password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Create(ctx, users.CreateUserOptions{
		Username:     opts.Username,
		Email:        opts.Email,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("user registered", logger.Data{"user_id": user.ID})

	return user, nil
}

// Login checks credentials and issues a token. Unknown users and wrong
// passwords fail the same way.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.Retrieve(ctx, users.RetrieveUserOptions{Username: &username})
	if err != nil {
		if !errcodes.IsCode(err, "not_found") {
			return nil, "", err
		}
		// Spend the same time as a real check.
		CheckPassword(password, dummyHash())
		return nil, "", errcodes.Unauthorized(invalidCredentialsMessage)
	}

	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", errcodes.Unauthorized(invalidCredentialsMessage)
	}

	token, err := s.tokens.Issue(Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, "", errors.WithStack(err)
	}

	return user, token, nil
}

// Authenticate resolves a bearer token to the user it names. The user must
// still exist.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	identity, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Retrieve(ctx, users.RetrieveUserOptions{ID: &identity.UserID})
	if err != nil {
		if errcodes.IsCode(err, "not_found") {
			return nil, errcodes.Unauthorized(invalidTokenMessage)
		}
		return nil, err
	}

	return user, nil
}

var dummyHash = sync.OnceValue(func() string {
	hash, _ := HashPassword("chapterprep-dummy-password")
	return hash
})
