package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/auth"
	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/users"
)

const maxUserNameLength = 64

// UserService handles signup, credential checks and the stats view.
type UserService struct {
	repo       users.Repository
	bcryptCost int
	dummyHash  []byte
}

func NewUserService(repo users.Repository, cfg *config.Config) (*UserService, error) {
	// compared against for unknown users so both paths cost one bcrypt run
	dummy, err := auth.HashPassword("no-such-user", cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt: %w", err)
	}
	return &UserService{repo: repo, bcryptCost: cfg.BcryptCost, dummyHash: dummy}, nil
}

// Signup creates a user with zero coins, no tags and zero highscores.
func (s *UserService) Signup(ctx context.Context, userName, password string) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if err := validateCredentials(userName, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}

	user, err := s.repo.Create(ctx, models.NewUser(userName, hash))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login verifies the password. Unknown users and wrong passwords both
// yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (*models.User, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" || password == "" {
		return nil, fmt.Errorf("%w: missing username or password", common.ErrorInvalidArgument)
	}

	user, err := s.repo.GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			auth.CheckPassword(s.dummyHash, password)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrorUnauthorized
	}
	return user, nil
}

// Stats returns the coins, owned tags and highscores of the identity.
func (s *UserService) Stats(ctx context.Context, id models.Identity) (models.Stats, error) {
	if id.UserName == "" {
		return models.Stats{}, common.ErrorUnauthorized
	}
	user, err := s.repo.GetUserByLogin(ctx, id.UserName)
	if err != nil {
		return models.Stats{}, err
	}
	return user.Stats(), nil
}

func validateCredentials(userName, password string) error {
	switch {
	case userName == "" || password == "":
		return fmt.Errorf("%w: missing username or password", common.ErrorInvalidArgument)
	case utf8.RuneCountInString(userName) > maxUserNameLength:
		return fmt.Errorf("%w: username longer than %d characters", common.ErrorInvalidArgument, maxUserNameLength)
	case len(password) > auth.MaxPasswordBytes:
		return fmt.Errorf("%w: password longer than %d bytes", common.ErrorInvalidArgument, auth.MaxPasswordBytes)
	}
	return nil
}
