package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/config"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, repo users.Repository) *UserService {
	t.Helper()
	s, err := NewUserService(repo, &config.Config{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	return s
}

func TestUserService_SignupLoginStats(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, users.NewMemoryRepository())

	u, err := s.Signup(ctx, "  alice ", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.UserName)
	assert.NotEqual(t, []byte("pw"), u.PasswordHash)

	got, err := s.Login(ctx, "alice", "pw")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.UserName)

	stats, err := s.Stats(ctx, models.Identity{UserName: "alice"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.Coins)
	assert.Empty(t, stats.OwnedTags)
	assert.Equal(t, map[string]int64{models.GameSorting: 0, models.GameQuiz: 0}, stats.Highscores)
}

func TestUserService_Signup_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, users.NewMemoryRepository())

	_, err := s.Signup(ctx, "alice", "pw")
	require.NoError(t, err)
	_, err = s.Signup(ctx, "alice", "other")
	assert.ErrorIs(t, err, common.ErrorAlreadyExists)
}

func TestUserService_Signup_Validation(t *testing.T) {
	s := newUserService(t, users.NewMemoryRepository())

	cases := []struct {
		name, user, pw string
	}{
		{"empty user", "", "pw"},
		{"blank user", "   ", "pw"},
		{"empty password", "alice", ""},
		{"long user", strings.Repeat("a", maxUserNameLength+1), "pw"},
		{"long password", "alice", strings.Repeat("p", 73)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Signup(context.Background(), tc.user, tc.pw)
			assert.ErrorIs(t, err, common.ErrorInvalidArgument)
		})
	}
}

func TestUserService_Login_Failures(t *testing.T) {
	ctx := context.Background()
	s := newUserService(t, users.NewMemoryRepository())
	_, err := s.Signup(ctx, "alice", "pw")
	require.NoError(t, err)

	_, err = s.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)

	_, err = s.Login(ctx, "", "pw")
	assert.ErrorIs(t, err, common.ErrorInvalidArgument)
}

type failingUsersRepo struct{ err error }

func (f failingUsersRepo) Create(context.Context, *models.User) (*models.User, error) {
	return nil, f.err
}
func (f failingUsersRepo) GetUserByLogin(context.Context, string) (*models.User, error) {
	return nil, f.err
}
func (f failingUsersRepo) Modify(context.Context, string, users.ModifyFunc) (*models.User, error) {
	return nil, f.err
}

func TestUserService_StoreErrorsAreWrapped(t *testing.T) {
	boom := errors.New("boom")
	s := newUserService(t, failingUsersRepo{err: boom})

	_, err := s.Signup(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, boom)

	_, err = s.Login(context.Background(), "alice", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_Stats_RequiresIdentity(t *testing.T) {
	s := newUserService(t, users.NewMemoryRepository())
	_, err := s.Stats(context.Background(), models.Identity{})
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
