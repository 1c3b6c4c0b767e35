package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/catalog"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/dmitrijs2005/ecohack/internal/server/repositories/users"
)

// CoinsPerPoints: a new highscore awards score / CoinsPerPoints coins.
const CoinsPerPoints = 10

type ScoreResult struct {
	NewHigh    bool
	Awarded    int64
	Highscores map[string]int64
	Coins      int64
}

type PurchaseResult struct {
	Coins     int64
	OwnedTags []string
}

// EconomyService applies the coin rules. Every operation is a single
// users.Repository.Modify call, so the check and the write happen under
// the same per-user lock.
type EconomyService struct {
	repo    users.Repository
	catalog *catalog.Catalog
}

func NewEconomyService(repo users.Repository, c *catalog.Catalog) *EconomyService {
	return &EconomyService{repo: repo, catalog: c}
}

// Catalog returns the tags on sale.
func (s *EconomyService) Catalog() []catalog.Item {
	return s.catalog.Items()
}

// SubmitScore records score for game and awards coins when it beats the
// previous best. Lower or equal scores change nothing.
func (s *EconomyService) SubmitScore(ctx context.Context, id models.Identity, game string, score int64) (*ScoreResult, error) {
	if id.UserName == "" {
		return nil, common.ErrorUnauthorized
	}
	if !models.IsKnownGame(game) {
		return nil, fmt.Errorf("%w: %w %q", common.ErrorInvalidArgument, common.ErrorUnknownGame, game)
	}
	if score < 0 {
		return nil, fmt.Errorf("%w: score must not be negative", common.ErrorInvalidArgument)
	}

	var (
		awarded int64
		newHigh bool
	)
	user, err := s.repo.Modify(ctx, id.UserName, func(u *models.User) (bool, error) {
		var err error
		awarded, newHigh, err = applyScore(u, game, score)
		return newHigh, err
	})
	if err != nil {
		return nil, wrapStoreError(err)
	}

	stats := user.Stats()
	return &ScoreResult{
		NewHigh:    newHigh,
		Awarded:    awarded,
		Highscores: stats.Highscores,
		Coins:      stats.Coins,
	}, nil
}

// PurchaseTag debits the tag's cost and adds it to the owned tags.
func (s *EconomyService) PurchaseTag(ctx context.Context, id models.Identity, tagID string) (*PurchaseResult, error) {
	if id.UserName == "" {
		return nil, common.ErrorUnauthorized
	}
	if tagID == "" {
		return nil, fmt.Errorf("%w: missing tag id", common.ErrorInvalidArgument)
	}
	item, ok := s.catalog.Lookup(tagID)
	if !ok {
		return nil, common.ErrorUnknownTag
	}

	user, err := s.repo.Modify(ctx, id.UserName, func(u *models.User) (bool, error) {
		return true, applyPurchase(u, item)
	})
	if err != nil {
		return nil, wrapStoreError(err)
	}

	return &PurchaseResult{Coins: user.Coins, OwnedTags: slices.Clone(user.OwnedTags)}, nil
}

// applyScore refuses awards that would overflow the balance, leaving u
// untouched.
func applyScore(u *models.User, game string, score int64) (awarded int64, newHigh bool, err error) {
	if u.Highscores == nil {
		u.Highscores = map[string]int64{}
	}
	prev := u.Highscores[game]
	if score <= prev {
		return 0, false, nil
	}
	awarded = score / CoinsPerPoints
	if u.Coins > math.MaxInt64-awarded {
		return 0, false, fmt.Errorf("%w: coin balance would overflow", common.ErrorInvalidArgument)
	}
	u.Highscores[game] = score
	u.Coins += awarded
	return awarded, true, nil
}

func applyPurchase(u *models.User, item catalog.Item) error {
	if u.Owns(item.ID) {
		return common.ErrorAlreadyOwned
	}
	if u.Coins < item.Cost {
		return common.ErrorInsufficientFunds
	}
	u.Coins -= item.Cost
	u.OwnedTags = append(u.OwnedTags, item.ID)
	return nil
}

// wrapStoreError keeps the domain sentinels and wraps everything else.
func wrapStoreError(err error) error {
	for _, known := range []error{
		common.ErrorNotFound,
		common.ErrorInvalidArgument,
		common.ErrorAlreadyOwned,
		common.ErrorInsufficientFunds,
	} {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("error updating user: %w", err)
}
