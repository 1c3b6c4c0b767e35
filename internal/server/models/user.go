// Package models holds the server's persistent records and the values
// passed between layers.
package models

import (
	"maps"
	"slices"
	"time"
)

// Known game keys. Every user carries a highscore for each of them.
const (
	GameSorting = "sorting"
	GameQuiz    = "quiz"
)

// Games lists the recognised game keys.
var Games = []string{GameSorting, GameQuiz}

// IsKnownGame reports whether game is one of Games.
func IsKnownGame(game string) bool {
	return slices.Contains(Games, game)
}

type User struct {
	UserName     string
	PasswordHash []byte
	Coins        int64
	OwnedTags    []string
	Highscores   map[string]int64
	CreatedAt    time.Time
}

// NewUser returns a freshly signed-up user: no coins, no tags and a zero
// highscore for every known game.
func NewUser(username string, passwordHash []byte) *User {
	highscores := make(map[string]int64, len(Games))
	for _, g := range Games {
		highscores[g] = 0
	}
	return &User{
		UserName:     username,
		PasswordHash: passwordHash,
		OwnedTags:    []string{},
		Highscores:   highscores,
		CreatedAt:    time.Now().UTC(),
	}
}

// Owns reports whether tagID is in the user's owned tags.
func (u *User) Owns(tagID string) bool {
	return slices.Contains(u.OwnedTags, tagID)
}

// Clone returns a deep copy so callers can mutate it without touching the original.
func (u *User) Clone() *User {
	c := *u
	c.PasswordHash = slices.Clone(u.PasswordHash)
	c.OwnedTags = slices.Clone(u.OwnedTags)
	if c.OwnedTags == nil {
		c.OwnedTags = []string{}
	}
	c.Highscores = maps.Clone(u.Highscores)
	if c.Highscores == nil {
		c.Highscores = map[string]int64{}
	}
	return &c
}

// Stats is the user-scoped view returned by /user-stats.
type Stats struct {
	Coins      int64            `json:"coins"`
	OwnedTags  []string         `json:"ownedTags"`
	Highscores map[string]int64 `json:"highscores"`
}

// Stats projects the user's balance, tags and highscores.
func (u *User) Stats() Stats {
	c := u.Clone()
	for _, g := range Games {
		if _, ok := c.Highscores[g]; !ok {
			c.Highscores[g] = 0
		}
	}
	return Stats{Coins: c.Coins, OwnedTags: c.OwnedTags, Highscores: c.Highscores}
}
