package users

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/dbx"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (username, password_hash, coins, owned_tags, highscores, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	tags, scores, err := encodeDocs(user)
	if err != nil {
		return nil, err
	}

	_, err = r.db.ExecContext(ctx, query,
		user.UserName, user.PasswordHash, user.Coins, tags, scores, user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	query := `
		SELECT username, password_hash, coins, owned_tags, highscores, created_at
		FROM users
		WHERE username = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, userName))
}

// Modify locks the row with SELECT ... FOR UPDATE inside a transaction, so
// concurrent balance checks for one user cannot interleave.
func (r *PostgresRepository) Modify(ctx context.Context, userName string, fn ModifyFunc) (*models.User, error) {
	var result *models.User

	err := dbx.InTx(ctx, r.db, func(ctx context.Context, tx dbx.DBTX) error {
		query := `
			SELECT username, password_hash, coins, owned_tags, highscores, created_at
			FROM users
			WHERE username = $1
			FOR UPDATE
		`
		user, err := scanUser(tx.QueryRowContext(ctx, query, userName))
		if err != nil {
			return err
		}

		changed, err := fn(user)
		if err != nil {
			return err
		}
		if !changed {
			result = user
			return nil
		}

		tags, scores, err := encodeDocs(user)
		if err != nil {
			return err
		}

		update := `
			UPDATE users
			SET coins = $2, owned_tags = $3, highscores = $4
			WHERE username = $1
		`
		if _, err := tx.ExecContext(ctx, update, userName, user.Coins, tags, scores); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		result = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var tags, scores []byte

	err := row.Scan(&user.UserName, &user.PasswordHash, &user.Coins, &tags, &scores, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if err := json.Unmarshal(tags, &user.OwnedTags); err != nil {
		return nil, fmt.Errorf("decode owned_tags: %w", err)
	}
	if err := json.Unmarshal(scores, &user.Highscores); err != nil {
		return nil, fmt.Errorf("decode highscores: %w", err)
	}
	if user.OwnedTags == nil {
		user.OwnedTags = []string{}
	}
	if user.Highscores == nil {
		user.Highscores = map[string]int64{}
	}

	return user, nil
}

// encodeDocs renders the jsonb columns as text, which pgx passes through unchanged.
func encodeDocs(user *models.User) (string, string, error) {
	tags := user.OwnedTags
	if tags == nil {
		tags = []string{}
	}
	t, err := json.Marshal(tags)
	if err != nil {
		return "", "", fmt.Errorf("encode owned_tags: %w", err)
	}

	scores := user.Highscores
	if scores == nil {
		scores = map[string]int64{}
	}
	s, err := json.Marshal(scores)
	if err != nil {
		return "", "", fmt.Errorf("encode highscores: %w", err)
	}

	return string(t), string(s), nil
}
