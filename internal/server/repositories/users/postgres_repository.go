package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jung-GunSong/friender-backend/internal/common"
	"github.com/Jung-GunSong/friender-backend/internal/dbx"
	"github.com/Jung-GunSong/friender-backend/internal/server/models"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (*models.AccountSummary, error) {
	query :=
		`SELECT username FROM users
		 WHERE username = $1
		 `

	s := &models.AccountSummary{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&s.Username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Create inserts the account with an already hashed password and returns the
// stored row without the hash. A primary key collision yields
// common.ErrDuplicateUsername.
func (r *PostgresRepository) Create(ctx context.Context, a *models.NewAccount, passwordHash string) (*models.Account, error) {
	query :=
		`INSERT INTO users (username, password, first_name, last_name, email, zip_code, friend_radius, hobbies, interests)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING username, first_name, last_name, email, zip_code, friend_radius, hobbies, interests
		 `

	out := &models.Account{}
	err := r.db.QueryRowContext(ctx, query,
		a.Username, passwordHash, a.FirstName, a.LastName, a.Email, a.Zipcode, a.FriendRadius,
		pq.Array(nonNil(a.Hobbies)), pq.Array(nonNil(a.Interests)),
	).Scan(
		&out.Username, &out.FirstName, &out.LastName, &out.Email, &out.Zipcode, &out.FriendRadius,
		pq.Array(&out.Hobbies), pq.Array(&out.Interests),
	)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) GetCredentials(ctx context.Context, username string) (*models.Credentials, error) {
	query :=
		`SELECT username, password FROM users
		 WHERE username = $1
		 `

	c := &models.Credentials{}
	err := r.db.QueryRowContext(ctx, query, username).Scan(&c.Username, &c.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

// ListWithPhotos joins accounts to their photo rows, ordered by username and
// then by attachment order. An account appears once per photo row; accounts
// without one are not listed.
func (r *PostgresRepository) ListWithPhotos(ctx context.Context) ([]*models.AccountWithPhoto, error) {
	query :=
		`SELECT users.username, first_name, last_name, email, zip_code, friend_radius, hobbies, interests,
		        photos.photo_profile
		 FROM users
		 JOIN photos ON users.username = photos.username
		 ORDER BY users.username, photos.id
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.AccountWithPhoto, 0)
	for rows.Next() {
		item := &models.AccountWithPhoto{}
		err := rows.Scan(
			&item.Username, &item.FirstName, &item.LastName, &item.Email, &item.Zipcode, &item.FriendRadius,
			pq.Array(&item.Hobbies), pq.Array(&item.Interests), &item.ProfilePhoto,
		)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
