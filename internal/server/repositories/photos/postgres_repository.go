package photos

import (
	"context"
	"fmt"

	"github.com/Jung-GunSong/friender-backend/internal/common"
	"github.com/Jung-GunSong/friender-backend/internal/dbx"
	"github.com/Jung-GunSong/friender-backend/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create appends a photo row for username. Earlier rows are kept; the
// listing picks the newest one. An unknown username yields
// common.ErrorNotFound.
func (r *PostgresRepository) Create(ctx context.Context, username, url string) (*models.ProfilePhoto, error) {
	query :=
		`INSERT INTO photos (username, photo_profile)
		 VALUES ($1, $2)
		 RETURNING username, photo_profile
		 `

	p := &models.ProfilePhoto{}
	err := r.db.QueryRowContext(ctx, query, username, url).Scan(&p.Username, &p.URL)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}
