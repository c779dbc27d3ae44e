// Package photos implements persistence for profile photo records.
package photos

import (
	"context"

	"github.com/Jung-GunSong/friender-backend/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, username, url string) (*models.ProfilePhoto, error)
}
