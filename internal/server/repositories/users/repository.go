// Package users implements persistence for account records.
package users

import (
	"context"

	"github.com/Jung-GunSong/friender-backend/internal/server/models"
)

// Repository reads and writes accounts. Each method returns its own
// projection; only GetCredentials ever exposes the password hash.
type Repository interface {
	FindByUsername(ctx context.Context, username string) (*models.AccountSummary, error)
	Create(ctx context.Context, account *models.NewAccount, passwordHash string) (*models.Account, error)
	GetCredentials(ctx context.Context, username string) (*models.Credentials, error)
	ListWithPhotos(ctx context.Context) ([]*models.AccountWithPhoto, error)
}
