package repomanager

import (
	"context"
	"database/sql"

	"github.com/Jung-GunSong/friender-backend/internal/dbx"
	"github.com/Jung-GunSong/friender-backend/internal/server/repositories/photos"
	"github.com/Jung-GunSong/friender-backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either a *sql.DB or a *sql.Tx.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Photos(db dbx.DBTX) photos.Repository
}
