// Package services contains server-side business logic. UserService
// implements registration, login, profile photo attachment and the user
// listing on top of the repositories, the password hasher and the media
// store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Jung-GunSong/friender-backend/internal/common"
	"github.com/Jung-GunSong/friender-backend/internal/dbx"
	"github.com/Jung-GunSong/friender-backend/internal/logging"
	"github.com/Jung-GunSong/friender-backend/internal/server/config"
	"github.com/Jung-GunSong/friender-backend/internal/server/models"
	"github.com/Jung-GunSong/friender-backend/internal/server/repositories/repomanager"
	"github.com/Jung-GunSong/friender-backend/internal/server/repositories/users"
)

// PasswordHasher hashes new passwords and checks candidates against stored hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// MediaStore uploads an image and returns its public URL.
type MediaStore interface {
	Upload(ctx context.Context, body []byte, contentType string) (string, error)
}

type UserService struct {
	db             *sql.DB
	repomanager    repomanager.RepositoryManager
	hasher         PasswordHasher
	media          MediaStore
	placeholderURL string
	logger         logging.Logger

	// dummyHash is verified against when a login names an unknown user so
	// that both failure paths cost one hash comparison.
	dummyHash string
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, media MediaStore,
	cfg *config.Config, logger logging.Logger) (*UserService, error) {

	dummy, err := hasher.Hash("friender-login-placeholder")
	if err != nil {
		return nil, fmt.Errorf("dummy hash: %w", err)
	}

	return &UserService{
		db:             db,
		repomanager:    m,
		hasher:         hasher,
		media:          media,
		placeholderURL: cfg.PlaceholderPhotoURL,
		logger:         logger.With("module", "user_service"),
		dummyHash:      dummy,
	}, nil
}

// Register creates an account and returns its public projection.
//
// A taken name is rejected before the password is hashed. The lookup is
// repeated next to the insert inside a transaction, and a concurrent
// registration that still slips through is settled by the primary key, which
// the repository reports as the same common.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, in *models.NewAccount) (*models.Account, error) {
	if err := s.checkUsernameFree(ctx, s.repomanager.Users(s.db), in.Username); err != nil {
		return nil, s.registerError(ctx, in.Username, err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, s.internal(ctx, "password hashing failed", err)
	}

	var account *models.Account
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)
		if err := s.checkUsernameFree(ctx, repo, in.Username); err != nil {
			return err
		}

		account, err = repo.Create(ctx, in, hash)
		return err
	})
	if err != nil {
		return nil, s.registerError(ctx, in.Username, err)
	}

	s.logger.Info(ctx, "user registered", "username", account.Username)
	return account, nil
}

func (s *UserService) checkUsernameFree(ctx context.Context, repo users.Repository, username string) error {
	_, err := repo.FindByUsername(ctx, username)
	switch {
	case err == nil:
		return common.ErrDuplicateUsername
	case errors.Is(err, common.ErrorNotFound):
		return nil
	default:
		return err
	}
}

func (s *UserService) registerError(ctx context.Context, username string, err error) error {
	if errors.Is(err, common.ErrDuplicateUsername) {
		return fmt.Errorf("%w: %s", common.ErrDuplicateUsername, username)
	}
	return s.internal(ctx, "account registration failed", err)
}

// Login checks the password and returns the username. An unknown user and a
// wrong password both produce common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	creds, err := s.repomanager.Users(s.db).GetCredentials(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return "", common.ErrInvalidCredentials
		}
		return "", s.internal(ctx, "credentials lookup failed", err)
	}

	if !s.hasher.Verify(password, creds.PasswordHash) {
		return "", common.ErrInvalidCredentials
	}

	return creds.Username, nil
}

// AttachProfilePhoto stores upload and records its URL for username. A nil
// upload records the placeholder URL. Nothing is recorded when the upload
// fails.
func (s *UserService) AttachProfilePhoto(ctx context.Context, username string, upload *models.PhotoUpload) (string, error) {
	url := s.placeholderURL

	if upload != nil {
		// Avoid leaving an orphan object for an account that does not exist.
		if _, err := s.repomanager.Users(s.db).FindByUsername(ctx, username); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return "", common.ErrorNotFound
			}
			return "", s.internal(ctx, "user lookup failed", err)
		}

		uploaded, err := s.media.Upload(ctx, upload.Body, upload.ContentType)
		if err != nil {
			s.logger.Warn(ctx, "profile photo upload failed", "username", username, "error", err)
			return "", common.ErrUploadFailed
		}
		url = uploaded
	}

	photo, err := s.repomanager.Photos(s.db).Create(ctx, username, url)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", s.internal(ctx, "photo insert failed", err)
	}

	return photo.URL, nil
}

// ListAll returns accounts that have a profile photo, ordered by username.
func (s *UserService) ListAll(ctx context.Context) ([]*models.AccountWithPhoto, error) {
	list, err := s.repomanager.Users(s.db).ListWithPhotos(ctx)
	if err != nil {
		return nil, s.internal(ctx, "user listing failed", err)
	}
	return list, nil
}

func (s *UserService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return fmt.Errorf("%w: %v", common.ErrorInternal, err)
}
