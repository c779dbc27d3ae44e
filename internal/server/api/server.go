// Package api exposes the user service over HTTP using a chi router.
package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Jung-GunSong/friender-backend/internal/logging"
	"github.com/Jung-GunSong/friender-backend/internal/server/models"
)

// UserService is the business API the handlers call into.
type UserService interface {
	Register(ctx context.Context, in *models.NewAccount) (*models.Account, error)
	Login(ctx context.Context, username, password string) (string, error)
	AttachProfilePhoto(ctx context.Context, username string, upload *models.PhotoUpload) (string, error)
	ListAll(ctx context.Context) ([]*models.AccountWithPhoto, error)
}

type HTTPServer struct {
	address         string
	users           UserService
	logger          logging.Logger
	maxUploadBytes  int64
	shutdownTimeout time.Duration
}

func NewHTTPServer(a string, l logging.Logger, us UserService, maxUploadBytes int64, shutdownTimeout time.Duration) *HTTPServer {
	return &HTTPServer{
		address:         a,
		logger:          l.With("module", "http_server"),
		users:           us,
		maxUploadBytes:  maxUploadBytes,
		shutdownTimeout: shutdownTimeout,
	}
}

// Router builds the route table with its middleware chain.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/login", s.login)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/{username}/photo", s.attachPhoto)
	})

	return r
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
