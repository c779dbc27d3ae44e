package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Jung-GunSong/friender-backend/internal/server/models"
)

// multipartOverhead is the room left for boundaries and part headers on top
// of the file size limit.
const multipartOverhead = 1 << 20

// errFileTooLarge reports a file part over the configured limit.
var errFileTooLarge = errors.New("file too large")

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	User *models.Account `json:"user"`
}

type loginResponse struct {
	Username string `json:"username"`
}

type listResponse struct {
	Users []*models.AccountWithPhoto `json:"users"`
}

type photoResponse struct {
	ProfilePhoto string `json:"profilePhoto"`
}

func (s *HTTPServer) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("OK"))
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var in models.NewAccount
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if in.Username == "" || in.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	account, err := s.users.Register(r.Context(), &in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{User: account})
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	username, err := s.users.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Username: username})
}

func (s *HTTPServer) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := s.users.ListAll(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []*models.AccountWithPhoto{}
	}

	writeJSON(w, http.StatusOK, listResponse{Users: list})
}

// attachPhoto accepts an optional multipart "file" part. A request without
// one records the placeholder photo.
func (s *HTTPServer) attachPhoto(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	if r.ContentLength > s.maxUploadBytes+multipartOverhead {
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
		return
	}

	upload, err := s.readUpload(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, errFileTooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid upload")
		return
	}

	url, err := s.users.AttachProfilePhoto(r.Context(), username, upload)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, photoResponse{ProfilePhoto: url})
}

func (s *HTTPServer) readUpload(w http.ResponseWriter, r *http.Request) (*models.PhotoUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes+multipartOverhead)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	if header.Size > s.maxUploadBytes {
		return nil, errFileTooLarge
	}

	body, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(body)
	}

	return &models.PhotoUpload{Body: body, ContentType: contentType}, nil
}
