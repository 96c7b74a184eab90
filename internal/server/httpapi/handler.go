package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mihailvs/docshare/internal/common"
	"github.com/mihailvs/docshare/internal/server/models"
	"github.com/mihailvs/docshare/internal/server/services"
)

// multipartMemoryLimit is the in-memory budget for parsing upload forms;
// larger files spill to temp storage.
const multipartMemoryLimit = 32 << 20

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	writeMessage(w, http.StatusOK, "OK")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	_, err := s.users.Register(r.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusBadRequest, "Username exists")
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	s.logger.Info(r.Context(), "registered", "username", req.Username)
	writeMessage(w, http.StatusCreated, "Registered")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			// same response for unknown user and wrong password
			writeError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {

	username, ok := UsernameFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	meta := services.UploadMeta{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	var files []services.UploadFile
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid multipart form")
			return
		}
		defer f.Close()

		files = append(files, services.UploadFile{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}

	if _, err := s.documents.Upload(r.Context(), username, meta, files); err != nil {
		if errors.Is(err, common.ErrorValidation) {
			writeError(w, http.StatusBadRequest, "No files provided")
			return
		}
		s.logger.Error(r.Context(), "upload failed", "uploader", username, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Upload failed")
		return
	}

	s.logger.Info(r.Context(), "uploaded", "uploader", username, "files", len(files))
	writeMessage(w, http.StatusOK, "Uploaded successfully")
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {

	docs, err := s.documents.List(r.Context())
	if err != nil {
		s.logger.Error(r.Context(), "listing failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}
	if docs == nil {
		docs = []*models.Document{}
	}

	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {

	id := r.PathValue("id")

	url, err := s.documents.GetDownloadURL(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Not found")
			return
		}
		s.logger.Error(r.Context(), "download link failed", "id", id, "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}
