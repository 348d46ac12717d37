// Package usercontext serves the coaching-context upload endpoints.
package usercontext

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nightowl-labs/restwise/backend/internal/middleware"
	usercontextmodel "github.com/nightowl-labs/restwise/backend/internal/model/usercontext"
	"github.com/nightowl-labs/restwise/backend/pkg/utils"
)

const maxUploadBytes = 10 << 20

// Handler records per-user context supplied over HTTP.
type Handler struct {
	store *usercontextmodel.Store
}

// New creates the user-context handler.
func New(store *usercontextmodel.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the context endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload-context", h.handleUpload)
	r.Post("/set-text-context", h.handleSetText)
}

// handleUpload accepts a multipart context file and records it for the
// verified user.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "user identity missing")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}

	h.store.SetFile(userID, header.Filename)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "uploaded"})
}

// handleSetText records pasted context text for the verified user.
func (h *Handler) handleSetText(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "user identity missing")
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Text == "" {
		utils.RespondError(w, http.StatusBadRequest, "text is required")
		return
	}

	h.store.SetText(userID, payload.Text)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "context set"})
}
