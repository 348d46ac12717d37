// Package voices serves the synthesis voice listing.
package voices

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nightowl-labs/restwise/backend/internal/observability/logging"
	"github.com/nightowl-labs/restwise/backend/internal/service/speech"
	"github.com/nightowl-labs/restwise/backend/pkg/utils"
)

// Handler exposes the available synthesis voices over HTTP.
type Handler struct {
	lister speech.VoiceLister
	logger zerolog.Logger
}

// New creates the voices handler. A nil lister behaves like an empty
// catalogue.
func New(lister speech.VoiceLister) *Handler {
	return &Handler{lister: lister, logger: logging.WithComponent("voices")}
}

// RegisterRoutes mounts the voice listing endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/voices", h.handleList)
}

// handleList answers with the voice catalogue; listing failures degrade to
// an empty list rather than an error status.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	listed := []speech.Voice{}
	if h.lister != nil {
		result, err := h.lister.ListVoices(r.Context())
		if err != nil {
			h.logger.Warn().Err(err).Msg("voice listing failed, answering with empty list")
		} else {
			listed = result
		}
	}

	utils.RespondJSON(w, http.StatusOK, map[string][]speech.Voice{"voices": listed})
}
