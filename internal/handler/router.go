package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nightowl-labs/restwise/backend/internal/handler/usercontext"
	"github.com/nightowl-labs/restwise/backend/internal/handler/voice"
	"github.com/nightowl-labs/restwise/backend/internal/handler/voices"
	"github.com/nightowl-labs/restwise/backend/internal/middleware"
	usercontextmodel "github.com/nightowl-labs/restwise/backend/internal/model/usercontext"
	"github.com/nightowl-labs/restwise/backend/internal/service/auth"
	"github.com/nightowl-labs/restwise/backend/internal/service/speech"
	"github.com/nightowl-labs/restwise/backend/pkg/utils"
)

// NewRouter wires HTTP and websocket routes to core services.
func NewRouter(voiceHandler *voice.Handler, lister speech.VoiceLister, contextStore *usercontextmodel.Store, verifier auth.Verifier) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	// The voice session endpoint carries its own protocol; the HTTP
	// surface around it is token gated.
	voiceHandler.RegisterRoutes(r)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireAuth(verifier))

		usercontext.New(contextStore).RegisterRoutes(api)
		voices.New(lister).RegisterRoutes(api)
	})

	return r
}
