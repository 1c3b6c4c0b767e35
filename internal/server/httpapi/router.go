package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/ecohack/internal/logging"
)

// NewRouter wires the API routes under /api. When staticDir is set, files
// from it are served for every other path.
func NewRouter(h *Handler, logger logging.Logger, staticDir string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/ping", h.Ping)
	mux.HandleFunc("POST /api/signup", h.Signup)
	mux.HandleFunc("POST /api/login", h.Login)
	mux.HandleFunc("POST /api/logout", h.Logout)
	mux.HandleFunc("GET /api/me", h.requireIdentity(h.Me))
	mux.HandleFunc("GET /api/user-stats", h.requireIdentity(h.UserStats))
	mux.HandleFunc("POST /api/score", h.requireIdentity(h.SubmitScore))
	mux.HandleFunc("GET /api/tags", h.Tags)
	mux.HandleFunc("POST /api/purchase-tag", h.requireIdentity(h.PurchaseTag))
	mux.HandleFunc("POST /api/quiz/generate", h.GenerateQuiz)
	mux.HandleFunc("POST /api/diy-suggestions", h.DIYSuggestions)

	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
	})

	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	// RequestID -> AccessLog -> Recover -> CORS -> LimitBody -> mux
	return Chain(mux,
		RequestID(),
		AccessLog(logger),
		Recover(logger),
		CORS(),
		LimitBody(MaxBodyBytes),
	)
}
