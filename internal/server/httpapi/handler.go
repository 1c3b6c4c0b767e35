// Package httpapi serves the JSON API used by the web client.
package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/logging"
	"github.com/dmitrijs2005/ecohack/internal/server/models"
	"github.com/dmitrijs2005/ecohack/internal/server/services"
	"github.com/dmitrijs2005/ecohack/internal/server/suggest"
	"github.com/tidwall/gjson"
)

type Handler struct {
	users        *services.UserService
	sessions     *services.SessionService
	economy      *services.EconomyService
	generator    *suggest.Generator
	logger       logging.Logger
	cookieSecure bool
}

func NewHandler(
	us *services.UserService,
	ss *services.SessionService,
	es *services.EconomyService,
	gen *suggest.Generator,
	l logging.Logger,
	cookieSecure bool,
) *Handler {
	return &Handler{
		users:        us,
		sessions:     ss,
		economy:      es,
		generator:    gen,
		logger:       l.With("module", "http_api"),
		cookieSecure: cookieSecure,
	}
}

// identityHandler is a handler for routes that act on behalf of a user.
type identityHandler func(w http.ResponseWriter, r *http.Request, id models.Identity)

// requireIdentity resolves the session cookie before calling next.
func (h *Handler) requireIdentity(next identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var token string
		if c, err := r.Cookie(common.SessionCookieName); err == nil {
			token = c.Value
		}
		id, err := h.sessions.Authenticate(r.Context(), token)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		next(w, r, id)
	}
}

func (h *Handler) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, object{"ok": true})
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.Signup(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "signed up", "username", user.UserName)
	h.startSession(w, r, user.UserName)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.startSession(w, r, user.UserName)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userName string) {
	issued, err := h.sessions.Open(r.Context(), userName)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.SetCookie(w, h.sessionCookie(issued.Token, issued.ExpiresAt))
	writeJSON(w, http.StatusOK, object{"success": true, "user": object{"username": userName}})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(common.SessionCookieName); err == nil {
		if err := h.sessions.Close(r.Context(), c.Value); err != nil {
			h.logger.Warn(r.Context(), "closing session failed", "error", err)
		}
	}
	http.SetCookie(w, h.sessionCookie("", time.Unix(0, 0)))
	writeJSON(w, http.StatusOK, object{"success": true})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request, id models.Identity) {
	writeJSON(w, http.StatusOK, object{"user": object{"username": id.UserName}})
}

func (h *Handler) UserStats(w http.ResponseWriter, r *http.Request, id models.Identity) {
	stats, err := h.users.Stats(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

type scoreRequest struct {
	Game  string          `json:"game"`
	Score json.RawMessage `json:"score"`
}

func (h *Handler) SubmitScore(w http.ResponseWriter, r *http.Request, id models.Identity) {
	var req scoreRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	score, err := parseScore(req.Score)
	if req.Game == "" || err != nil {
		h.writeError(w, r, fmt.Errorf("%w: missing game or score", common.ErrorInvalidArgument))
		return
	}

	res, err := h.economy.SubmitScore(r.Context(), id, req.Game, score)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if res.NewHigh {
		h.logger.Info(r.Context(), "new highscore", "username", id.UserName, "game", req.Game, "score", score, "awarded", res.Awarded)
	}
	writeJSON(w, http.StatusOK, object{
		"success":    true,
		"newHigh":    res.NewHigh,
		"awarded":    res.Awarded,
		"highscores": res.Highscores,
		"coins":      res.Coins,
	})
}

// parseScore accepts only a JSON number holding a non-negative integer.
func parseScore(raw json.RawMessage) (int64, error) {
	r := gjson.ParseBytes(raw)
	if r.Type != gjson.Number {
		return 0, errors.New("score is not a number")
	}
	n, err := strconv.ParseInt(r.Raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.New("score is negative")
	}
	return n, nil
}

func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, object{"tags": h.economy.Catalog()})
}

type purchaseRequest struct {
	ID string `json:"id"`
}

func (h *Handler) PurchaseTag(w http.ResponseWriter, r *http.Request, id models.Identity) {
	var req purchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.ID == "" {
		h.writeError(w, r, fmt.Errorf("%w: missing tag id", common.ErrorInvalidArgument))
		return
	}

	res, err := h.economy.PurchaseTag(r.Context(), id, req.ID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "tag purchased", "username", id.UserName, "tag", req.ID, "coins", res.Coins)
	writeJSON(w, http.StatusOK, object{"success": true, "coins": res.Coins, "ownedTags": res.OwnedTags})
}

func (h *Handler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// count may be a number or a numeric string
	count := int(gjson.GetBytes(body, "count").Int())

	questions, err := h.generator.Quiz(r.Context(), count)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, object{"success": true, "questions": questions})
}

func (h *Handler) DIYSuggestions(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	items := gjson.GetBytes(body, "items")
	if items.Type != gjson.String {
		h.writeError(w, r, fmt.Errorf("%w: please provide items", common.ErrorInvalidArgument))
		return
	}

	res, err := h.generator.DIY(r.Context(), items.Str)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, object{"success": true, "suggestions": res.Suggestions, "raw": res.Raw})
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	c := &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		c.MaxAge = -1
	}
	return c
}

// decodeJSON reads a JSON object into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	body, err := readBody(r)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorInvalidArgument)
	}
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidArgument, err)
	}
	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed JSON body", common.ErrorInvalidArgument)
	}
	return body, nil
}
