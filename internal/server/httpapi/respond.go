package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/ecohack/internal/common"
	"github.com/dmitrijs2005/ecohack/internal/server/suggest"
	"github.com/tidwall/gjson"
)

const decommissionedHelp = "Set the environment variable GROQ_MODEL to a supported model. See https://console.groq.com/docs/deprecations"

type object = map[string]any

func errorBody(msg string) object {
	return object{"success": false, "error": msg}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError maps a service error to a status code and an error body.
// Anything unrecognised is logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		upstream *suggest.UpstreamError
		parse    *suggest.ParseError
		tooLarge *http.MaxBytesError
	)

	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		writeJSON(w, http.StatusUnauthorized, errorBody("not authorized"))
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request body too large"))
	case errors.Is(err, common.ErrorInvalidArgument):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, common.ErrorUnknownTag):
		writeJSON(w, http.StatusNotFound, errorBody("tag not found"))
	case errors.Is(err, common.ErrorNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("user not found"))
	case errors.Is(err, common.ErrorAlreadyExists):
		writeJSON(w, http.StatusConflict, errorBody("username exists"))
	case errors.Is(err, common.ErrorAlreadyOwned):
		writeJSON(w, http.StatusBadRequest, errorBody("already owned"))
	case errors.Is(err, common.ErrorInsufficientFunds):
		writeJSON(w, http.StatusBadRequest, errorBody("insufficient coins"))
	case errors.Is(err, suggest.ErrUpstreamNotConfigured):
		h.logger.Error(r.Context(), "llm api key not configured")
		writeJSON(w, http.StatusInternalServerError, errorBody("llm api key not configured"))
	case errors.As(err, &upstream):
		h.logger.Error(r.Context(), "llm api error", "status", upstream.StatusCode, "code", upstream.Code, "model", upstream.Model)
		h.writeUpstreamError(w, upstream)
	case errors.As(err, &parse):
		msg := "failed to parse model output"
		if errors.Is(err, suggest.ErrExtractionFailed) {
			msg = "no JSON array in model output"
		}
		writeJSON(w, http.StatusInternalServerError, object{
			"success": false,
			"error":   msg,
			"raw":     parse.Raw,
		})
	default:
		h.logger.Error(r.Context(), "request failed", "error", err, "request_id", RequestIDFromContext(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorBody("server error"))
	}
}

func (h *Handler) writeUpstreamError(w http.ResponseWriter, e *suggest.UpstreamError) {
	if e.Decommissioned() {
		msg := e.Message
		if msg == "" {
			msg = "model decommissioned"
		}
		writeJSON(w, http.StatusUnprocessableEntity, object{
			"success":    false,
			"error":      suggest.CodeModelDecommissioned,
			"message":    msg,
			"triedModel": e.Model,
			"help":       decommissionedHelp,
		})
		return
	}

	status := e.StatusCode
	if status < 400 || status > 599 {
		status = http.StatusBadGateway
	}
	var details any = e.Message
	if gjson.Valid(e.Body) && e.Body != "" {
		details = json.RawMessage(e.Body)
	}
	writeJSON(w, status, object{
		"success":    false,
		"error":      "llm api error",
		"details":    details,
		"triedModel": e.Model,
	})
}
