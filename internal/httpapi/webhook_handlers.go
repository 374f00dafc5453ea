package httpapi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"jobsbot/internal/bot"
)

const maxEventBytes = 1 << 20

// WebhookHandler accepts Lex V2 fulfillment events over plain HTTP.
type WebhookHandler struct {
	Router *bot.Router
	Log    *zap.SugaredLogger
}

func (h WebhookHandler) Fulfill(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxEventBytes)
	defer body.Close()

	var ev bot.Event
	dec := json.NewDecoder(body)
	if err := dec.Decode(&ev); err != nil {
		h.Log.Warnw("invalid webhook payload", "request_id", RequestIDFrom(r.Context()), "err", err)
		WriteError(w, r, http.StatusBadRequest, CodeInvalidJSON, "invalid JSON: "+err.Error())
		return
	}
	if ev.SessionState.Intent.Name == "" {
		WriteError(w, r, http.StatusBadRequest, CodeMissingIntent, "sessionState.intent.name is required")
		return
	}

	WriteJSON(w, http.StatusOK, h.Router.Handle(r.Context(), ev))
}
