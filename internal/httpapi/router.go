package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"jobsbot/internal/bot"
)

// NewMux wires every route. Callers wrap it with Chain for middleware.
func NewMux(d Deps) *http.ServeMux {
	if d.Log == nil {
		d.Log = zap.NewNop().Sugar()
	}
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Lex fulfillment
	wh := WebhookHandler{Router: d.Router, Log: d.Log}
	mux.HandleFunc("/webhook", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: wh.Fulfill,
	}))

	// Direct search
	f := bot.Formatter{
		MaxResults: d.Cfg.Board.MaxResults,
		HomeURL:    d.Cfg.Board.BaseURL + "/",
	}
	sh := SearchHandler{Searcher: d.Searcher, Formatter: f, Log: d.Log}
	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Search,
	}))

	// Config
	ch := ConfigHandler{Cfg: d.Cfg}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	return mux
}

// NewHandler is NewMux wrapped in the standard middleware stack.
func NewHandler(d Deps) http.Handler {
	if d.Log == nil {
		d.Log = zap.NewNop().Sugar()
	}
	return Chain(NewMux(d), RequestID, Recover(d.Log), AccessLog(d.Log))
}
