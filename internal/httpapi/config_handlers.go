package httpapi

import (
	"net/http"

	"jobsbot/internal/config"
)

// ConfigHandler exposes the effective (read-only) configuration.
type ConfigHandler struct {
	Cfg config.Config
}

func (h ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Cfg)
}

func (h ConfigHandler) Validate(w http.ResponseWriter, r *http.Request) {
	_, vr := config.NormalizeAndValidate(h.Cfg)
	writeJSON(w, vr)
}
