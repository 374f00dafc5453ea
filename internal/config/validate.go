package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	MinTimeoutSeconds = 10
	MaxTimeoutSeconds = 15
	MaxResultsCap     = 5
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.Newf("config validation failed:\n- %s", strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a trimmed copy of cfg with blank strings
// replaced by defaults, plus the validation result.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	def := Defaults()
	var res Validation

	orDefault := func(s, d string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return d
		}
		return s
	}

	out.App.LogLevel = strings.ToLower(orDefault(out.App.LogLevel, def.App.LogLevel))
	out.Board.BaseURL = strings.TrimRight(orDefault(out.Board.BaseURL, def.Board.BaseURL), "/")
	out.Board.SearchPath = orDefault(out.Board.SearchPath, def.Board.SearchPath)
	out.Board.UserAgent = orDefault(out.Board.UserAgent, def.Board.UserAgent)
	out.Bot.SearchIntent = orDefault(out.Bot.SearchIntent, def.Bot.SearchIntent)
	out.Bot.GreetingIntent = orDefault(out.Bot.GreetingIntent, def.Bot.GreetingIntent)
	out.Bot.GoodbyeIntent = orDefault(out.Bot.GoodbyeIntent, def.Bot.GoodbyeIntent)

	if !strings.HasPrefix(out.Board.SearchPath, "/") {
		out.Board.SearchPath = "/" + out.Board.SearchPath
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}

	switch out.App.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		res.addErr("app.log_level must be one of debug, info, warn, error (got %q)", out.App.LogLevel)
	}

	if u, err := url.Parse(out.Board.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("board.base_url must be an absolute http(s) URL (got %q)", out.Board.BaseURL)
	} else if u.Scheme == "http" {
		res.addWarn("board.base_url uses plain http: %q", out.Board.BaseURL)
	}

	if out.Board.TimeoutSeconds < MinTimeoutSeconds || out.Board.TimeoutSeconds > MaxTimeoutSeconds {
		res.addErr("board.timeout_seconds must be %d..%d", MinTimeoutSeconds, MaxTimeoutSeconds)
	}

	if out.Board.MaxResults < 1 || out.Board.MaxResults > MaxResultsCap {
		res.addErr("board.max_results must be 1..%d", MaxResultsCap)
	}

	if !strings.Contains(out.Board.UserAgent, "Mozilla/") {
		res.addWarn("board.user_agent does not look like a browser; the job board may reject the request")
	}

	intents := map[string]string{}
	for name, v := range map[string]string{
		"bot.search_intent":   out.Bot.SearchIntent,
		"bot.greeting_intent": out.Bot.GreetingIntent,
		"bot.goodbye_intent":  out.Bot.GoodbyeIntent,
	} {
		if prev, ok := intents[v]; ok {
			res.addErr("%s and %s share intent name %q", prev, name, v)
		}
		intents[v] = name
	}

	return out, res
}
