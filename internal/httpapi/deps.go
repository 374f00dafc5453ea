package httpapi

import (
	"go.uber.org/zap"

	"jobsbot/internal/bot"
	"jobsbot/internal/config"
	"jobsbot/internal/scrape/types"
)

type Deps struct {
	Cfg      config.Config
	Router   *bot.Router
	Searcher types.Searcher
	Log      *zap.SugaredLogger
}
