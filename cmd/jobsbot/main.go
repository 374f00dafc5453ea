package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"jobsbot/internal/bot"
	"jobsbot/internal/config"
	"jobsbot/internal/logging"
	"jobsbot/internal/scrape/rutgers"
)

type app struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	scraper *rutgers.Scraper
	router  *bot.Router
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	var dev bool

	root := &cobra.Command{
		Use:           "jobsbot",
		Short:         "Rutgers job openings chat bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", os.Getenv("JOBSBOT_CONFIG"), "Path to YAML config (optional)")
	root.PersistentFlags().BoolVar(&dev, "dev", false, "Human-readable console logs")

	load := func() (*app, error) {
		return newApp(cfgPath, dev)
	}

	root.AddCommand(
		newServeCmd(load),
		newLambdaCmd(load),
		newSearchCmd(load),
		newConfigCmd(),
	)
	return root
}

func newApp(cfgPath string, dev bool) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.App.LogLevel, dev)
	if err != nil {
		return nil, err
	}
	scraper := rutgers.New(cfg.Board.Scraper(), log.Named("rutgers"))
	return &app{
		cfg:     cfg,
		log:     log,
		scraper: scraper,
		router:  bot.NewRouter(cfg, scraper, log.Named("bot")),
	}, nil
}
