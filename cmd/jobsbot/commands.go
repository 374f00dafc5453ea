package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"jobsbot/internal/bot"
	"jobsbot/internal/config"
	"jobsbot/internal/domain"
	"jobsbot/internal/httpapi"
)

type loader func() (*app, error)

func newServeCmd(load loader) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fulfillment webhook over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			if port > 0 {
				a.cfg.App.Port = port
			}
			return serve(cmd.Context(), a)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (overrides app.port)")
	return cmd
}

func serve(parent context.Context, a *app) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := net.JoinHostPort("", strconv.Itoa(a.cfg.App.Port))
	handler := httpapi.NewHandler(httpapi.Deps{
		Cfg:      a.cfg,
		Router:   a.router,
		Searcher: a.scraper,
		Log:      a.log.Named("http"),
	})
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infow("listening", "addr", addr, "board", a.cfg.Board.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		a.log.Infow("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func newLambdaCmd(load loader) *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda fulfillment handler",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			defer func() { _ = a.log.Sync() }()
			lambda.Start(lambdaHandler(a.router))
			return nil
		},
	}
}

// lambdaHandler never returns an error: every failure is already folded
// into the reply envelope by the router.
func lambdaHandler(r *bot.Router) func(context.Context, bot.Event) (bot.Response, error) {
	return func(ctx context.Context, ev bot.Event) (bot.Response, error) {
		return r.Handle(ctx, ev), nil
	}
}

func newSearchCmd(load loader) *cobra.Command {
	var campus, keyword string

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Run one search and print the chat reply",
		Example: `  jobsbot search --campus "New Brunswick"
  jobsbot search --campus camden --keyword nurse`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := load()
			if err != nil {
				return err
			}
			msg, err := a.router.Search(cmd.Context(), campus, keyword)
			if msg != "" {
				fmt.Fprintln(cmd.OutOrStdout(), msg)
			}
			if errors.Is(err, domain.ErrUnknownCampus) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&campus, "campus", "", "Campus name (New Brunswick, Newark, Camden); empty searches all")
	cmd.Flags().StringVarP(&keyword, "keyword", "k", "", "Free-text keyword")
	return cmd
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Config file helpers",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init <path>",
		Short: "Write the default config to path if it does not exist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := config.EnsureConfigFile(args[0])
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", args[0])
			}
			return nil
		},
	})
	return cmd
}
