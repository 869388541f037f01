package main

import (
	"errors"
	"fmt"
	"github.com/clambin/hallmonitor"
	"github.com/clambin/hallmonitor/internal/config"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/clambin/hallmonitor/internal/health"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/slack-go/slack"
	"github.com/urfave/cli/v2"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "hallmonitor",
		Usage: "Slack bot that looks up contact info in the contacts spreadsheet",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Value: ".env",
				Usage: "load environment variables from `FILE`, if it exists",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "connect to Slack and answer commands",
				Action: run,
			},
			{
				Name:      "lookup",
				Usage:     "look up people in the contacts spreadsheet",
				ArgsUsage: "NAME...",
				Action:    lookup,
			},
		},
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	if err = cfg.Slack.Validate(); err != nil {
		return fmt.Errorf("invalid slack configuration: %w", err)
	}
	logger := cfg.Logger(os.Stderr)

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store, err := newStore(ctx, cfg.Directory)
	if err != nil {
		return err
	}

	metrics := contacts.NewMetrics("hallmonitor", "")
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		metrics,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	client := slack.New(cfg.Slack.BotToken, slack.OptionAppLevelToken(cfg.Slack.AppToken))
	pipeline := contacts.NewPipeline(client, store,
		contacts.WithLogger(logger.With("component", "contacts")),
		contacts.WithMetrics(metrics),
	)
	bot := hallmonitor.NewBot(client, pipeline,
		hallmonitor.WithLogger(logger.With("component", "bot")),
		hallmonitor.WithReviewers(cfg.Reviewers...),
		hallmonitor.WithFallbackContact(cfg.FallbackContact),
		hallmonitor.WithSourceURL(cfg.SourceURL),
		hallmonitor.WithRequestTimeout(cfg.RequestTimeout),
	)

	logger.Info("starting hallmonitor", "backend", cfg.Directory.Backend, "addr", cfg.Addr)
	errCh := make(chan error, 2)
	go func() {
		errCh <- health.Serve(ctx, cfg.Addr, health.NewRouter(bot, registry), logger.With("component", "health"))
	}()
	go func() { errCh <- bot.Run(ctx) }()

	// whichever stops first takes the other one down
	err = <-errCh
	cancel()
	return errors.Join(err, <-errCh)
}
