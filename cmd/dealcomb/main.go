package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lysyi3m/deal-comb/app/affiliate"
	"github.com/lysyi3m/deal-comb/app/api"
	"github.com/lysyi3m/deal-comb/app/cfg"
	"github.com/lysyi3m/deal-comb/app/database"
	"github.com/lysyi3m/deal-comb/app/feed"
	"github.com/lysyi3m/deal-comb/app/metrics"
	"github.com/lysyi3m/deal-comb/app/report"
	"github.com/lysyi3m/deal-comb/app/resolver"
	"github.com/lysyi3m/deal-comb/app/scraper"
	"github.com/lysyi3m/deal-comb/app/tasks"
	"github.com/lysyi3m/deal-comb/app/ui"
	"github.com/lysyi3m/deal-comb/app/web"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		if !cfg.Printed(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, appCfg)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, appCfg *cfg.Cfg) int {
	for _, feedURL := range appCfg.FeedURLs {
		if err := feed.ValidateURL(feedURL); err != nil {
			slog.Error("Invalid feed URL", "error", err)
			return 1
		}
	}

	pipeline, closeDB, err := newPipeline(appCfg)
	if err != nil {
		slog.Error("Failed to initialize", "error", err)
		return 1
	}
	defer closeDB()

	switch appCfg.Command {
	case cfg.CommandRun:
		return runPipeline(ctx, appCfg, pipeline)
	case cfg.CommandFeed:
		return runFeed(ctx, appCfg, pipeline)
	case cfg.CommandLink:
		return runLink(ctx, appCfg, pipeline)
	case cfg.CommandServe:
		return runServer(ctx, appCfg, pipeline)
	}

	slog.Error("Unknown command", "command", appCfg.Command)
	return 1
}

func newPipeline(appCfg *cfg.Cfg) (*tasks.Pipeline, func(), error) {
	affiliateCfg, err := affiliate.LoadConfig(appCfg.AffiliateConfig)
	if err != nil {
		return nil, nil, err
	}

	client := web.NewClient(appCfg.Timeout)
	fetcher := web.NewFetcher(client, appCfg.UserAgent)

	pipeline := &tasks.Pipeline{
		Source:    feed.NewSource(fetcher, feed.NewParser()),
		Scraper:   scraper.NewPostScraper(fetcher, scraper.NewExtractor(scraper.DefaultConfig()), scraper.NewContentExtractor()),
		Resolver:  resolver.NewResolver(client, fetcher.UserAgent(), affiliate.NewCleaner(affiliateCfg)),
		Injector:  affiliate.NewInjector(affiliateCfg),
		Affiliate: affiliateCfg,
		Metrics:   metrics.New(),
	}

	if appCfg.DatabaseURL == "" {
		return pipeline, func() {}, nil
	}

	db, err := database.Open(appCfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	version, _, err := database.RunMigrations(db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	slog.Info("Run history enabled", "schema_version", version)

	pipeline.Runs = database.NewRunRepository(db)

	return pipeline, func() { db.Close() }, nil
}

func newWriters(ctx context.Context, appCfg *cfg.Cfg) ([]report.Writer, error) {
	writers := []report.Writer{report.NewFileWriter()}

	if appCfg.S3Bucket == "" {
		return writers, nil
	}

	s3Writer, err := report.NewS3Writer(ctx, report.S3Config{
		Endpoint:        appCfg.S3Endpoint,
		Region:          appCfg.S3Region,
		Bucket:          appCfg.S3Bucket,
		Prefix:          appCfg.S3Prefix,
		AccessKeyID:     appCfg.S3AccessKeyID,
		SecretAccessKey: appCfg.S3SecretAccessKey,
		UsePathStyle:    appCfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, err
	}

	return append(writers, s3Writer), nil
}

func runPipeline(ctx context.Context, appCfg *cfg.Cfg, pipeline *tasks.Pipeline) int {
	writers, err := newWriters(ctx, appCfg)
	if err != nil {
		slog.Error("Failed to configure output", "error", err)
		return 1
	}

	options := tasks.ScrapeOptions{
		MaxPosts: appCfg.MaxPosts,
		Delay:    scraper.DelayFromSeconds(appCfg.Delay),
		NoScrape: appCfg.NoScrape,
	}

	if len(appCfg.FeedURLs) == 1 {
		task := tasks.NewScrapeFeedTask(appCfg.FeedURLs[0], options, pipeline)
		if err := tasks.Run(ctx, task); err != nil {
			slog.Error("Run failed", "feed", task.FeedURL, "error", err)
			return 1
		}

		if err := report.Save(ctx, writers, appCfg.Output, task.Report); err != nil {
			slog.Error("Failed to save report", "output", appCfg.Output, "error", err)
			return 1
		}

		ui.PrintReport(os.Stdout, task.Report)
		return 0
	}

	batch := tasks.ScrapeFeeds(ctx, appCfg.FeedURLs, options, pipeline)

	if err := report.Save(ctx, writers, appCfg.Output, batch); err != nil {
		slog.Error("Failed to save report", "output", appCfg.Output, "error", err)
		return 1
	}

	ui.PrintBatch(os.Stdout, batch)

	if len(batch.Reports) == 0 {
		return 1
	}
	return 0
}

func runFeed(ctx context.Context, appCfg *cfg.Cfg, pipeline *tasks.Pipeline) int {
	writers, err := newWriters(ctx, appCfg)
	if err != nil {
		slog.Error("Failed to configure output", "error", err)
		return 1
	}

	task := tasks.NewConvertFeedTask(appCfg.FeedURLs[0], pipeline.Source)
	if err := tasks.Run(ctx, task); err != nil {
		slog.Error("Feed conversion failed", "feed", task.FeedURL, "error", err)
		return 1
	}

	if err := report.Save(ctx, writers, appCfg.Output, task.Document); err != nil {
		slog.Error("Failed to save feed", "output", appCfg.Output, "error", err)
		return 1
	}

	ui.PrintDocument(os.Stdout, task.Document, appCfg.Output)
	return 0
}

func runLink(ctx context.Context, appCfg *cfg.Cfg, pipeline *tasks.Pipeline) int {
	if err := feed.ValidateURL(appCfg.LinkURL); err != nil {
		slog.Error("Invalid link URL", "error", err)
		return 1
	}

	link := pipeline.NewProcessor().Process(ctx, appCfg.LinkURL)

	data, err := report.Marshal(link)
	if err != nil {
		slog.Error("Failed to encode link", "error", err)
		return 1
	}
	os.Stdout.Write(data)

	ui.PrintLink(os.Stderr, link)
	return 0
}

func runServer(ctx context.Context, appCfg *cfg.Cfg, pipeline *tasks.Pipeline) int {
	if !appCfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	handler := api.NewHandler(pipeline, api.RunDefaults{
		FeedURL:  appCfg.FeedURLs[0],
		MaxPosts: appCfg.MaxPosts,
		Delay:    scraper.DelayFromSeconds(appCfg.Delay),
	})

	httpServer := &http.Server{
		Addr:        ":" + appCfg.Port,
		Handler:     api.NewServer(handler, appCfg.APIAccessKey, pipeline.Metrics.Handler()),
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "version", cfg.GetVersion())

		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	code := 0
	select {
	case <-ctx.Done():
		slog.Info("Received shutdown signal")
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		code = 1
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		return 1
	}

	slog.Info("HTTP server stopped")
	return code
}
