// Package main provides the entry point for the decision engine daemon.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/goleador/internal/config"
	"github.com/yourusername/goleador/internal/database"
	"github.com/yourusername/goleador/internal/feed"
	"github.com/yourusername/goleador/internal/health"
	"github.com/yourusername/goleador/internal/ledger"
	"github.com/yourusername/goleador/internal/logger"
	"github.com/yourusername/goleador/internal/metrics"
	"github.com/yourusername/goleador/internal/rating"
	"github.com/yourusername/goleador/internal/scheduler"
	"github.com/yourusername/goleador/internal/service"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

const minSimilarity = 0.82

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "path to configuration file")
		runOnce    = flag.Bool("once", false, "run one analysis and audit cycle, then exit")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"leagues":     len(cfg.Leagues),
		"version":     Version,
	}).Info("Goleador decision engine starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer func() {
		if err := db.Close(ctx); err != nil {
			appLog.WithError(err).Error("Failed to close database connection")
		}
	}()
	appLog.Info("Database connection established")

	repo := ledger.NewPostgresRepository(db)

	feedLog := log.New(os.Stdout, "feed: ", log.LstdFlags)
	httpClient := feed.NewRateLimitedHTTPClient(feed.HTTPClientConfig{
		Timeout:      feed.DefaultHTTPClientConfig().Timeout,
		MaxRetries:   cfg.Feed.MaxRetries,
		RetryWaitMin: feed.DefaultHTTPClientConfig().RetryWaitMin,
		RetryWaitMax: feed.DefaultHTTPClientConfig().RetryWaitMax,
		RateLimit:    cfg.Feed.RateLimit,
	}, feedLog)
	defer httpClient.Close()

	source := feed.NewCSVSource(cfg.Feed, httpClient, appLog)
	resolver := rating.NewSimilarityResolver(minSimilarity)

	metrics.InitRegistry()

	analysis := service.NewAnalysisService(cfg, source, resolver, repo, appLog, nil)
	audit := service.NewAuditService(repo, service.NewFeedResultSource(source), appLog)

	if *runOnce {
		runSingleCycle(ctx, appLog, analysis, audit)
		return
	}

	healthCfg := health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        cfg.Metrics.Port,
		Logger:      appLog,
		DB:          db,
	}
	if cfg.Metrics.Enabled {
		healthCfg.MetricsPath = cfg.Metrics.Path
		healthCfg.Metrics = metrics.Handler()
	}
	healthServer := health.NewServer(healthCfg)
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	sched := scheduler.NewScheduler(analysis, audit, appLog)
	if err := sched.ScheduleAnalysis(cfg.Schedule.AnalysisCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule analysis cycle")
	}
	if err := sched.ScheduleAudit(cfg.Schedule.AuditCron); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule audit cycle")
	}
	if err := sched.Start(); err != nil {
		appLog.WithError(err).Fatal("Failed to start scheduler")
	}
	healthServer.SetReady(true)

	appLog.WithField("next_run", sched.NextRun()).Info("Engine running")

	<-ctx.Done()
	appLog.Info("Shutdown signal received")

	healthServer.SetReady(false)
	if err := sched.Stop(); err != nil {
		appLog.WithError(err).Error("Failed to stop scheduler")
	}
	appLog.Info("Engine stopped")
}

// runSingleCycle supports one-shot runs for cron-external scheduling
// and smoke tests against a staging database.
func runSingleCycle(ctx context.Context, appLog *logrus.Logger, analysis *service.AnalysisService, audit *service.AuditService) {
	decisions, report, err := analysis.RunCycle(ctx)
	if err != nil {
		appLog.WithError(err).Fatal("Analysis cycle failed")
	}
	appLog.WithFields(logrus.Fields{
		"report":    report.String(),
		"decisions": len(decisions),
	}).Info("Analysis cycle completed")

	auditReport, summary, err := audit.RunCycle(ctx)
	if err != nil {
		appLog.WithError(err).Fatal("Audit cycle failed")
	}
	appLog.WithFields(logrus.Fields{
		"settled": auditReport.Settled,
		"pnl":     summary.String(),
	}).Info("Audit cycle completed")
}
