package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/fieldbooks-erp/fieldbooks-erp/internal/app"
	"github.com/fieldbooks-erp/fieldbooks-erp/internal/dashboard"
	dashboardhttp "github.com/fieldbooks-erp/fieldbooks-erp/internal/dashboard/http"
	"github.com/fieldbooks-erp/fieldbooks-erp/internal/platform/db"
	"github.com/fieldbooks-erp/fieldbooks-erp/internal/projects"
)

// projectSummarizer adapts the projects service to the narrower contract
// the dashboard ranker consumes.
type projectSummarizer struct {
	service *projects.Service
}

func (a projectSummarizer) Summarize(ctx context.Context, projectID uuid.UUID) (dashboard.ProjectSummary, error) {
	summary, err := a.service.Summarize(ctx, projectID)
	if err != nil {
		return dashboard.ProjectSummary{}, err
	}
	return dashboard.ProjectSummary{
		PaidTotal:     summary.PaidTotal,
		ExpensesTotal: summary.ExpensesTotal,
		Profit:        summary.Profit,
		ProfitMargin:  summary.ProfitMargin,
	}, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	projectsRepo := projects.NewRepository(dbpool)
	projectsService := projects.NewService(projectsRepo)

	dashboardRepo := dashboard.NewRepository(dbpool)
	dashboardService := dashboard.NewService(dashboardRepo, projectSummarizer{service: projectsService}, logger)
	dashboardHandler := dashboardhttp.NewHandler(logger, dashboardService)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		DashboardHandler: dashboardHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
