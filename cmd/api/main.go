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

	"github.com/cmlabs-hris/employee-wizard-go/internal/config"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/draft"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	appHTTP "github.com/cmlabs-hris/employee-wizard-go/internal/handler/http"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/cron"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/resource"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/sse"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/memory"
	employeeService "github.com/cmlabs-hris/employee-wizard-go/internal/service/employee"
	lookupService "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
	wizardService "github.com/cmlabs-hris/employee-wizard-go/internal/service/wizard"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.SlogLevel(), "employee-wizard-api", version, cfg.App.Env)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	drafts, closeDrafts, err := repository.OpenDraftStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize draft store", "backend", cfg.Draft.Backend, "error", err)
		os.Exit(1)
	}
	defer closeDrafts()

	scheduler := cron.NewScheduler(nil)
	if purger, ok := drafts.(draft.Purger); ok && cfg.Draft.TTL > 0 {
		cron.NewDraftJobs(purger, cfg.Draft.TTL, nil).RegisterJobs(scheduler)
	}
	scheduler.Start()
	defer scheduler.Stop()

	basicInfoClient := resource.NewClient(cfg.Resources.BasicInfoURL, cfg.Resources.Timeout)
	detailsClient := resource.NewClient(cfg.Resources.DetailsURL, cfg.Resources.Timeout)
	basicInfoResource := resource.NewBasicInfoResource(basicInfoClient)
	detailResource := resource.NewDetailResource(detailsClient)

	var departments, locations lookup.Source
	switch cfg.Resources.LookupSource {
	case config.LookupSourceLocal:
		departments = memory.NewCatalog(memory.DefaultDepartments())
		locations = memory.NewCatalog(memory.DefaultLocations())
	default:
		departments = resource.NewDepartmentSource(basicInfoClient)
		locations = resource.NewLocationSource(detailsClient)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()
	lookupSvc := lookupService.NewLookupService(departments, locations, notify.Multi{notify.LogSink{Logger: logger}, hub})
	employeeSvc := employeeService.NewEmployeeService(basicInfoResource, detailResource)
	submitter := wizardService.NewSubmitter(basicInfoResource, detailResource, nil, cfg.Wizard.SubmitDelay)
	wizardSvc := wizardService.NewWizardService(submitter, drafts, cfg.Draft.Prefix, employeeSvc, lookupSvc)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	lookupHandler := appHTTP.NewLookupHandler(lookupSvc)
	wizardHandler := appHTTP.NewWizardHandler(wizardSvc, hub, cfg.Wizard.ToastDuration)
	notificationHandler := appHTTP.NewNotificationHandler(hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Logger:         logger,
			AllowedOrigins: cfg.App.AllowedOrigins,
			DefaultRole:    wizard.ResolveRole(cfg.App.RoleHint),
		},
		JWTService,
		employeeHandler,
		lookupHandler,
		wizardHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", "http://localhost"+server.Addr, "draft_backend", cfg.Draft.Backend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
	slog.Info("Server stopped")
}
