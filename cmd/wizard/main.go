package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cmlabs-hris/employee-wizard-go/internal/config"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/lookup"
	"github.com/cmlabs-hris/employee-wizard-go/internal/domain/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/notify"
	"github.com/cmlabs-hris/employee-wizard-go/internal/pkg/resource"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository"
	"github.com/cmlabs-hris/employee-wizard-go/internal/repository/memory"
	draftService "github.com/cmlabs-hris/employee-wizard-go/internal/service/draft"
	employeeService "github.com/cmlabs-hris/employee-wizard-go/internal/service/employee"
	lookupService "github.com/cmlabs-hris/employee-wizard-go/internal/service/lookup"
	wizardService "github.com/cmlabs-hris/employee-wizard-go/internal/service/wizard"
	"github.com/cmlabs-hris/employee-wizard-go/internal/tui"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "wizard",
		Usage: "Add employees from the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Usage: "Role hint, \"ops\" selects the detail-only wizard"},
			&cli.BoolFlag{Name: "local-lookups", Usage: "Search the built-in department and location catalogs"},
		},
		Commands: []*cli.Command{
			clearDraftCmd(),
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	role := resolveRole(cmd, cfg)

	drafts, closeDrafts, err := repository.OpenDraftStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening draft store: %w", err)
	}
	defer closeDrafts()

	basicInfoClient := resource.NewClient(cfg.Resources.BasicInfoURL, cfg.Resources.Timeout)
	detailsClient := resource.NewClient(cfg.Resources.DetailsURL, cfg.Resources.Timeout)
	basicInfoResource := resource.NewBasicInfoResource(basicInfoClient)
	detailResource := resource.NewDetailResource(detailsClient)

	var departments, locations lookup.Source
	if cmd.Bool("local-lookups") || cfg.Resources.LookupSource == config.LookupSourceLocal {
		departments = memory.NewCatalog(memory.DefaultDepartments())
		locations = memory.NewCatalog(memory.DefaultLocations())
	} else {
		departments = resource.NewDepartmentSource(basicInfoClient)
		locations = resource.NewLocationSource(detailsClient)
	}

	events := tui.NewEvents()
	center := notify.NewCenter(nil, cfg.Wizard.ToastDuration)
	defer center.Close()
	center.OnChange(events.Refresh)
	overlay := notify.NewOverlay()

	form := wizardService.NewForm(role)
	persister := draftService.NewPersister[wizard.FormValues](drafts, form, string(role),
		draftService.WithPrefix(cfg.Draft.Prefix),
		draftService.WithDebounce(cfg.Draft.Debounce),
	)
	controller := wizardService.NewController(wizardService.ControllerConfig{
		Form:          form,
		Persister:     persister,
		Submitter:     wizardService.NewSubmitter(basicInfoResource, detailResource, nil, cfg.Wizard.SubmitDelay),
		Overlay:       overlay,
		Sink:          center,
		Navigator:     events,
		ToastDuration: cfg.Wizard.ToastDuration,
	})
	defer controller.Close()

	model := tui.New(tui.Deps{
		Controller: controller,
		Employees:  employeeService.NewEmployeeService(basicInfoResource, detailResource),
		Lookups:    lookupService.NewLookupService(departments, locations, center),
		Center:     center,
		Overlay:    overlay,
		Events:     events,
	})
	defer model.Close()

	slog.Info("Starting wizard", "role", role, "draft_backend", cfg.Draft.Backend, "draft_key", persister.Key())
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	controller.Flush(context.Background())
	return nil
}

func clearDraftCmd() *cli.Command {
	return &cli.Command{
		Name:  "clear-draft",
		Usage: "Delete the saved draft for a role",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "role", Usage: "Role hint, \"ops\" selects the detail-only wizard"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			drafts, closeDrafts, err := repository.OpenDraftStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("opening draft store: %w", err)
			}
			defer closeDrafts()

			key := draftService.Key(cfg.Draft.Prefix, string(resolveRole(cmd, cfg)))
			if err := drafts.Delete(ctx, key); err != nil {
				return fmt.Errorf("deleting draft %s: %w", key, err)
			}
			fmt.Printf("Deleted draft %s\n", key)
			return nil
		},
	}
}

// resolveRole prefers --role over ROLE_HINT.
func resolveRole(cmd *cli.Command, cfg *config.Config) wizard.RoleType {
	hint := cmd.String("role")
	if hint == "" {
		hint = cfg.App.RoleHint
	}
	return wizard.ResolveRole(hint)
}
