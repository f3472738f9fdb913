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
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/export"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	fleetStore "github.com/MrJamesThe3rd/fleetledger/internal/fleet/store"
	fleetHttp "github.com/MrJamesThe3rd/fleetledger/internal/http"
	exportHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/export"
	fleetHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/fleet"
	importHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/importcsv"
	recordsHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/records"
	settingsHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/settings"
	summaryHandler "github.com/MrJamesThe3rd/fleetledger/internal/http/summary"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/fleetledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledgercsv"
	"github.com/MrJamesThe3rd/fleetledger/internal/mailer"
	"github.com/MrJamesThe3rd/fleetledger/internal/monthly"
	"github.com/MrJamesThe3rd/fleetledger/internal/scheduler"
	"github.com/MrJamesThe3rd/fleetledger/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/fleetledger/internal/settings/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/summary"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := run(); err != nil {
		slog.Error("api failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	if err := database.Migrate(cfg.DB.Driver, cfg.ConnectionString()); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	var (
		fleetService    = fleet.NewService(fleetStore.New(db))
		ledgerService   = ledger.NewService(ledgerStore.New(db), fleetService)
		settingsService = settings.NewService(settingsStore.New(db))
		composer        = summary.NewComposer(fleetService, ledgerService, summary.WithLocation(loc))
		mail            = mailer.New(settingsService, mailer.NewSMTPTransport(), cfg.Summary.MailTimeout)
		archive         = export.NewArchive(cfg.Export.Dir)
		job             = monthly.NewJob(composer, fleetService, ledgerService, settingsService, archive, mail)
	)

	slog.Info("monthly archive directory", "dir", archive.Dir())

	var (
		fleetH    = fleetHandler.NewHandler(fleetService)
		recordsH  = recordsHandler.NewHandler(ledgerService, fleetService)
		importH   = importHandler.NewHandler(ledgercsv.NewImporter(fleetService, ledgerService))
		exportH   = exportHandler.NewHandler(ledgerService, fleetService)
		summaryH  = summaryHandler.NewHandler(composer, job)
		settingsH = settingsHandler.NewHandler(settingsService)
	)

	router := fleetHttp.New(fleetHttp.Options{
		JWTSecret:      cfg.Auth.JWTSecret,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, fleetH, recordsH, importH, exportH, summaryH, settingsH)

	if cfg.Summary.SchedulerEnabled {
		sched, err := scheduler.New(job, scheduler.Config{
			Schedule:   cfg.Summary.Schedule,
			Location:   loc,
			JobTimeout: cfg.Summary.JobTimeout,
		})
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}

		sched.Start()

		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Summary.JobTimeout)
			defer cancel()

			if err := sched.Stop(ctx); err != nil {
				slog.Error("failed to stop scheduler", "error", err)
			}
		}()
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	go func() {
		slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr, "db_driver", cfg.DB.Driver)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	return nil
}
