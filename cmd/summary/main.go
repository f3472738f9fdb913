// Command summary runs the monthly summary job once and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/fleetledger/internal/config"
	"github.com/MrJamesThe3rd/fleetledger/internal/database"
	"github.com/MrJamesThe3rd/fleetledger/internal/export"
	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	fleetStore "github.com/MrJamesThe3rd/fleetledger/internal/fleet/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/fleetledger/internal/ledger/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/mailer"
	"github.com/MrJamesThe3rd/fleetledger/internal/monthly"
	"github.com/MrJamesThe3rd/fleetledger/internal/settings"
	settingsStore "github.com/MrJamesThe3rd/fleetledger/internal/settings/store"
	"github.com/MrJamesThe3rd/fleetledger/internal/summary"
)

func main() {
	month := flag.String("month", "", "month to summarize (defaults to the previous month)")
	flag.Parse()

	res, err := run(*month)
	if err != nil {
		slog.Error("summary failed", "error", err)
		os.Exit(1)
	}

	if !res.Sent {
		fmt.Fprintf(os.Stderr, "summary for %s not sent: %s\n", res.Month, res.Reason)
		os.Exit(2)
	}

	fmt.Printf("summary for %s sent (archive: %s)\n", res.Month, res.ArchivePath)
}

func run(month string) (monthly.Result, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return monthly.Result{}, fmt.Errorf("loading config: %w", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return monthly.Result{}, err
	}

	if err := database.Migrate(cfg.DB.Driver, cfg.ConnectionString()); err != nil {
		return monthly.Result{}, fmt.Errorf("migrating database: %w", err)
	}

	db, err := database.New(cfg.DB.Driver, cfg.ConnectionString())
	if err != nil {
		return monthly.Result{}, fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	fleetService := fleet.NewService(fleetStore.New(db))
	ledgerService := ledger.NewService(ledgerStore.New(db), fleetService)
	settingsService := settings.NewService(settingsStore.New(db))

	job := monthly.NewJob(
		summary.NewComposer(fleetService, ledgerService, summary.WithLocation(loc)),
		fleetService,
		ledgerService,
		settingsService,
		export.NewArchive(cfg.Export.Dir),
		mailer.New(settingsService, mailer.NewSMTPTransport(), cfg.Summary.MailTimeout),
	)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Summary.JobTimeout)
	defer cancel()

	return job.Run(ctx, month), nil
}
