// Package monthly runs the month-end summary: compose, archive, render, mail.
package monthly

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/fleetledger/internal/fleet"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledger"
	"github.com/MrJamesThe3rd/fleetledger/internal/ledgercsv"
	"github.com/MrJamesThe3rd/fleetledger/internal/mailer"
	"github.com/MrJamesThe3rd/fleetledger/internal/report"
	"github.com/MrJamesThe3rd/fleetledger/internal/settings"
	"github.com/MrJamesThe3rd/fleetledger/internal/summary"
)

const reasonNoRecipients = "EMAIL_TO not set"

type Composer interface {
	Compose(ctx context.Context, month string) (*summary.Summary, error)
}

type Catalog interface {
	ListVehicles(ctx context.Context) ([]*fleet.Vehicle, error)
	Directory(ctx context.Context) (*fleet.Directory, error)
}

type Records interface {
	List(ctx context.Context, filter ledger.Filter) ([]*ledger.Record, error)
}

type Settings interface {
	Get(ctx context.Context, key string) (string, error)
}

type Archiver interface {
	Save(name string, data []byte) (string, error)
}

//go:generate mockgen -source=job.go -destination=sender_mock.go -package=monthly -exclude_interfaces=Composer,Catalog,Records,Settings,Archiver
type Sender interface {
	Send(ctx context.Context, msg mailer.Message) mailer.Result
}

// Result is the outcome of one run. ArchivePath is empty when the CSV
// archive could not be written.
type Result struct {
	Month       string `json:"month"`
	Sent        bool   `json:"sent"`
	Reason      string `json:"reason"`
	ArchivePath string `json:"archive_path,omitempty"`
}

type Job struct {
	composer Composer
	catalog  Catalog
	records  Records
	settings Settings
	archive  Archiver
	sender   Sender
}

func NewJob(composer Composer, catalog Catalog, records Records, settings Settings, archive Archiver, sender Sender) *Job {
	return &Job{
		composer: composer,
		catalog:  catalog,
		records:  records,
		settings: settings,
		archive:  archive,
		sender:   sender,
	}
}

// Run sends the summary of month, or of the previous month when month is
// blank. Failures are reported in the Result, never returned or raised.
func (j *Job) Run(ctx context.Context, month string) Result {
	s, err := j.composer.Compose(ctx, month)
	if err != nil {
		slog.ErrorContext(ctx, "failed to compose summary", "month", month, "error", err)
		return Result{Month: strings.TrimSpace(month), Reason: err.Error()}
	}

	res := Result{Month: s.Month}

	to, err := j.settings.Get(ctx, settings.KeyEmailTo)
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	if strings.TrimSpace(to) == "" {
		res.Reason = reasonNoRecipients
		return res
	}

	records, err := j.records.List(ctx, ledger.Filter{ExactMonth: s.Month})
	if err != nil {
		res.Reason = fmt.Errorf("listing records: %w", err).Error()
		return res
	}

	vehicles, err := j.catalog.ListVehicles(ctx)
	if err != nil {
		res.Reason = fmt.Errorf("listing vehicles: %w", err).Error()
		return res
	}

	dir, err := j.catalog.Directory(ctx)
	if err != nil {
		res.Reason = fmt.Errorf("loading names: %w", err).Error()
		return res
	}

	res.ArchivePath = j.archiveCSV(ctx, s.Month, records, dir)

	pdf, err := report.Render(report.CombinedMonthly(s.Month, vehicles, records, dir))
	if err != nil {
		res.Reason = err.Error()
		return res
	}

	sent := j.sender.Send(ctx, mailer.Message{
		To:      mailer.ParseRecipients(to),
		Subject: "Fleet Monthly Summary - " + s.Month,
		Body:    s.Body,
		Attachments: []mailer.Attachment{{
			Filename:    report.MonthlyFilename(s.Month),
			ContentType: report.ContentType,
			Data:        pdf,
		}},
	})

	res.Sent = sent.Sent
	res.Reason = sent.Reason

	slog.InfoContext(ctx, "monthly summary finished", "month", s.Month, "sent", res.Sent, "reason", res.Reason)

	return res
}

// archiveCSV keeps a copy of the month's records on disk. It is never
// mailed and a failure does not stop the run.
func (j *Job) archiveCSV(ctx context.Context, month string, records []*ledger.Record, dir *fleet.Directory) string {
	data, err := ledgercsv.ExportBytes(records, dir)
	if err != nil {
		slog.WarnContext(ctx, "failed to encode monthly archive", "month", month, "error", err)
		return ""
	}

	path, err := j.archive.Save(ledgercsv.MonthlyFilename(month), data)
	if err != nil {
		slog.WarnContext(ctx, "failed to write monthly archive", "month", month, "error", err)
		return ""
	}

	return path
}
