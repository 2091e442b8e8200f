package controller

import (
	"context"
	"log/slog"

	"github.com/lehigh-university-libraries/idcapture/internal/models"
)

// SlogReporter logs reported failures
type SlogReporter struct{}

func (SlogReporter) Report(ctx context.Context, op string, err error) {
	slog.ErrorContext(ctx, "Operation failed", "op", op, "err", err)
}

// LogPersister only logs the record; there is no backing store
type LogPersister struct{}

func (LogPersister) Save(ctx context.Context, data models.ExtractedData) error {
	slog.InfoContext(ctx, "Saving data",
		"full_name", data.FullName,
		"id_number", data.IDNumber,
		"issue_date", data.IssueDate,
		"address", data.Address)
	return nil
}
