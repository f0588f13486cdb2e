// internal/storage/archive/report.go
package archive

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/condorlabs/condor/internal/backtest"
)

// ReportArchiver writes finished runs to cold storage as JSON documents,
// trade ledger included. Archival is best-effort alongside the hot store:
// callers decide whether a failed archive fails the run.
type ReportArchiver struct {
	storage Storage
	logger  *zap.Logger
}

// NewReportArchiver creates an archiver on top of a storage backend.
func NewReportArchiver(storage Storage, logger *zap.Logger) *ReportArchiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportArchiver{storage: storage, logger: logger}
}

// ReportPath returns the archive path for a run.
func ReportPath(underlying, id string) string {
	return fmt.Sprintf("runs/%s/%s.json", underlying, id)
}

// Archive stores one finished run.
func (a *ReportArchiver) Archive(ctx context.Context, result *backtest.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}

	path := ReportPath(result.Underlying, result.ID)
	if err := a.storage.Write(ctx, path, data); err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}

	a.logger.Debug("run archived",
		zap.String("id", result.ID),
		zap.String("path", path),
	)
	return nil
}

// Load reads an archived run back.
func (a *ReportArchiver) Load(ctx context.Context, underlying, id string) (*backtest.Result, error) {
	data, err := a.storage.Read(ctx, ReportPath(underlying, id))
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}

	var result backtest.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decoding report: %w", err)
	}
	return &result, nil
}

// ListRuns returns the archived run paths for an underlying.
func (a *ReportArchiver) ListRuns(ctx context.Context, underlying string) ([]string, error) {
	return a.storage.List(ctx, "runs/"+underlying)
}
