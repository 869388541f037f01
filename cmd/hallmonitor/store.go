package main

import (
	"context"
	"fmt"
	"github.com/clambin/hallmonitor/internal/config"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/clambin/hallmonitor/internal/directory"
)

func newStore(ctx context.Context, cfg config.Directory) (contacts.Store, error) {
	switch cfg.Backend {
	case "xlsx":
		return directory.NewWorkbook(cfg.XLSXPath, cfg.XLSXSheet, cfg.Range), nil
	case "sheets":
		service, err := directory.NewSheetsService(ctx, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("sheets: %w", err)
		}
		return directory.NewSheets(service, cfg.SpreadsheetID, cfg.Range, directory.NewLimiter(cfg.ReadsPerMinute)), nil
	default:
		return nil, fmt.Errorf("unsupported directory backend: %q", cfg.Backend)
	}
}
