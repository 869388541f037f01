// Package directory reads the contacts directory from a spreadsheet: either a Google Sheet, or a local workbook.
package directory

import (
	"context"
	"fmt"
	"github.com/samber/lo"
	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
	"os"
	"time"
)

// DefaultRange is the range of the directory in the spreadsheet: columns B to G (last name, first name, position,
// email, cell phone, home phone), rows 2 to 33.
const DefaultRange = "B2:G33"

// Sheets reads the directory from a Google Sheet.
type Sheets struct {
	service       *sheets.Service
	spreadsheetID string
	readRange     string
	limiter       *rate.Limiter
}

// NewSheetsService creates a Sheets API client, authenticated with the service account key in keyFile.
// Any additional options are passed to the client.
func NewSheetsService(ctx context.Context, keyFile string, opts ...option.ClientOption) (*sheets.Service, error) {
	key, err := os.ReadFile(keyFile)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	cfg, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse key file: %w", err)
	}
	return sheets.NewService(ctx, append([]option.ClientOption{option.WithHTTPClient(cfg.Client(ctx))}, opts...)...)
}

// NewSheets returns a Sheets store that reads readRange from the spreadsheet. If limiter is not nil, each read
// waits for the limiter first.
func NewSheets(service *sheets.Service, spreadsheetID, readRange string, limiter *rate.Limiter) *Sheets {
	return &Sheets{
		service:       service,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
		limiter:       limiter,
	}
}

// Rows returns all rows in the range. Each cell is returned as its formatted value.
func (s *Sheets) Rows(ctx context.Context) ([][]string, error) {
	if err := wait(ctx, s.limiter); err != nil {
		return nil, err
	}
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("values.get: %w", err)
	}
	return lo.Map(resp.Values, func(row []any, _ int) []string {
		return lo.Map(row, func(cell any, _ int) string { return fmt.Sprint(cell) })
	}), nil
}

// NewLimiter returns a limiter that allows readsPerMinute reads per minute, in bursts of up to readsPerMinute.
// Google Sheets allows 60 reads per minute per user by default.
func NewLimiter(readsPerMinute int) *rate.Limiter {
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(readsPerMinute)), readsPerMinute)
}

func wait(ctx context.Context, limiter *rate.Limiter) error {
	if limiter == nil {
		return nil
	}
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	return nil
}
