package contacts

import (
	"context"
	"fmt"
	"github.com/samber/lo"
	"log/slog"
	"strings"
	"time"
)

// rowWidth is the number of columns in the directory: last name, first name, position, email, cell phone, home phone.
const rowWidth = 6

// A Row is one entry of the directory. All fields are trimmed. CellPhone and HomePhone may be empty.
type Row struct {
	LastName  string
	FirstName string
	Position  string
	Email     string
	CellPhone string
	HomePhone string
}

func newRow(cells []string) Row {
	cells = lo.Map(cells, func(cell string, _ int) string { return strings.TrimSpace(cell) })
	// stores drop trailing empty cells
	for len(cells) < rowWidth {
		cells = append(cells, "")
	}
	return Row{
		LastName:  cells[0],
		FirstName: cells[1],
		Position:  cells[2],
		Email:     cells[3],
		CellPhone: cells[4],
		HomePhone: cells[5],
	}
}

// A Directory finds people in a Store by their first name.
type Directory struct {
	store   Store
	logger  *slog.Logger
	metrics *Metrics
}

// NewDirectory returns a Directory for the provided Store.
func NewDirectory(store Store, opts ...Option) *Directory {
	o := makeOptions(opts...)
	return &Directory{store: store, logger: o.logger, metrics: o.metrics}
}

// Lookup returns the first row whose first name matches the first word of name. Names are compared case-insensitively.
// The store is read on every call.
//
// If no row matches, or the store holds no data, Lookup returns false and no error. If the store can't be read,
// Lookup returns ErrDirectoryTransport.
func (d *Directory) Lookup(ctx context.Context, name string) (Row, bool, error) {
	key := strings.ToLower(firstToken(name))
	if key == "" {
		return Row{}, false, nil
	}

	start := time.Now()
	rows, err := d.store.Rows(ctx)
	d.metrics.observeFetch(time.Since(start))
	if err != nil {
		return Row{}, false, fmt.Errorf("%w: %w", ErrDirectoryTransport, err)
	}
	if len(rows) == 0 {
		d.metrics.emptyDirectory()
		d.logger.Warn("directory returned no rows")
		return Row{}, false, nil
	}

	match, ok := lo.Find(rows, func(cells []string) bool {
		return len(cells) > 1 && strings.ToLower(strings.TrimSpace(cells[1])) == key
	})
	if !ok {
		d.logger.Debug("no directory entry found", "name", name, "rows", len(rows))
		return Row{}, false, nil
	}
	return newRow(match), true, nil
}

func firstToken(name string) string {
	if fields := strings.Fields(name); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
