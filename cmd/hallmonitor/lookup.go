package main

import (
	"context"
	"errors"
	"github.com/clambin/hallmonitor/internal/config"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
	"io"
	"os"
)

func lookup(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("missing NAME")
	}
	cfg, err := config.Load(c.String("env-file"))
	if err != nil {
		return err
	}
	store, err := newStore(c.Context, cfg.Directory)
	if err != nil {
		return err
	}
	dir := contacts.NewDirectory(store, contacts.WithLogger(cfg.Logger(os.Stderr)))
	return printContacts(c.Context, c.App.Writer, dir, c.Args().Slice()...)
}

type directoryLookup interface {
	Lookup(ctx context.Context, name string) (contacts.Row, bool, error)
}

// printContacts writes the directory entry of each name as a table. Entries with a malformed phone number are shown
// as stored.
func printContacts(ctx context.Context, w io.Writer, dir directoryLookup, names ...string) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Query", "Name", "Position", "Email", "Cell phone", "Home phone"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)

	for _, name := range names {
		row, found, err := dir.Lookup(ctx, name)
		if err != nil {
			return err
		}
		if !found {
			table.Append([]string{name, "not found", "", "", "", ""})
			continue
		}
		info, err := contacts.NewContactInfo(name, row)
		if err != nil {
			table.Append([]string{name, row.FirstName + " " + row.LastName, row.Position, row.Email, row.CellPhone, row.HomePhone})
			continue
		}
		table.Append([]string{name, info.Name(), info.Position, info.Email, info.CellPhone, info.HomePhone})
	}
	table.Render()
	return nil
}
