package contacts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Outcome is the result of a contact lookup.
type Outcome int

const (
	// IdentityUnavailable means the user's contact info could not be determined: Slack didn't return a display name,
	// the directory could not be read, or the user's directory entry is malformed. Result.Err holds the reason.
	IdentityUnavailable Outcome = iota
	// NotInDirectory means the user has a display name, but the directory has no matching entry.
	NotInDirectory
	// Found means the user's directory entry was found.
	Found
)

func (o Outcome) String() string {
	switch o {
	case IdentityUnavailable:
		return "identity_unavailable"
	case NotInDirectory:
		return "not_in_directory"
	case Found:
		return "found"
	default:
		return "unknown"
	}
}

// ContactInfo holds the contact details of a person found in the directory. Phone numbers are formatted.
type ContactInfo struct {
	DisplayName string
	FirstName   string
	LastName    string
	Position    string
	Email       string
	CellPhone   string
	HomePhone   string
}

// NewContactInfo builds the ContactInfo for a directory row. Empty phone numbers are left empty. NewContactInfo
// returns ErrMalformedPhone if a non-empty phone number can't be formatted.
func NewContactInfo(displayName string, row Row) (ContactInfo, error) {
	info := ContactInfo{
		DisplayName: displayName,
		FirstName:   row.FirstName,
		LastName:    row.LastName,
		Position:    row.Position,
		Email:       row.Email,
	}
	var err error
	if row.CellPhone != "" {
		if info.CellPhone, err = FormatPhone(row.CellPhone); err != nil {
			return ContactInfo{}, fmt.Errorf("cell phone: %w", err)
		}
	}
	if row.HomePhone != "" {
		if info.HomePhone, err = FormatPhone(row.HomePhone); err != nil {
			return ContactInfo{}, fmt.Errorf("home phone: %w", err)
		}
	}
	return info, nil
}

// Name returns the capitalized first and last name.
func (c ContactInfo) Name() string {
	return Capitalize(c.FirstName) + " " + Capitalize(c.LastName)
}

// A Field is a labelled contact detail.
type Field struct {
	Title string
	Value string
}

// Fields returns the contact details to display: the email address, followed by the cell phone and home phone
// numbers, if present.
func (c ContactInfo) Fields() []Field {
	fields := []Field{{Title: "Email", Value: c.Email}}
	if c.CellPhone != "" {
		fields = append(fields, Field{Title: "Cell phone", Value: c.CellPhone})
	}
	if c.HomePhone != "" {
		fields = append(fields, Field{Title: "Home phone", Value: c.HomePhone})
	}
	return fields
}

// Result is the outcome of a Pipeline lookup.
type Result struct {
	Outcome Outcome
	// Handle is the Slack user ID that was looked up.
	Handle string
	// DisplayName is set for NotInDirectory and Found, and for IdentityUnavailable caused by the directory.
	DisplayName string
	// Contact is only set for Found.
	Contact ContactInfo
	// Err is only set for IdentityUnavailable.
	Err error
}

// A Pipeline looks up the contact info of a Slack user.
type Pipeline struct {
	resolver  *Resolver
	directory *Directory
	logger    *slog.Logger
	metrics   *Metrics
}

// NewPipeline returns a Pipeline that resolves users with users and finds them in store.
func NewPipeline(users UserInfoGetter, store Store, opts ...Option) *Pipeline {
	o := makeOptions(opts...)
	return &Pipeline{
		resolver:  NewResolver(users),
		directory: NewDirectory(store, opts...),
		logger:    o.logger,
		metrics:   o.metrics,
	}
}

// Lookup returns the contact info of the Slack user with the provided handle. Lookup never fails: all errors are
// reported as an IdentityUnavailable Result.
//
// The directory is only read if Slack returned the user's display name.
func (p *Pipeline) Lookup(ctx context.Context, handle string) Result {
	result := p.lookup(ctx, handle)
	p.metrics.observeLookup(outcomeLabel(result))
	return result
}

func (p *Pipeline) lookup(ctx context.Context, handle string) Result {
	result := Result{Outcome: IdentityUnavailable, Handle: handle}

	name, err := p.resolver.Resolve(ctx, handle)
	if err != nil {
		p.logger.Warn("failed to resolve user", "handle", handle, "err", err)
		result.Err = err
		return result
	}
	result.DisplayName = name

	row, ok, err := p.directory.Lookup(ctx, name)
	if err != nil {
		p.logger.Error("failed to read directory", "handle", handle, "err", err)
		result.Err = err
		return result
	}
	if !ok {
		result.Outcome = NotInDirectory
		return result
	}

	if result.Contact, err = NewContactInfo(name, row); err != nil {
		// data entry problem in the spreadsheet: someone needs to fix it
		p.logger.Error("malformed directory entry", "handle", handle, "name", name, "err", err)
		result.Err = err
		return result
	}
	result.Outcome = Found
	return result
}

func outcomeLabel(r Result) string {
	switch {
	case errors.Is(r.Err, ErrDirectoryTransport):
		return "directory_error"
	case errors.Is(r.Err, ErrMalformedPhone):
		return "malformed_entry"
	default:
		return r.Outcome.String()
	}
}
