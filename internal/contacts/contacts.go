//go:generate go run go.uber.org/mock/mockgen -source=contacts.go -destination=mocks/mock_contacts.go -package=mocks

// Package contacts resolves a Slack user into their entry in the contacts directory.
//
// A lookup runs in two steps: the user's display name is fetched from Slack, and the first word of that name is
// matched against the first-name column of the directory. The outcome is returned as a Result, which the bot renders
// either as a message (card) or as a modal (form).
package contacts

import (
	"context"
	"errors"
	"github.com/slack-go/slack"
)

var (
	// ErrNameUnavailable indicates Slack has no display name for the user.
	ErrNameUnavailable = errors.New("display name unavailable")
	// ErrIdentityTransport indicates the user could not be retrieved from Slack.
	ErrIdentityTransport = errors.New("identity service failed")
	// ErrDirectoryTransport indicates the directory could not be read.
	ErrDirectoryTransport = errors.New("directory unavailable")
	// ErrMalformedPhone indicates a phone number in the directory does not look like a US phone number.
	ErrMalformedPhone = errors.New("malformed phone number")
)

// UserInfoGetter returns a Slack user's profile. slack.Client implements this interface.
type UserInfoGetter interface {
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// A Store returns all rows of the directory's range, in sheet order.  A store returns no rows (and no error)
// if the range holds no data.
type Store interface {
	Rows(ctx context.Context) ([][]string, error)
}
