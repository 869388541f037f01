package contacts

import (
	"context"
	"errors"
	"fmt"
	"github.com/slack-go/slack"
)

// Slack errors that mean the user has no usable profile, rather than that Slack could not be reached.
var unknownUserErrors = map[string]struct{}{
	"user_not_found":   {},
	"user_not_visible": {},
	"account_inactive": {},
}

// A Resolver returns the display name of a Slack user.
type Resolver struct {
	users UserInfoGetter
}

// NewResolver returns a Resolver that looks up users with the provided UserInfoGetter.
func NewResolver(users UserInfoGetter) *Resolver {
	return &Resolver{users: users}
}

// Resolve returns the user's real name, as stored in Slack.
//
// Resolve returns ErrNameUnavailable if Slack doesn't know the user, or the user has no real name.
// Any other failure is returned as ErrIdentityTransport. Failures are not retried.
func (r *Resolver) Resolve(ctx context.Context, handle string) (string, error) {
	user, err := r.users.GetUserInfoContext(ctx, handle)
	if err != nil {
		var slackErr slack.SlackErrorResponse
		if errors.As(err, &slackErr) {
			if _, ok := unknownUserErrors[slackErr.Err]; ok {
				return "", fmt.Errorf("%w: %s", ErrNameUnavailable, slackErr.Err)
			}
		}
		return "", fmt.Errorf("%w: %w", ErrIdentityTransport, err)
	}
	if user == nil || user.RealName == "" {
		return "", ErrNameUnavailable
	}
	return user.RealName, nil
}
