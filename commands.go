package hallmonitor

import (
	"context"
	"github.com/slack-go/slack"
	"log/slog"
	"slices"
	"strings"
)

// A Request holds the invocation of a command: who sent it, where, and its arguments.
//
// TriggerID is only set for slash commands. Slack needs it to open a modal.
// Logger, if set, carries the request's correlation ID.
type Request struct {
	UserID    string
	ChannelID string
	TriggerID string
	Args      []string
	Logger    *slog.Logger
}

func (r Request) logger(fallback *slog.Logger) *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return fallback
}

// A Handler executes a command and returns messages to be posted to Slack. A handler that has nothing to post
// returns nil.
type Handler interface {
	Handle(context.Context, Request) []slack.MsgOption
}

// HandlerFunc is an adapter that allows a function to be used as a Handler
type HandlerFunc func(context.Context, Request) []slack.MsgOption

// Handle calls f(ctx, req)
func (f HandlerFunc) Handle(ctx context.Context, req Request) []slack.MsgOption {
	return f(ctx, req)
}

var _ Handler = Commands{}

// Commands is a map of verb/Handler pairs.
//
// Note that Commands itself implements the Handler interface. This allows nested command structures to be built:
//
//	Commands
//	"foo"    -> handler
//	"bar"    -> Commands
//	            "snafu"    -> handler
//
// This creates the commands "foo" and "bar snafu"
type Commands map[string]Handler

// Handle passes the request to the handler registered for its first argument, with that argument removed.
func (c Commands) Handle(ctx context.Context, req Request) []slack.MsgOption {
	if cmd, params := split(req.Args...); cmd != "" {
		if subCommand, ok := c[cmd]; ok {
			req.Args = params
			return subCommand.Handle(ctx, req)
		}
	}

	return []slack.MsgOption{slack.MsgOptionAttachments(slack.Attachment{
		Color: "bad",
		Title: "invalid command",
		Text:  "supported commands: " + strings.Join(c.GetCommands(), ", "),
	})}
}

func split(args ...string) (string, []string) {
	if len(args) == 0 {
		return "", nil
	}
	if len(args) == 1 {
		return args[0], nil
	}
	return args[0], args[1:]
}

// GetCommands returns a sorted list of all supported commands.
func (c Commands) GetCommands() []string {
	commands := make([]string, 0, len(c))
	for verb := range c {
		commands = append(commands, verb)
	}
	slices.Sort(commands)
	return commands
}

// Add adds one or more commands.
func (c Commands) Add(commands Commands) {
	for verb, handler := range commands {
		c[verb] = handler
	}
}
