package hallmonitor

import (
	"context"
	"fmt"
	"github.com/clambin/hallmonitor/internal/blocks"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/google/uuid"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"
)

const (
	defaultRequestTimeout = 10 * time.Second
	directMessageChannel  = "im"
)

// ContactLookup returns the contact info of a Slack user. It never fails: errors are reported in the Result.
type ContactLookup interface {
	Lookup(ctx context.Context, handle string) contacts.Result
}

// A Bot answers contact info commands and interactions, and relays submitted feedback to the reviewers.
type Bot struct {
	*SlackApp
	Commands
	lookup          ContactLookup
	logger          *slog.Logger
	reviewers       []string
	fallbackContact string
	sourceURL       string
	requestTimeout  time.Duration
	wg              sync.WaitGroup
}

// NewBot returns a Bot that looks up contact info through lookup.
func NewBot(client *slack.Client, lookup ContactLookup, options ...BotOptionFunc) *Bot {
	b := makeBot(lookup, options...)
	b.attach(NewSlackApp(client, b.logger.With("component", "slackapp")))
	return b
}

func newBotWith(c *slack.Client, h socketModeHandler, lookup ContactLookup, options ...BotOptionFunc) *Bot {
	b := makeBot(lookup, options...)
	b.attach(newSlackAppWithSocketModeHandler(socketmode.New(c), h, b.logger.With("component", "slackapp")))
	return b
}

func makeBot(lookup ContactLookup, options ...BotOptionFunc) *Bot {
	b := &Bot{
		Commands:       make(Commands),
		lookup:         lookup,
		logger:         slog.Default(),
		requestTimeout: defaultRequestTimeout,
	}
	b.Commands.Add(Commands{
		"info":            HandlerFunc(b.info),
		"help":            HandlerFunc(b.help),
		"submit-feedback": HandlerFunc(b.submitFeedback),
	})
	for _, o := range options {
		o(b)
	}
	return b
}

func (b *Bot) attach(app *SlackApp) {
	b.SlackApp = app
	app.RespondToView(blocks.FeedbackCallbackID, respondToFeedback)
}

// Run connects to Slack and handles incoming commands and interactions until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	botUserID, err := b.userID(ctx)
	if err != nil {
		return err
	}

	b.logger.Debug("starting Bot")
	defer b.logger.Debug("shutting down Bot")
	defer b.wg.Wait()
	errCh := make(chan error)
	go func() { errCh <- b.SlackApp.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err = <-errCh:
			if err != nil {
				err = fmt.Errorf("slackapp failed: %w", err)
			}
			return err
		case ev := <-b.SlackApp.Events:
			switch data := ev.Data.(type) {
			case *slackevents.AppMentionEvent:
				b.goHandle(ctx, func(ctx context.Context, logger *slog.Logger) {
					b.handleMessage(ctx, logger, data.User, data.Channel, data.Text)
				})
			case *slackevents.MessageEvent:
				if isCommandMessage(data, botUserID) {
					b.goHandle(ctx, func(ctx context.Context, logger *slog.Logger) {
						b.handleMessage(ctx, logger, data.User, data.Channel, data.Text)
					})
				}
			default:
				b.logger.Warn("received unexpected Event API event", "type", ev.Type)
			}
		case cmd := <-b.SlackApp.SlashCommands:
			b.goHandle(ctx, func(ctx context.Context, logger *slog.Logger) {
				b.handleSlashCommand(ctx, logger, cmd)
			})
		case callback := <-b.SlackApp.Interactions:
			b.goHandle(ctx, func(ctx context.Context, logger *slog.Logger) {
				b.handleInteraction(ctx, logger, callback)
			})
		}
	}
}

// isCommandMessage returns true if the message is a new direct message from a user. Edits, deletions, join
// notices and our own messages all carry a subtype or a bot ID.
func isCommandMessage(ev *slackevents.MessageEvent, botUserID string) bool {
	return ev.ChannelType == directMessageChannel &&
		ev.SubType == "" &&
		ev.BotID == "" &&
		ev.User != "" &&
		ev.User != botUserID
}

// goHandle runs f in its own goroutine, bounded by the bot's request timeout.
func (b *Bot) goHandle(ctx context.Context, f func(context.Context, *slog.Logger)) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, b.requestTimeout)
		defer cancel()
		f(ctx, b.logger.With("req", uuid.NewString()))
	}()
}

func (b *Bot) handleMessage(ctx context.Context, logger *slog.Logger, user, channel, text string) {
	req := Request{UserID: user, ChannelID: channel, Args: tokenizeText(removeUserID(text)), Logger: logger}
	logger.Debug("executing command", "channel", channel, "args", req.Args)
	resp := b.Handle(ctx, req)
	if len(resp) == 0 {
		return
	}
	if _, _, err := b.SlackApp.Client.PostMessageContext(ctx, channel, resp...); err != nil {
		logger.Error("failed to post response", "channel", channel, "err", err)
	}
}

func (b *Bot) handleSlashCommand(ctx context.Context, logger *slog.Logger, cmd slack.SlashCommand) {
	req := Request{
		UserID:    cmd.UserID,
		ChannelID: cmd.ChannelID,
		TriggerID: cmd.TriggerID,
		Args:      append([]string{strings.TrimPrefix(cmd.Command, "/")}, tokenizeText(cmd.Text)...),
		Logger:    logger,
	}
	logger.Debug("executing slash command", "user", cmd.UserID, "args", req.Args)
	b.respond(ctx, logger, cmd.ResponseURL, b.Handle(ctx, req))
}

func (b *Bot) handleInteraction(ctx context.Context, logger *slog.Logger, callback slack.InteractionCallback) {
	logger = logger.With("type", callback.Type, "user", callback.User.ID)
	switch callback.Type {
	case slack.InteractionTypeBlockActions:
		for _, action := range callback.ActionCallback.BlockActions {
			if action.ActionID != blocks.InfoSelectActionID || action.SelectedUser == "" {
				continue
			}
			logger.Debug("user selected", "handle", action.SelectedUser)
			b.respond(ctx, logger, callback.ResponseURL, blocks.Card(b.lookup.Lookup(ctx, action.SelectedUser), b.fallbackContact))
		}
	case slack.InteractionTypeMessageAction:
		if callback.CallbackID != blocks.InfoShortcutCallbackID {
			logger.Warn("unsupported shortcut", "callbackID", callback.CallbackID)
			return
		}
		if callback.Message.User == "" {
			logger.Debug("ignoring shortcut on message without a user", "botID", callback.Message.BotID)
			return
		}
		logger.Debug("message shortcut", "handle", callback.Message.User)
		form := blocks.Form(b.lookup.Lookup(ctx, callback.Message.User), b.fallbackContact)
		if _, err := b.SlackApp.Client.OpenViewContext(ctx, callback.TriggerID, form); err != nil {
			logger.Error("failed to open contact info", "err", err)
		}
	case slack.InteractionTypeViewSubmission:
		if callback.View.CallbackID == blocks.FeedbackCallbackID {
			b.relayFeedback(ctx, logger, callback)
		}
	default:
		logger.Debug("ignoring interaction")
	}
}

// respond sends an ephemeral response to the user that issued the command or interaction.
func (b *Bot) respond(ctx context.Context, logger *slog.Logger, responseURL string, resp []slack.MsgOption) {
	if len(resp) == 0 {
		return
	}
	resp = append(resp, slack.MsgOptionResponseURL(responseURL, slack.ResponseTypeEphemeral))
	if _, _, err := b.SlackApp.Client.PostMessageContext(ctx, "", resp...); err != nil {
		logger.Error("failed to respond", "err", err)
	}
}

func (b *Bot) relayFeedback(ctx context.Context, logger *slog.Logger, callback slack.InteractionCallback) {
	fb, err := blocks.ParseFeedback(callback.View.State)
	if err != nil {
		// the submitter already saw the errors in the modal
		logger.Debug("ignoring invalid feedback", "err", err)
		return
	}
	if len(b.reviewers) == 0 {
		logger.Warn("no reviewers configured. dropping feedback", "type", fb.Type)
		return
	}
	channel, _, _, err := b.SlackApp.Client.OpenConversationContext(ctx, &slack.OpenConversationParameters{Users: b.reviewers})
	if err != nil {
		logger.Error("failed to contact reviewers", "err", err)
		return
	}
	if _, _, err = b.SlackApp.Client.PostMessageContext(ctx, channel.ID, blocks.FeedbackReport(callback.User.ID, fb)...); err != nil {
		logger.Error("failed to post feedback", "err", err)
		return
	}
	logger.Info("feedback relayed", "type", fb.Type)
}

func respondToFeedback(callback slack.InteractionCallback) *slack.ViewSubmissionResponse {
	if _, err := blocks.ParseFeedback(callback.View.State); err != nil {
		if fields := blocks.FeedbackErrors(err); len(fields) > 0 {
			return slack.NewErrorsViewSubmissionResponse(fields)
		}
		view := blocks.FeedbackFailed()
		return slack.NewUpdateViewSubmissionResponse(&view)
	}
	view := blocks.FeedbackSubmitted()
	return slack.NewUpdateViewSubmissionResponse(&view)
}

func (b *Bot) userID(ctx context.Context) (string, error) {
	auth, err := b.SlackApp.AuthTestContext(ctx)
	if err != nil {
		return "", fmt.Errorf("auth: %w", err)
	}
	return auth.UserID, nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////

const invalidUserText = "The provided argument was not a valid user."

var commandHelp = []blocks.CommandHelp{
	{Usage: "/help", Description: "Sends info about other commands."},
	{Usage: "/info @[user]?", Description: "Gets the contact info of a given user."},
	{Usage: "/submit-feedback", Description: "Submits feedback about the slack bot."},
}

// info shows the contact info of the mentioned user, or of the caller if no user was mentioned.
func (b *Bot) info(ctx context.Context, req Request) []slack.MsgOption {
	handle := req.UserID
	if len(req.Args) > 0 {
		var ok bool
		if handle, ok = parseUserMention(req.Args[0]); !ok {
			return []slack.MsgOption{slack.MsgOptionText(invalidUserText, false)}
		}
	}
	return blocks.Card(b.lookup.Lookup(ctx, handle), b.fallbackContact)
}

func (b *Bot) help(_ context.Context, _ Request) []slack.MsgOption {
	return blocks.Help(b.sourceURL, commandHelp...)
}

func (b *Bot) submitFeedback(ctx context.Context, req Request) []slack.MsgOption {
	if req.TriggerID == "" {
		return []slack.MsgOption{slack.MsgOptionText("Please use the /submit-feedback command to submit feedback.", false)}
	}
	if _, err := b.SlackApp.Client.OpenViewContext(ctx, req.TriggerID, blocks.FeedbackModal()); err != nil {
		req.logger(b.logger).Error("failed to open feedback modal", "user", req.UserID, "err", err)
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////

type BotOptionFunc func(*Bot)

func WithLogger(logger *slog.Logger) BotOptionFunc {
	return func(bot *Bot) {
		bot.logger = logger
	}
}

func WithHandler(verb string, handler Handler) BotOptionFunc {
	return func(bot *Bot) {
		bot.Commands[verb] = handler
	}
}

// WithReviewers sets the users that receive submitted feedback.
func WithReviewers(reviewers ...string) BotOptionFunc {
	return func(bot *Bot) {
		bot.reviewers = reviewers
	}
}

// WithFallbackContact sets the user that people are asked to contact when a lookup fails.
func WithFallbackContact(user string) BotOptionFunc {
	return func(bot *Bot) {
		bot.fallbackContact = user
	}
}

func WithSourceURL(url string) BotOptionFunc {
	return func(bot *Bot) {
		bot.sourceURL = url
	}
}

// WithRequestTimeout bounds the time spent on a single command or interaction.
func WithRequestTimeout(timeout time.Duration) BotOptionFunc {
	return func(bot *Bot) {
		bot.requestTimeout = timeout
	}
}

////////////////////////////////////////////////////////////////////////////////////////////////////////////////

var tokenizerRegExp = regexp.MustCompile(`[^\s"]+|"([^"]*)"`)

func tokenizeText(input string) []string {
	cleanInput := input
	for _, quote := range []string{"“", "”", "'"} {
		cleanInput = strings.ReplaceAll(cleanInput, quote, "\"")
	}
	output := tokenizerRegExp.FindAllString(cleanInput, -1)

	for index, word := range output {
		output[index] = strings.Trim(word, "\"")
	}
	return output
}

var userIDRegExp = regexp.MustCompile(`<@\w+> (.*)$`)

func removeUserID(input string) string {
	matches := userIDRegExp.FindStringSubmatch(input)
	if len(matches) != 2 {
		return input
	}
	return matches[1]
}

var userMentionRegExp = regexp.MustCompile(`^<@([A-Z0-9]+)(?:\|[^>]*)?>$`)

// parseUserMention returns the user ID of a user mention, e.g. <@U123> or <@U123|name>.
func parseUserMention(input string) (string, bool) {
	matches := userMentionRegExp.FindStringSubmatch(input)
	if len(matches) != 2 {
		return "", false
	}
	return matches[1], true
}
