package hallmonitor

import (
	"context"
	"errors"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"log/slog"
	"sync"
	"sync/atomic"
)

// A SlackApp connects to Slack using Socket Mode. It acknowledges each incoming event and makes it available on one of
// its channels: Events API events on Events, slash commands on SlashCommands and interactions (block actions,
// shortcuts, view submissions) on Interactions.
type SlackApp struct {
	*socketmode.Client
	Events        chan slackevents.EventsAPIInnerEvent
	SlashCommands chan slack.SlashCommand
	Interactions  chan slack.InteractionCallback
	socketModeHandler
	logger        *slog.Logger
	connected     atomic.Bool
	lock          sync.RWMutex
	viewResponses map[string]ViewResponder
}

type socketModeHandler interface {
	RunEventLoopContext(ctx context.Context) error
	Handle(socketmode.EventType, socketmode.SocketmodeHandlerFunc)
}

// A ViewResponder determines how Slack responds to a submitted modal: e.g. show validation errors, or replace the
// modal with a new view. Returning nil closes the modal.
type ViewResponder func(slack.InteractionCallback) *slack.ViewSubmissionResponse

// NewSlackApp creates a new SlackApp for the slack client.
func NewSlackApp(client *slack.Client, logger *slog.Logger) *SlackApp {
	smc := socketmode.New(client)
	return newSlackAppWithSocketModeHandler(smc, socketmode.NewSocketmodeHandler(smc), logger)
}

func newSlackAppWithSocketModeHandler(client *socketmode.Client, handler socketModeHandler, logger *slog.Logger) *SlackApp {
	app := SlackApp{
		Client:            client,
		Events:            make(chan slackevents.EventsAPIInnerEvent),
		SlashCommands:     make(chan slack.SlashCommand),
		Interactions:      make(chan slack.InteractionCallback),
		socketModeHandler: handler,
		logger:            logger,
		viewResponses:     make(map[string]ViewResponder),
	}
	app.socketModeHandler.Handle(socketmode.EventTypeConnecting, app.onConnecting)
	app.socketModeHandler.Handle(socketmode.EventTypeConnectionError, app.onConnectionError)
	app.socketModeHandler.Handle(socketmode.EventTypeConnected, app.onConnected)
	app.socketModeHandler.Handle(socketmode.EventTypeIncomingError, app.onIncomingError)
	app.socketModeHandler.Handle(socketmode.EventTypeHello, app.onHello)
	app.socketModeHandler.Handle(socketmode.EventTypeDisconnect, app.onDisconnected)
	app.socketModeHandler.Handle(socketmode.EventTypeEventsAPI, app.onEvent)
	app.socketModeHandler.Handle(socketmode.EventTypeSlashCommand, app.onSlashCommand)
	app.socketModeHandler.Handle(socketmode.EventTypeInteractive, app.onInteractive)

	return &app
}

// Run starts the SlackApp. It connects to Slack and passes any received events to the app's channels.
func (h *SlackApp) Run(ctx context.Context) error {
	h.logger.Info("starting SlackApp")
	defer h.logger.Info("shutting down SlackApp")
	return h.socketModeHandler.RunEventLoopContext(ctx)
}

// Connected returns true if the SlackApp is connected to Slack.
func (h *SlackApp) Connected() bool {
	return h.connected.Load()
}

// RespondToView registers the responder for submissions of the modal with the provided callback ID. Slack expects
// the response as part of the acknowledgement, so the responder must return quickly.
func (h *SlackApp) RespondToView(callbackID string, responder ViewResponder) {
	h.lock.Lock()
	defer h.lock.Unlock()
	h.viewResponses[callbackID] = responder
}

func (h *SlackApp) onConnecting(_ *socketmode.Event, _ *socketmode.Client) {
	h.logger.Debug("connecting to Slack ...")
}

func (h *SlackApp) onConnectionError(ev *socketmode.Event, _ *socketmode.Client) {
	reason := string(ev.Type)
	if ev.Request != nil {
		reason = ev.Request.Reason
	}
	h.logger.Error("failed to connect to Slack", "reason", reason)
}

func (h *SlackApp) onConnected(_ *socketmode.Event, _ *socketmode.Client) {
	h.connected.Store(true)
	h.logger.Info("connected to Slack")
}

func (h *SlackApp) onIncomingError(ev *socketmode.Event, _ *socketmode.Client) {
	var err *slack.IncomingEventError
	if evErr, ok := ev.Data.(error); ok && errors.As(evErr, &err) {
		h.logger.Warn("received incoming error", "err", err)
	} else {
		h.logger.Warn("received unexpected event type", "type", ev.Type)
	}
}

func (h *SlackApp) onHello(_ *socketmode.Event, _ *socketmode.Client) {
}

func (h *SlackApp) onDisconnected(_ *socketmode.Event, _ *socketmode.Client) {
	h.connected.Store(false)
	h.logger.Warn("disconnected from Slack")
}

func (h *SlackApp) onEvent(ev *socketmode.Event, client *socketmode.Client) {
	eventsAPIEvent, ok := ev.Data.(slackevents.EventsAPIEvent)
	if !ok {
		h.logger.Warn("received unexpected event type", "type", ev.Type)
		return
	}
	client.Ack(*ev.Request)
	innerEvent := eventsAPIEvent.InnerEvent
	h.logger.Debug("Event received", "type", innerEvent.Type)

	h.Events <- innerEvent
}

func (h *SlackApp) onSlashCommand(ev *socketmode.Event, client *socketmode.Client) {
	cmd, ok := ev.Data.(slack.SlashCommand)
	if !ok {
		h.logger.Warn("received unexpected slash command", "type", ev.Type)
		return
	}
	client.Ack(*ev.Request)
	h.logger.Debug("slash command received", "command", cmd.Command, "user", cmd.UserID)

	h.SlashCommands <- cmd
}

func (h *SlackApp) onInteractive(ev *socketmode.Event, client *socketmode.Client) {
	callback, ok := ev.Data.(slack.InteractionCallback)
	if !ok {
		h.logger.Warn("received unexpected interaction", "type", ev.Type)
		return
	}
	if response := h.viewResponse(callback); response != nil {
		client.Ack(*ev.Request, response)
	} else {
		client.Ack(*ev.Request)
	}
	h.logger.Debug("interaction received", "type", callback.Type, "user", callback.User.ID)

	h.Interactions <- callback
}

func (h *SlackApp) viewResponse(callback slack.InteractionCallback) *slack.ViewSubmissionResponse {
	if callback.Type != slack.InteractionTypeViewSubmission {
		return nil
	}
	h.lock.RLock()
	responder, ok := h.viewResponses[callback.View.CallbackID]
	h.lock.RUnlock()
	if !ok {
		return nil
	}
	return responder(callback)
}
