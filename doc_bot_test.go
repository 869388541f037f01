package hallmonitor_test

import (
	"context"
	"github.com/clambin/hallmonitor"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/clambin/hallmonitor/internal/directory"
	"github.com/slack-go/slack"
)

func ExampleBot() {
	const (
		slackToken = "xoxb-token"
		appToken   = "xapp-token"
	)
	c := slack.New(slackToken, slack.OptionAppLevelToken(appToken))
	store := directory.NewWorkbook("contacts.xlsx", "Sheet1", directory.DefaultRange)

	b := hallmonitor.NewBot(c, contacts.NewPipeline(c, store),
		hallmonitor.WithReviewers("U03GQC0A9MJ"),
		hallmonitor.WithFallbackContact("U03GQC0A9MJ"),
		// this registers a command "ping", that responds with "pong". See slack.MsgOption for possible outputs.
		hallmonitor.WithHandler("ping", hallmonitor.HandlerFunc(func(_ context.Context, _ hallmonitor.Request) []slack.MsgOption {
			return []slack.MsgOption{slack.MsgOptionText("pong", false)}
		})),
	)

	_ = b.Run(context.Background())
}
