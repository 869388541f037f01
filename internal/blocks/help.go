package blocks

import (
	"github.com/slack-go/slack"
)

// A CommandHelp describes one command in the help message.
type CommandHelp struct {
	Usage       string
	Description string
}

// Help renders the help message. If sourceURL is not empty, the message links to the bot's source code.
func Help(sourceURL string, commands ...CommandHelp) []slack.MsgOption {
	blocks := []slack.Block{header("Help: commands")}
	if sourceURL != "" {
		blocks = append(blocks, section("This bot is open sourced on GitHub! View the source code <"+sourceURL+"|here>."))
	}
	fields := make([]*slack.TextBlockObject, 0, len(commands))
	for _, c := range commands {
		fields = append(fields, markdown("*"+c.Usage+"*\n"+c.Description))
	}
	blocks = append(blocks, fieldSections(fields...)...)
	return []slack.MsgOption{
		slack.MsgOptionText("Help: commands", false),
		slack.MsgOptionBlocks(blocks...),
	}
}
