// Package blocks builds the Block Kit messages and modals sent by the bot.
package blocks

import (
	"errors"
	"fmt"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/slack-go/slack"
)

const (
	// InfoSelectActionID identifies the user select element that re-targets a contact card.
	InfoSelectActionID = "info-select"
	// InfoShortcutCallbackID identifies the message shortcut that shows the message author's contact info.
	InfoShortcutCallbackID = "info-shortcut"

	contactModalTitle = "Contact info"
)

// Card renders the result of a contact lookup as a message. Except when the user could not be identified, the message
// ends with a user select, so the requester can look up someone else.
func Card(result contacts.Result, fallbackContact string) []slack.MsgOption {
	blocks := contactBlocks(result, fallbackContact)
	if result.Outcome != contacts.IdentityUnavailable {
		blocks = append(blocks, userSelect(result.Handle))
	}
	return []slack.MsgOption{
		slack.MsgOptionText(summary(result), false),
		slack.MsgOptionBlocks(blocks...),
	}
}

// Form renders the result of a contact lookup as a modal.
func Form(result contacts.Result, fallbackContact string) slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:   slack.VTModal,
		Title:  plainText(contactModalTitle),
		Close:  plainText("Close"),
		Blocks: slack.Blocks{BlockSet: contactBlocks(result, fallbackContact)},
	}
}

func contactBlocks(result contacts.Result, fallbackContact string) []slack.Block {
	switch result.Outcome {
	case contacts.Found:
		c := result.Contact
		fields := make([]*slack.TextBlockObject, 0, 3)
		for _, f := range c.Fields() {
			fields = append(fields, field(f.Title, f.Value))
		}
		return []slack.Block{
			header(fmt.Sprintf("Contact info for %s (%s)", c.Name(), c.Position)),
			slack.NewSectionBlock(nil, fields, nil),
		}
	case contacts.NotInDirectory:
		return []slack.Block{
			header(result.DisplayName + " was not found on the contacts spreadsheet."),
			section(fmt.Sprintf("If this is a mistake, please message <@%s>.", fallbackContact)),
		}
	default:
		return []slack.Block{
			header(errorHeader(result)),
			section(fmt.Sprintf("If this issue persists, please message <@%s>.", fallbackContact)),
		}
	}
}

func errorHeader(result contacts.Result) string {
	switch {
	case errors.Is(result.Err, contacts.ErrDirectoryTransport):
		return "There was an error reading the contacts spreadsheet."
	case errors.Is(result.Err, contacts.ErrMalformedPhone):
		return "The contacts spreadsheet entry for " + result.DisplayName + " is malformed."
	default:
		return "There was an error fetching your name."
	}
}

// summary is the notification text of a card.
func summary(result contacts.Result) string {
	switch result.Outcome {
	case contacts.Found:
		return "Contact info for " + result.Contact.Name()
	case contacts.NotInDirectory:
		return result.DisplayName + " was not found on the contacts spreadsheet."
	default:
		return errorHeader(result)
	}
}

func userSelect(initialUser string) slack.Block {
	sel := slack.NewOptionsSelectBlockElement(slack.OptTypeUser, plainText("Select a user"), InfoSelectActionID)
	sel.InitialUser = initialUser
	return slack.NewActionBlock("", sel)
}
