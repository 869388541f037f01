package blocks

import (
	"github.com/slack-go/slack"
	"unicode/utf8"
)

const (
	// Slack allows up to 10 fields per section, but anything beyond two per section doesn't render well on mobile.
	fieldsPerSection = 2
	// Slack rejects the whole message if a header's text is longer than this.
	maxHeaderLength = 150
)

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

func markdown(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func header(text string) *slack.HeaderBlock {
	return slack.NewHeaderBlock(plainText(truncate(text, maxHeaderLength)))
}

// truncate shortens text to at most maxRunes runes, ending it with an ellipsis if it was cut.
func truncate(text string, maxRunes int) string {
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxRunes-1]) + "…"
}

func section(text string) *slack.SectionBlock {
	return slack.NewSectionBlock(markdown(text), nil, nil)
}

func field(title, value string) *slack.TextBlockObject {
	return markdown("*" + title + ":*\n" + value)
}

// fieldSections groups fields into sections of fieldsPerSection fields each.
func fieldSections(fields ...*slack.TextBlockObject) []slack.Block {
	sections := make([]slack.Block, 0, (len(fields)+fieldsPerSection-1)/fieldsPerSection)
	for i := 0; i < len(fields); i += fieldsPerSection {
		sections = append(sections, slack.NewSectionBlock(nil, fields[i:min(i+fieldsPerSection, len(fields))], nil))
	}
	return sections
}
