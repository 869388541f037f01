package blocks

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/slack-go/slack"
	"strings"
)

// FeedbackCallbackID identifies the feedback modal.
const FeedbackCallbackID = "feedback-modal"

const (
	feedbackModalTitle = "Bot feedback"

	typeBlockID        = "type-select"
	typeActionID       = "type-action"
	nameBlockID        = "name-input"
	nameActionID       = "name-action"
	descriptionBlockID = "desc-input"
	descriptionAction  = "desc-action"
)

// FeedbackTypes lists the kinds of feedback that can be submitted, as value/label pairs. The first one is the default.
var FeedbackTypes = []struct{ Value, Label string }{
	{Value: "feature_suggestion", Label: "Feature suggestion"},
	{Value: "feature_feedback", Label: "Feature feedback"},
	{Value: "bug_report", Label: "Bug report"},
}

var validate = validator.New()

// Feedback is a submitted feedback form.
type Feedback struct {
	Type        string `validate:"required,oneof=feature_suggestion feature_feedback bug_report"`
	Name        string `validate:"required,max=200"`
	Description string `validate:"required,max=3000"`
}

// TypeLabel returns the human-readable feedback type.
func (f Feedback) TypeLabel() string {
	for _, t := range FeedbackTypes {
		if t.Value == f.Type {
			return t.Label
		}
	}
	return f.Type
}

// the form's block IDs, by Feedback field
var feedbackBlocks = map[string]string{
	"Type":        typeBlockID,
	"Name":        nameBlockID,
	"Description": descriptionBlockID,
}

// ParseFeedback extracts the feedback from the submitted modal's state. Text values are trimmed.
// ParseFeedback returns an error if the feedback is incomplete.
func ParseFeedback(state *slack.ViewState) (Feedback, error) {
	if state == nil {
		return Feedback{}, errors.New("no view state")
	}
	value := func(blockID, actionID string) slack.BlockAction {
		return state.Values[blockID][actionID]
	}
	fb := Feedback{
		Type:        value(typeBlockID, typeActionID).SelectedOption.Value,
		Name:        strings.TrimSpace(value(nameBlockID, nameActionID).Value),
		Description: strings.TrimSpace(value(descriptionBlockID, descriptionAction).Value),
	}
	if err := validate.Struct(fb); err != nil {
		return Feedback{}, fmt.Errorf("invalid feedback: %w", err)
	}
	return fb, nil
}

// FeedbackErrors maps an error returned by ParseFeedback to the form's blocks, so it can be shown in the modal.
func FeedbackErrors(err error) map[string]string {
	errs := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return errs
	}
	for _, fe := range validationErrors {
		blockID, ok := feedbackBlocks[fe.Field()]
		if !ok {
			continue
		}
		switch fe.Tag() {
		case "required":
			errs[blockID] = "Please fill in this field."
		case "max":
			errs[blockID] = "Please keep this under " + fe.Param() + " characters."
		default:
			errs[blockID] = "Please select a valid option."
		}
	}
	return errs
}

// FeedbackModal renders the feedback form.
func FeedbackModal() slack.ModalViewRequest {
	options := make([]*slack.OptionBlockObject, 0, len(FeedbackTypes))
	for _, t := range FeedbackTypes {
		options = append(options, slack.NewOptionBlockObject(t.Value, plainText(t.Label), nil))
	}
	typeSelect := slack.NewOptionsSelectBlockElement(slack.OptTypeStatic, plainText("Select a feedback type"), typeActionID, options...)
	typeSelect.InitialOption = options[0]

	description := slack.NewPlainTextInputBlockElement(plainText("A brief description of your feedback."), descriptionAction)
	description.Multiline = true

	return slack.ModalViewRequest{
		Type:       slack.VTModal,
		CallbackID: FeedbackCallbackID,
		Title:      plainText(feedbackModalTitle),
		Submit:     plainText("Submit"),
		Close:      plainText("Cancel"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			section("Please select what type of feedback to give, what feature your feedback concerns, and a brief description of your suggestion."),
			slack.NewInputBlock(typeBlockID, plainText("Feedback type"), nil, typeSelect),
			slack.NewInputBlock(nameBlockID, plainText("Feature name"), nil,
				slack.NewPlainTextInputBlockElement(plainText("The feature your feedback concerns."), nameActionID),
			),
			slack.NewInputBlock(descriptionBlockID, plainText("Feedback description"), nil, description),
		}},
	}
}

// FeedbackSubmitted renders the modal shown once the feedback has been submitted.
func FeedbackSubmitted() slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:  slack.VTModal,
		Title: plainText(feedbackModalTitle),
		Close: plainText("Close"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			header("Your feedback was successfully submitted."),
			section("This modal can be safely closed. Have a nice day!"),
		}},
	}
}

// FeedbackFailed renders the modal shown when the submitted feedback could not be read.
func FeedbackFailed() slack.ModalViewRequest {
	return slack.ModalViewRequest{
		Type:  slack.VTModal,
		Title: plainText(feedbackModalTitle),
		Close: plainText("Close"),
		Blocks: slack.Blocks{BlockSet: []slack.Block{
			header("Your feedback could not be submitted."),
			section("Please try again with /submit-feedback."),
		}},
	}
}

// FeedbackReport renders the message sent to the reviewers.
func FeedbackReport(userID string, fb Feedback) []slack.MsgOption {
	title := fmt.Sprintf("<@%s> submitted a new %s", userID, strings.ToLower(fb.TypeLabel()))
	return []slack.MsgOption{
		slack.MsgOptionText(title, false),
		slack.MsgOptionBlocks(
			section("*"+title+"*"),
			section("*Name:* "+fb.Name),
			section("*Desc:* "+fb.Description),
		),
	}
}
