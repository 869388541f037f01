package hallmonitor

import (
	"context"
	"github.com/clambin/hallmonitor/internal/contacts"
	"github.com/clambin/hallmonitor/internal/testutils"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	handler := func(text string) Handler {
		return HandlerFunc(func(_ context.Context, req Request) []slack.MsgOption {
			if len(req.Args) > 0 {
				text += ": " + strings.Join(req.Args, ", ")
			}
			return []slack.MsgOption{slack.MsgOptionText(text+" for "+req.UserID, true)}
		})
	}

	tests := []struct {
		name     string
		commands Commands
		args     []string
		want     map[string]string
	}{
		{
			name:     "single command",
			commands: Commands{"foo": handler("foo")},
			args:     []string{"foo"},
			want:     map[string]string{"text": "foo for U1"},
		},
		{
			name:     "single command with args",
			commands: Commands{"foo": handler("foo")},
			args:     []string{"foo", "a=b"},
			want:     map[string]string{"text": "foo: a=b for U1"},
		},
		{
			name:     "empty",
			commands: Commands{"foo": handler("foo")},
			args:     nil,
			want:     map[string]string{"attachments": `[{"color":"bad","title":"invalid command","text":"supported commands: foo","blocks":null}]`},
		},
		{
			name:     "invalid command",
			commands: Commands{"foo": handler("foo")},
			args:     []string{"bar"},
			want:     map[string]string{"attachments": `[{"color":"bad","title":"invalid command","text":"supported commands: foo","blocks":null}]`},
		},
		{
			name:     "nested command",
			commands: Commands{"foo": &Commands{"bar": handler("bar")}},
			args:     []string{"foo", "bar"},
			want:     map[string]string{"text": "bar for U1"},
		},
		{
			name:     "invalid nested command",
			commands: Commands{"foo": &Commands{"bar": handler("bar")}},
			args:     []string{"foo", "foo"},
			want:     map[string]string{"attachments": `[{"color":"bad","title":"invalid command","text":"supported commands: bar","blocks":null}]`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := make(Commands)
			c.Add(tt.commands)
			options := c.Handle(context.Background(), Request{UserID: "U1", Args: tt.args})
			output := testutils.FormatMessage(options)

			for k, v := range tt.want {
				require.Contains(t, output, k)
				assert.Equal(t, v, output.Get(k))
			}
		})
	}
}

func TestBot_info(t *testing.T) {
	lookup := fakeLookup{
		"U1": {Outcome: contacts.NotInDirectory, Handle: "U1", DisplayName: "John Doe"},
	}
	b := makeBot(lookup, WithFallbackContact("UFALLBACK"))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "caller", want: "John Doe was not found on the contacts spreadsheet."},
		{name: "mention", args: []string{"<@U2|alice>"}, want: "There was an error fetching your name."},
		{name: "invalid user", args: []string{"alice"}, want: invalidUserText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := testutils.FormatMessage(b.info(context.Background(), Request{UserID: "U1", Args: tt.args}))
			assert.Equal(t, tt.want, output.Get("text"))
		})
	}
}

func TestBot_submitFeedback_withoutTrigger(t *testing.T) {
	b := makeBot(fakeLookup{})
	output := testutils.FormatMessage(b.submitFeedback(context.Background(), Request{UserID: "U1"}))
	assert.Contains(t, output.Get("text"), "/submit-feedback")
}

type fakeLookup map[string]contacts.Result

func (f fakeLookup) Lookup(_ context.Context, handle string) contacts.Result {
	if result, ok := f[handle]; ok {
		return result
	}
	return contacts.Result{Outcome: contacts.IdentityUnavailable, Handle: handle, Err: contacts.ErrNameUnavailable}
}
