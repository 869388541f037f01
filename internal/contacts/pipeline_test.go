package contacts

import (
	"context"
	"errors"
	"github.com/clambin/hallmonitor/internal/contacts/mocks"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"strings"
	"testing"
)

func TestPipeline_Lookup(t *testing.T) {
	tests := []struct {
		name      string
		user      *slack.User
		userErr   error
		rows      [][]string
		rowsErr   error
		readStore bool
		want      Result
		wantErr   error
	}{
		{
			name: "found",
			user: &slack.User{RealName: "john Doe"},
			rows: [][]string{
				{"doe", "john", "President", "john.doe@example.com", "650-123-4567", "(650)7654321"},
			},
			readStore: true,
			want: Result{
				Outcome:     Found,
				Handle:      "U1",
				DisplayName: "john Doe",
				Contact: ContactInfo{
					DisplayName: "john Doe",
					FirstName:   "john",
					LastName:    "doe",
					Position:    "President",
					Email:       "john.doe@example.com",
					CellPhone:   "(650) 123-4567",
					HomePhone:   "(650) 765-4321",
				},
			},
		},
		{
			name:      "not in directory",
			user:      &slack.User{RealName: "Alice Cooper"},
			rows:      testRows,
			readStore: true,
			want:      Result{Outcome: NotInDirectory, Handle: "U1", DisplayName: "Alice Cooper"},
		},
		{
			name:    "identity unavailable",
			userErr: slack.SlackErrorResponse{Err: "user_not_found"},
			want:    Result{Outcome: IdentityUnavailable, Handle: "U1"},
			wantErr: ErrNameUnavailable,
		},
		{
			name:    "identity transport failure",
			userErr: errors.New("timeout"),
			want:    Result{Outcome: IdentityUnavailable, Handle: "U1"},
			wantErr: ErrIdentityTransport,
		},
		{
			name:      "directory transport failure",
			user:      &slack.User{RealName: "John Doe"},
			rowsErr:   errors.New("timeout"),
			readStore: true,
			want:      Result{Outcome: IdentityUnavailable, Handle: "U1", DisplayName: "John Doe"},
			wantErr:   ErrDirectoryTransport,
		},
		{
			name:      "malformed phone",
			user:      &slack.User{RealName: "John Doe"},
			rows:      [][]string{{"Doe", "John", "President", "john.doe@example.com", "n/a", ""}},
			readStore: true,
			want:      Result{Outcome: IdentityUnavailable, Handle: "U1", DisplayName: "John Doe"},
			wantErr:   ErrMalformedPhone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			users := mocks.NewMockUserInfoGetter(ctrl)
			users.EXPECT().GetUserInfoContext(gomock.Any(), "U1").Return(tt.user, tt.userErr)
			store := mocks.NewMockStore(ctrl)
			if tt.readStore {
				store.EXPECT().Rows(gomock.Any()).Return(tt.rows, tt.rowsErr)
			}

			got := NewPipeline(users, store).Lookup(context.Background(), "U1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, got.Err, tt.wantErr)
			} else {
				assert.NoError(t, got.Err)
			}
			got.Err = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPipeline_Lookup_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserInfoGetter(ctrl)
	users.EXPECT().GetUserInfoContext(gomock.Any(), "U1").Return(&slack.User{RealName: "John Doe"}, nil).Times(2)
	users.EXPECT().GetUserInfoContext(gomock.Any(), "U2").Return(nil, slack.SlackErrorResponse{Err: "user_not_found"})
	store := mocks.NewMockStore(ctrl)
	store.EXPECT().Rows(gomock.Any()).Return(testRows, nil)
	store.EXPECT().Rows(gomock.Any()).Return(nil, errors.New("fail"))

	m := NewMetrics("hallmonitor", "")
	p := NewPipeline(users, store, WithMetrics(m))
	assert.Equal(t, Found, p.Lookup(context.Background(), "U1").Outcome)
	assert.Equal(t, IdentityUnavailable, p.Lookup(context.Background(), "U1").Outcome)
	assert.Equal(t, IdentityUnavailable, p.Lookup(context.Background(), "U2").Outcome)

	require.NoError(t, testutil.CollectAndCompare(m.lookups, strings.NewReader(`
# HELP hallmonitor_contact_lookups_total Number of contact lookups, by outcome
# TYPE hallmonitor_contact_lookups_total counter
hallmonitor_contact_lookups_total{outcome="directory_error"} 1
hallmonitor_contact_lookups_total{outcome="found"} 1
hallmonitor_contact_lookups_total{outcome="identity_unavailable"} 1
`)))
}

func TestContactInfo_Fields(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want []Field
	}{
		{
			name: "email only",
			row:  Row{FirstName: "john", LastName: "doe", Email: "john@example.com"},
			want: []Field{{Title: "Email", Value: "john@example.com"}},
		},
		{
			name: "cell phone",
			row:  Row{FirstName: "john", LastName: "doe", Email: "john@example.com", CellPhone: "6501234567"},
			want: []Field{
				{Title: "Email", Value: "john@example.com"},
				{Title: "Cell phone", Value: "(650) 123-4567"},
			},
		},
		{
			name: "home phone",
			row:  Row{FirstName: "john", LastName: "doe", Email: "john@example.com", HomePhone: "650 765 4321"},
			want: []Field{
				{Title: "Email", Value: "john@example.com"},
				{Title: "Home phone", Value: "(650) 765-4321"},
			},
		},
		{
			name: "both phones",
			row:  Row{FirstName: "john", LastName: "doe", Email: "john@example.com", CellPhone: "650-123-4567", HomePhone: "(650) 765-4321"},
			want: []Field{
				{Title: "Email", Value: "john@example.com"},
				{Title: "Cell phone", Value: "(650) 123-4567"},
				{Title: "Home phone", Value: "(650) 765-4321"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewContactInfo("John Doe", tt.row)
			require.NoError(t, err)
			assert.Equal(t, "John Doe", info.Name())
			assert.Equal(t, tt.want, info.Fields())
		})
	}
}

func TestNewContactInfo_MalformedPhone(t *testing.T) {
	_, err := NewContactInfo("John Doe", Row{FirstName: "John", HomePhone: "ask me"})
	assert.ErrorIs(t, err, ErrMalformedPhone)
	assert.ErrorContains(t, err, "home phone")
}
