package main

import (
	"context"
	"github.com/clambin/hallmonitor/internal/config"
	"github.com/clambin/hallmonitor/internal/directory"
	"github.com/stretchr/testify/assert"
	"path/filepath"
	"testing"
)

func TestNewStore(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Directory
		wantErr assert.ErrorAssertionFunc
		want    any
	}{
		{
			name:    "workbook",
			cfg:     config.Directory{Backend: "xlsx", XLSXPath: "contacts.xlsx", XLSXSheet: "Sheet1", Range: directory.DefaultRange},
			wantErr: assert.NoError,
			want:    &directory.Workbook{},
		},
		{
			name:    "sheets without key file",
			cfg:     config.Directory{Backend: "sheets", KeyFile: filepath.Join(t.TempDir(), "keys.json"), SpreadsheetID: "1", ReadsPerMinute: 60},
			wantErr: assert.Error,
		},
		{
			name:    "unsupported backend",
			cfg:     config.Directory{Backend: "csv"},
			wantErr: assert.Error,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := newStore(context.Background(), tt.cfg)
			tt.wantErr(t, err)
			if tt.want != nil {
				assert.IsType(t, tt.want, store)
			}
		})
	}
}
