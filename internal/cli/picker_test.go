package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dearbones/dearbones/internal/datasync"
)

func TestPromptPathPicker_PickOpen(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "path entered", input: "  decks/spanish.csv \n", want: "decks/spanish.csv"},
		{name: "empty answer cancels", input: "\n", wantErr: datasync.ErrCancelled},
		{name: "closed input cancels", input: "", wantErr: datasync.ErrCancelled},
		{name: "last line without newline", input: "a.csv", want: "a.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			picker := NewPromptPathPicker(strings.NewReader(tt.input), out, "exports")

			got, err := picker.PickOpen(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "CSV file to import")
		})
	}
}

func TestPromptPathPicker_PickSave(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "suggested path", input: "\n", want: filepath.Join("exports", "Spanish.csv")},
		{name: "custom path", input: "/tmp/out.csv\n", want: "/tmp/out.csv"},
		{name: "dash cancels", input: "-\n", wantErr: datasync.ErrCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			picker := NewPromptPathPicker(strings.NewReader(tt.input), out, "exports")

			got, err := picker.PickSave(context.Background(), "Spanish.csv")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Save as ["+filepath.Join("exports", "Spanish.csv")+"]")
		})
	}
}

func TestPromptPathPicker_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPromptPathPicker(strings.NewReader("a.csv\n"), &bytes.Buffer{}, "").PickOpen(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
