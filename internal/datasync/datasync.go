// Package datasync provides CSV import/export orchestration between files and the deck store,
// plus YAML backups of the whole store.
package datasync

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/dearbones/dearbones/internal/audio"
)

//go:generate mockgen -source=datasync.go -destination=../mocks/datasync/mock_datasync.go -package=mock_datasync

// ErrCancelled is returned by a PathPicker when the user dismissed the dialog.
var ErrCancelled = errors.New("cancelled")

// PathPicker asks the host for a file to read or write.
type PathPicker interface {
	// PickOpen returns the CSV file to import.
	PickOpen(ctx context.Context) (string, error)
	// PickSave returns where to write an export, suggesting defaultName.
	PickSave(ctx context.Context, defaultName string) (string, error)
}

// AudioImporter copies audio referenced by an imported row into the private store
// and removes the copy again when the row cannot be stored.
type AudioImporter interface {
	CopyAudioFile(ctx context.Context, src string) (audio.Asset, error)
	DeleteAudioFile(ctx context.Context, name string) error
	AudioFileExists(name string) bool
	GetAudioFilePath(name string) string
}

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// SanitizeFileName turns a deck name into a file name stem: every run of
// characters other than ASCII letters and digits becomes one "-", and leading
// or trailing "-" are dropped. An empty result becomes "deck".
func SanitizeFileName(name string) string {
	s := strings.Trim(nonAlphanumeric.ReplaceAllString(name, "-"), "-")
	if s == "" {
		return "deck"
	}
	return s
}
