// Package audio stores audio files referenced by cards in an app-private directory.
package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrNotFound      = errors.New("audio file not found")
	ErrInvalidFormat = errors.New("invalid audio file format")
)

const (
	idAlphabet   = "0123456789abcdefghijklmnopqrstuvwxyz"
	idSuffixSize = 9
	defaultMime  = "audio/mpeg"
)

// mimeTypes maps every supported extension to the MIME type served for it.
var mimeTypes = map[string]string{
	".mp3": "audio/mpeg",
	".wav": "audio/wav",
	".ogg": "audio/ogg",
	".m4a": "audio/mp4",
	".aac": "audio/aac",
}

// IsSupportedExtension reports whether ext (with the leading dot) is an accepted audio format.
func IsSupportedExtension(ext string) bool {
	_, ok := mimeTypes[strings.ToLower(ext)]
	return ok
}

// Asset is an audio file copied into the private directory.
type Asset struct {
	ID string
	// InternalPath is the stored file name relative to the private directory.
	InternalPath string
}

// Manager copies audio files into a private directory and resolves stored names.
type Manager struct {
	dir   string
	now   func() time.Time
	newID func() (string, error)
}

// NewManager creates a Manager rooted at dir. The directory is created on first use.
func NewManager(dir string) *Manager {
	m := &Manager{dir: dir, now: time.Now}
	m.newID = m.generateID
	return m
}

// Directory returns the private directory.
func (m *Manager) Directory() string {
	return m.dir
}

func (m *Manager) ensureDir() error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", m.dir, err)
	}
	return nil
}

// generateID returns "<unix millis>_<9 base36 characters>".
func (m *Manager) generateID() (string, error) {
	suffix, err := gonanoid.Generate(idAlphabet, idSuffixSize)
	if err != nil {
		return "", fmt.Errorf("gonanoid.Generate() > %w", err)
	}
	return strconv.FormatInt(m.now().UnixMilli(), 10) + "_" + suffix, nil
}

// CopyAudioFile copies src into the private directory under a generated name
// that keeps the original extension.
func (m *Manager) CopyAudioFile(ctx context.Context, src string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, err
	}
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Asset{}, fmt.Errorf("%w: %s", ErrNotFound, src)
		}
		return Asset{}, fmt.Errorf("os.Stat(%s) > %w", src, err)
	}
	if !m.ValidateAudioFile(src) {
		return Asset{}, fmt.Errorf("%w: %s", ErrInvalidFormat, src)
	}
	if err := m.ensureDir(); err != nil {
		return Asset{}, err
	}

	id, err := m.newID()
	if err != nil {
		return Asset{}, err
	}
	name := id + strings.ToLower(filepath.Ext(src))
	dst := filepath.Join(m.dir, name)
	if err := copyFile(src, dst); err != nil {
		return Asset{}, err
	}

	slog.Default().Debug("copied audio file", "source", src, "destination", dst)
	return Asset{ID: id, InternalPath: name}, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("os.Open(%s) > %w", src, err)
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("os.OpenFile(%s) > %w", dst, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("out.Close() > %w", closeErr)
		}
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("io.Copy(%s) > %w", dst, err)
	}
	return nil
}

// DeleteAudioFile removes a stored file. A file that is already gone is not an error.
func (m *Manager) DeleteAudioFile(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := m.GetAudioFilePath(name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			slog.Default().Debug("audio file already deleted", "path", path)
			return nil
		}
		return fmt.Errorf("os.Remove(%s) > %w", path, err)
	}
	slog.Default().Debug("deleted audio file", "path", path)
	return nil
}

// ValidateAudioFile reports whether path has a supported extension and is a non-empty regular file.
func (m *Manager) ValidateAudioFile(path string) bool {
	if !IsSupportedExtension(filepath.Ext(path)) {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// GetAudioFilePath returns the absolute location of a stored name.
// Only the base name is used so a stored reference cannot escape the directory.
func (m *Manager) GetAudioFilePath(name string) string {
	path := filepath.Join(m.dir, filepath.Base(name))
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// AudioFileExists reports whether name is present in the private directory.
func (m *Manager) AudioFileExists(name string) bool {
	if name == "" {
		return false
	}
	_, err := os.Stat(m.GetAudioFilePath(name))
	return err == nil
}

// MimeType returns the content type of a stored file. The file content is sniffed
// first; when that does not yield an audio type the extension decides.
func (m *Manager) MimeType(name string) string {
	if detected, err := mimetype.DetectFile(m.GetAudioFilePath(name)); err == nil {
		for mt := detected; mt != nil; mt = mt.Parent() {
			if strings.HasPrefix(mt.String(), "audio/") {
				return mt.String()
			}
		}
	}
	if mt, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return mt
	}
	return defaultMime
}
