package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dearbones/dearbones/internal/datasync"
)

// PromptPathPicker asks for file paths on the terminal. An empty answer cancels.
type PromptPathPicker struct {
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
	defaultDir   string
}

// NewPromptPathPicker creates a picker that suggests save locations under defaultDir.
func NewPromptPathPicker(stdin io.Reader, stdout io.Writer, defaultDir string) *PromptPathPicker {
	return &PromptPathPicker{
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
		defaultDir:   defaultDir,
	}
}

func (p *PromptPathPicker) PickOpen(ctx context.Context) (string, error) {
	return p.prompt(ctx, "CSV file to import (empty to cancel): ", "")
}

// PickSave accepts an empty answer as the suggested path; "-" cancels.
func (p *PromptPathPicker) PickSave(ctx context.Context, defaultName string) (string, error) {
	suggested := filepath.Join(p.defaultDir, defaultName)
	return p.prompt(ctx, fmt.Sprintf("Save as [%s] (- to cancel): ", suggested), suggested)
}

func (p *PromptPathPicker) prompt(ctx context.Context, question, fallback string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, _ = fmt.Fprint(p.stdoutWriter, question)
	line, err := p.stdinReader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if err == io.EOF {
			return "", datasync.ErrCancelled
		}
		return "", fmt.Errorf("error reading input: %w", err)
	}
	answer := strings.TrimSpace(line)
	switch {
	case answer == "-":
		return "", datasync.ErrCancelled
	case answer == "" && fallback == "":
		return "", datasync.ErrCancelled
	case answer == "":
		return fallback, nil
	}
	return answer, nil
}

var _ datasync.PathPicker = (*PromptPathPicker)(nil)
