package output

import (
	"fmt"
	"io"
	"os"

	"github.com/rios0rios0/acversion/domain"
)

// outputFileEnv names the file GitHub Actions provides for step outputs.
const outputFileEnv = "GITHUB_OUTPUT"

// ActionsWriter publishes key/value pairs using GitHub Actions semantics:
// it appends "name=value" lines to the file named by GITHUB_OUTPUT, falling
// back to the legacy ::set-output workflow command on stdout when the
// variable is unset.
type ActionsWriter struct {
	stdout io.Writer
}

// NewActionsWriter creates a writer that emits legacy commands to stdout.
func NewActionsWriter(stdout io.Writer) domain.OutputWriter {
	return &ActionsWriter{stdout: stdout}
}

func (w *ActionsWriter) Set(name, value string) error {
	if path := os.Getenv(outputFileEnv); path != "" {
		return appendToOutputFile(path, name, value)
	}

	// Legacy workflow command for runners that predate GITHUB_OUTPUT.
	if _, err := fmt.Fprintf(w.stdout, "::set-output name=%s::%s\n", name, value); err != nil {
		return fmt.Errorf("failed to write output command: %w", err)
	}
	return nil
}

func appendToOutputFile(path, name, value string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %q: %w", path, err)
	}

	if _, writeErr := fmt.Fprintf(f, "%s=%s\n", name, value); writeErr != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write output file %q: %w", path, writeErr)
	}

	return f.Close()
}
