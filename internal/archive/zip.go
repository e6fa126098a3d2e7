// Package archive packages a browser build directory with an external zip
// command.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultCommand is the archiver used when none is configured.
const DefaultCommand = "zip"

// ExitError reports a non-zero exit from the archive command.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Zipper runs `<Command> -q -r <dest> <entries...>` inside the source directory.
type Zipper struct {
	// Command is the archive executable. Defaults to DefaultCommand.
	Command string
	// Stdout receives the command's standard output. Defaults to io.Discard.
	Stdout io.Writer
}

// Zip archives the non-hidden top-level entries of srcDir into dest. The
// destination directory is created if needed and an existing archive is
// replaced rather than updated.
func (z Zipper) Zip(ctx context.Context, srcDir, dest string) error {
	command := z.Command
	if command == "" {
		command = DefaultCommand
	}
	bin, err := exec.LookPath(command)
	if err != nil {
		return fmt.Errorf("archive command %q not found: %w", command, err)
	}

	absDest, err := filepath.Abs(dest)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dest, err)
	}
	if err := os.MkdirAll(filepath.Dir(absDest), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(absDest), err)
	}
	if err := os.Remove(absDest); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing stale archive %s: %w", absDest, err)
	}

	entries, err := Entries(srcDir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return fmt.Errorf("nothing to archive in %s", srcDir)
	}

	args := append([]string{"-q", "-r", absDest}, entries...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = srcDir

	var stderr bytes.Buffer
	cmd.Stdout = z.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = io.Discard
	}
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Command: command, ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("running %s: %w", command, err)
	}
	return nil
}

// Entries returns the sorted top-level names in dir that a shell `*` would
// expand to.
func Entries(dir string) ([]string, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var names []string
	for _, item := range items {
		if strings.HasPrefix(item.Name(), ".") {
			continue
		}
		names = append(names, item.Name())
	}
	sort.Strings(names)
	return names, nil
}
