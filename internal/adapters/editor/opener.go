package editor

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"hvacguide/internal/ports"
)

// ErrNoEditor is returned when neither $VISUAL, $EDITOR nor a fallback editor is found
var ErrNoEditor = errors.New("no editor found: set $EDITOR environment variable")

// fallbackEditors are tried in order when no environment variable is set
var fallbackEditors = []string{"nvim", "vim", "vi", "nano"}

// Opener implements ports.EditorOpener
type Opener struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookPath: exec.LookPath, getenv: os.Getenv}
}

// OpenFile opens a file in the user's preferred editor
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}
	return nil
}

// Command returns an exec.Cmd for opening a file in the editor.
// Editor variables may carry arguments ("code --wait").
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	argv := o.resolve()
	if len(argv) == 0 {
		return nil, ErrNoEditor
	}

	cmd := exec.Command(argv[0], append(argv[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// Available reports whether an editor can be resolved
func (o *Opener) Available() bool {
	return len(o.resolve()) > 0
}

// resolve returns the editor command line: $VISUAL, then $EDITOR, then
// the first fallback editor on $PATH
func (o *Opener) resolve() []string {
	for _, env := range []string{"VISUAL", "EDITOR"} {
		if fields := strings.Fields(o.getenv(env)); len(fields) > 0 {
			return fields
		}
	}

	for _, editor := range fallbackEditors {
		if path, err := o.lookPath(editor); err == nil {
			return []string{path}
		}
	}
	return nil
}
