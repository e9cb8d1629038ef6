package ports

import "os/exec"

// EditorOpener opens article source files in an external editor
type EditorOpener interface {
	// OpenFile opens path and blocks until the editor exits
	OpenFile(path string) error

	// Command returns the editor process for path without starting it,
	// for handing to bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)

	// Available reports whether any editor could be resolved
	Available() bool
}
