// Package terminal reports whether the process is attached to an interactive terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
// Confirmation prompts are only shown when this is true.
func IsInteractive() bool {
	return Interactive(os.Stdin, os.Stdout)
}

// Interactive reports whether every file is a terminal. A nil file is never a terminal.
func Interactive(files ...*os.File) bool {
	if len(files) == 0 {
		return false
	}
	for _, file := range files {
		if file == nil || !isTerminal(int(file.Fd())) {
			return false
		}
	}
	return true
}
