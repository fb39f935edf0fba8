package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/project-install/internal/messages"
	"github.com/conn-castle/project-install/internal/terminal"
)

var isTerminal = terminal.IsInteractive
var statPath = os.Stat
var confirmFunc = huhConfirm
var runConfirmForm = func(form *huh.Form) error { return form.Run() }

// confirmKeyMap lets Esc cancel a prompt the same way Ctrl+C does.
func confirmKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "cancel"))
	return km
}

// newConfirmForm builds the yes/no form used by huhConfirm.
func newConfirmForm(title string, value *bool) *huh.Form {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(messages.PromptYes).
				Negative(messages.PromptNo).
				Value(value),
		),
	)
	return form.WithKeyMap(confirmKeyMap())
}

// huhConfirm asks a yes/no question in the terminal. The form renders on stderr so stdout stays scriptable.
func huhConfirm(title string) (bool, error) {
	confirmed := false
	form := newConfirmForm(title, &confirmed)
	form.WithProgramOptions(tea.WithOutput(os.Stderr))
	if err := runConfirmForm(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, fmt.Errorf(messages.PromptAborted)
		}
		return false, err
	}
	return confirmed, nil
}

// confirmRemoval reports whether path may be deleted. Missing paths, --yes, and
// non-interactive sessions never prompt.
func confirmRemoval(yes bool, promptFmt string, path string) (bool, error) {
	if yes || !isTerminal() {
		return true, nil
	}
	if _, err := statPath(path); err != nil {
		return true, nil
	}
	return confirmFunc(fmt.Sprintf(promptFmt, path))
}
