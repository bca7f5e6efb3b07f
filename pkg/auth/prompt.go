package auth

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// Prompter abstracts the interactive prompts the setup guide needs, so the
// flow can be driven by scripted answers in tests.
type Prompter interface {
	Confirm(title, description string, def bool) (bool, error)
	Input(title, placeholder string, validate func(string) error) (string, error)
}

type huhPrompter struct{}

// NewPrompter returns the terminal-backed Prompter.
func NewPrompter() Prompter { return huhPrompter{} }

func (huhPrompter) Confirm(title, description string, def bool) (bool, error) {
	value := def
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description(description).
			Value(&value),
	))
	if err := form.Run(); err != nil {
		return false, mapPromptErr(err)
	}
	return value, nil
}

func (huhPrompter) Input(title, placeholder string, validate func(string) error) (string, error) {
	var value string
	input := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value)
	if validate != nil {
		input = input.Validate(validate)
	}
	form := huh.NewForm(huh.NewGroup(input))
	if err := form.Run(); err != nil {
		return "", mapPromptErr(err)
	}
	return value, nil
}

func mapPromptErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return newError(KindCancelled, nil)
	}
	return err
}
