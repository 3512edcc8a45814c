package prompt

import (
	"errors"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrCancelled is returned when the user interrupts a prompt
var ErrCancelled = errors.New("prompt cancelled")

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	InputPath(message string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", mapErr(err)
	}
	return result, nil
}

// InputPath asks for a filesystem path with tab completion
func (p *SurveyPrompter) InputPath(message string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Suggest: completePath,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", mapErr(err)
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, mapErr(err)
	}
	return result, nil
}

func completePath(toComplete string) []string {
	matches, _ := filepath.Glob(toComplete + "*")
	return matches
}

func mapErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrCancelled
	}
	return err
}

// Ensure SurveyPrompter implements Prompter
var _ Prompter = (*SurveyPrompter)(nil)
