package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/unicode/norm"
)

// Run asks each question and returns the collected answers, starting from
// known. Each question runs as its own huh.Form.
func Run(ctx context.Context, questions []Question, known Result, opts Options) (*Result, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}

	result := known
	theme := newWizardTheme()

	for i := range questions {
		q := &questions[i]

		form := huh.NewForm(huh.NewGroup(buildInputField(q, &result))).
			WithTheme(theme).
			WithAccessible(false)
		if opts.Input != nil {
			form = form.WithInput(opts.Input)
		}
		if opts.Output != nil {
			form = form.WithOutput(opts.Output)
		}

		if err := form.RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("wizard error: %w", err)
		}
	}

	return &result, nil
}

// buildInputField creates a huh.Input whose validator stores the answer.
func buildInputField(q *Question, result *Result) *huh.Input {
	var value string
	if q.Default != "" {
		value = q.Default
	}

	inp := huh.NewInput().
		Title(q.Title).
		Description(q.Description).
		Value(&value)

	if q.Default != "" {
		inp = inp.Placeholder(q.Default)
	}

	return inp.Validate(func(val string) error {
		v, err := Answer(q, val)
		if err != nil {
			return err
		}
		saveAnswer(q.ID, v, result)
		return nil
	})
}

// Answer turns raw input into the stored value for q: surrounding space is
// trimmed, an empty answer takes the default, and the result is NFC
// normalised before validation.
func Answer(q *Question, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		v = q.Default
	}
	v = norm.NFC.String(v)

	if q.Required && v == "" {
		return "", ErrRequired
	}
	if q.Validate != nil {
		if err := q.Validate(v); err != nil {
			return "", err
		}
	}
	return v, nil
}

// saveAnswer stores an answer in the result.
func saveAnswer(id, value string, result *Result) {
	switch id {
	case QuestionUsername:
		result.Username = value
	case QuestionPackageName:
		result.PackageName = value
	}
}

// newWizardTheme creates a huh.Theme in the rbxts-luau palette.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#0077C2", Dark: "#00A2FF"}
	secondary := lipgloss.AdaptiveColor{Light: "#5B21B6", Dark: "#7C3AED"}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(primary)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(muted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(secondary)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description

	return t
}
