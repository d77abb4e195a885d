// Package wizard prompts for the publishing identity of a new package.
package wizard

import (
	"errors"
	"io"
)

// Question IDs.
const (
	QuestionUsername    = "username"
	QuestionPackageName = "package_name"
)

// Result holds the answers collected by the wizard.
type Result struct {
	Username    string
	PackageName string
}

// Question defines a single text prompt.
type Question struct {
	ID          string
	Title       string
	Description string
	Default     string
	Required    bool
	// Validate runs on the normalised answer after the required check.
	Validate func(string) error
}

// Options configure the terminal the wizard runs on. Nil fields use the
// process stdin and stdout.
type Options struct {
	Input  io.Reader
	Output io.Writer
}

var (
	// ErrCancelled is returned when the user cancels the wizard.
	ErrCancelled = errors.New("wizard cancelled by user")
	// ErrNoQuestions is returned when no questions are provided.
	ErrNoQuestions = errors.New("no questions provided")
	// ErrRequired is returned for an empty answer to a required question.
	ErrRequired = errors.New("a value is required")
)
