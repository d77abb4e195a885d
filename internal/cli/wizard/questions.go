package wizard

import (
	"errors"
	"fmt"

	"github.com/rbxts-luau/rbxts-luau/internal/config"
)

// Questions returns the prompts needed to complete known. Fields already set
// are not asked again. defaultPackageName pre-fills the package name prompt.
func Questions(known Result, defaultPackageName string) []Question {
	var qs []Question
	if known.Username == "" {
		qs = append(qs, Question{
			ID:          QuestionUsername,
			Title:       "Wally username",
			Description: "Scope the package is published under.",
			Required:    true,
		})
	}
	if known.PackageName == "" {
		qs = append(qs, Question{
			ID:          QuestionPackageName,
			Title:       "Package name",
			Description: "Name on the registry. Must not contain '@' or '/'.",
			Default:     defaultPackageName,
			Required:    true,
			Validate:    validatePackageName,
		})
	}
	return qs
}

func validatePackageName(name string) error {
	if err := config.ValidatePackageName(name); err != nil {
		if errors.Is(err, config.ErrInvalidPackageName) {
			return fmt.Errorf("package name %q must not contain '@' or '/'", name)
		}
		return err
	}
	return nil
}
