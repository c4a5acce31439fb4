package usecase

import (
	"fmt"

	"github.com/xavierca1/solarleads/internal/entity"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateFollowUpRules confere a lista inteira; o campo vem prefixado com a posição da regra.
func ValidateFollowUpRules(rules []entity.FollowUpRule) []ValidationError {
	var errors []ValidationError
	seen := make(map[string]bool, len(rules))

	for i, rule := range rules {
		field := fmt.Sprintf("rules[%d]", i)

		if err := rule.Validate(); err != nil {
			errors = append(errors, ValidationError{field, err.Error()})
			continue
		}
		if seen[rule.ID] {
			errors = append(errors, ValidationError{field, "duplicated id " + rule.ID})
		}
		seen[rule.ID] = true
	}

	return errors
}
