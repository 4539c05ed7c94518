package shopping

import "strings"

// Validate checks the raw dialog inputs. Both problems are reported together.
func Validate(name, amountText string) error {
	var problems []Problem
	if strings.TrimSpace(name) == "" {
		problems = append(problems, EmptyName)
	}
	if strings.TrimSpace(amountText) == "" {
		problems = append(problems, EmptyAmount)
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
