package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoChoices is returned by chat backends when the completion carries no choices.
var ErrNoChoices = errors.New("no choices in completion")

// EstimatePrompt wraps a job description in the estimating instruction.
func EstimatePrompt(job string) string {
	return fmt.Sprintf("Estimate this job: %s. Include labor, materials, and total cost.", job)
}

// IsBlank reports whether a prompt should be ignored.
func IsBlank(prompt string) bool {
	return strings.TrimSpace(prompt) == ""
}
