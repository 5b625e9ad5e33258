package slides

import (
	"fmt"
	"strings"
)

// RecoveryError means no parsable JSON object could be found anywhere in the
// raw model text. There is nothing to sanitize, so it aborts the build.
type RecoveryError struct {
	Reason string
}

func (e *RecoveryError) Error() string {
	return fmt.Sprintf("json recovery failed: %s", e.Reason)
}

// Issue is a single structural violation, addressed by a slash-separated path
// into the payload (e.g. "slides/2/bullets/0").
type Issue struct {
	Path    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// SlideValidationError carries every structural violation found in a payload,
// sorted by path.
type SlideValidationError struct {
	Issues []Issue
}

func (e *SlideValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "slide payload validation failed"
	}
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.String())
	}
	return strings.Join(parts, "; ")
}
