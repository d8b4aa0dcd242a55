package usecase

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahmed-ajalil/GFG-Flights-API/internal/domain/entity"
	"github.com/ahmed-ajalil/GFG-Flights-API/pkg/logger"
)

// TemplateBinder validates client-supplied template variables and resolves
// them into a canonical VariableSet before any send logic runs.
type TemplateBinder struct {
	logger logger.Logger
}

// NewTemplateBinder creates a new template binder
func NewTemplateBinder(logger logger.Logger) *TemplateBinder {
	return &TemplateBinder{logger: logger}
}

// Bind merges an ordered variable list and a keyed variable map into one
// numerically-keyed set. Ordered element i becomes key (i+1); keyed entries
// overwrite colliding ordered-derived ones. The result must be non-empty,
// at most entity.MaxTemplateVariables entries, with every key a positive
// decimal integer.
func (b *TemplateBinder) Bind(ordered []string, keyed map[string]string) (entity.VariableSet, error) {
	vars := entity.VariableSet{}

	for i, value := range ordered {
		if strings.TrimSpace(value) == "" {
			// Providers reject empty placeholder values.
			value = " "
		}
		vars[strconv.Itoa(i+1)] = value
	}

	for key, value := range keyed {
		if strings.TrimSpace(value) == "" {
			value = " "
		}
		vars[key] = value
	}

	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: at least one variable must be supplied via variables or variablesMap", entity.ErrValidation)
	}
	if len(vars) > entity.MaxTemplateVariables {
		return nil, fmt.Errorf("%w: too many variables (%d, limit %d)", entity.ErrValidation, len(vars), entity.MaxTemplateVariables)
	}
	for key := range vars {
		if n, err := strconv.Atoi(key); err != nil || n < 1 {
			return nil, fmt.Errorf("%w: variable keys must be positive numeric strings, got %q", entity.ErrValidation, key)
		}
	}

	return vars, nil
}

// BindUnified places a single free-text body under key "1", bypassing the
// merge rules. Only trim and non-empty checks apply.
func (b *TemplateBinder) BindUnified(body string) (entity.VariableSet, error) {
	trimmed := strings.TrimSpace(normalizeNewlines(body))
	if trimmed == "" {
		return nil, fmt.Errorf("%w: message body must not be empty", entity.ErrValidation)
	}
	return entity.VariableSet{"1": trimmed}, nil
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

// normalizeNewlines converts CRLF to LF and collapses runs of blank lines.
func normalizeNewlines(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return blankRuns.ReplaceAllString(text, "\n\n")
}
