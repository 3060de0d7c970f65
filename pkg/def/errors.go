package def

import (
	"fmt"

	"github.com/ratchet-dev/ratchet/pkg/domain"
)

// RuleError reports a rule referencing a name the definition never declares.
type RuleError struct {
	Index int    // position in the rules list
	Field string // "from", "on" or "to"
	Name  string // the undeclared name
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %d: %s: %s %q", e.Index, e.Field, domain.ErrUnknownName, e.Name)
}

func (e *RuleError) Unwrap() error { return domain.ErrUnknownName }

// AggregateError collects every problem found in a definition.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d definition errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns the individual problems if err is an
// AggregateError, nil otherwise.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
