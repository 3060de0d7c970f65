package def

import "fmt"

// Validate checks structural consistency: declared names must be unique and
// every rule must reference declared states and messages. Duplicate
// (from, on) pairs are legal here; the engine resolves them first-match-wins
// and the vet tooling reports them.
func (d *Definition) Validate() error {
	var errs []error

	if len(d.States) == 0 {
		errs = append(errs, fmt.Errorf("definition declares no states"))
	}

	seenStates := make(map[string]bool, len(d.States))
	for _, s := range d.States {
		if s == TerminalName {
			errs = append(errs, fmt.Errorf("state name %q is reserved for the terminal marker", TerminalName))
			continue
		}
		if seenStates[s] {
			errs = append(errs, fmt.Errorf("duplicate state name %q", s))
		}
		seenStates[s] = true
	}

	seenMsgs := make(map[string]bool, len(d.Messages))
	for _, m := range d.Messages {
		if seenMsgs[m] {
			errs = append(errs, fmt.Errorf("duplicate message name %q", m))
		}
		seenMsgs[m] = true
	}

	for i, r := range d.Rules {
		if !seenStates[r.From] {
			errs = append(errs, &RuleError{Index: i, Field: "from", Name: r.From})
		}
		if !seenMsgs[r.On] {
			errs = append(errs, &RuleError{Index: i, Field: "on", Name: r.On})
		}
		if r.To != TerminalName && !seenStates[r.To] {
			errs = append(errs, &RuleError{Index: i, Field: "to", Name: r.To})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
