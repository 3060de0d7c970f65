// Package def loads declarative machine definitions from YAML or JSON.
//
// A definition names its states and messages and lists transition rules
// between them. Handlers are referenced by name and resolved through a
// registry at build time, so the same file drives the CLI, tests and
// embedding hosts alike.
//
//	name: door
//	states: [closed, open]
//	messages: [open, close, demolish]
//	rules:
//	  - {from: closed, on: open, to: open}
//	  - {from: open, on: close, to: closed}
//	  - {from: open, on: demolish, to: _}
//
// "_" in the to field marks the terminal transition. Rules may carry an
// optional handler name and a free-form data value; rules without a handler
// get "advance", or "complete" when they target the terminal marker.
//
// Loading and wiring:
//
//	d, err := def.Load("door.yaml")
//	if err != nil { ... }
//	rules, err := d.Build(registry.New())
//	if err != nil { ... }
//	m, err := ratchet.New(rules)
//
// The definition's States and Messages slices double as the name tables for
// graph rendering. A top-level meta block is preserved verbatim and can be
// decoded into host configuration structs with DecodeMeta.
package def
