package def

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/registry"
)

// TerminalName marks the terminal transition in a rule's to field.
const TerminalName = "_"

// Default handler names applied to rules that do not name one.
const (
	DefaultHandler         = "advance"
	DefaultTerminalHandler = "complete"
)

// Definition is the on-disk form of a rule table.
type Definition struct {
	Name     string         `yaml:"name" json:"name"`
	Doc      string         `yaml:"doc,omitempty" json:"doc,omitempty"`
	States   []string       `yaml:"states" json:"states"`
	Messages []string       `yaml:"messages" json:"messages"`
	Rules    []RuleDef      `yaml:"rules" json:"rules"`
	Meta     map[string]any `yaml:"meta,omitempty" json:"meta,omitempty"`
}

// RuleDef is a single transition row. From and On reference declared names;
// To references a declared state or the terminal marker.
type RuleDef struct {
	From    string `yaml:"from" json:"from"`
	On      string `yaml:"on" json:"on"`
	To      string `yaml:"to" json:"to"`
	Handler string `yaml:"handler,omitempty" json:"handler,omitempty"`
	Data    any    `yaml:"data,omitempty" json:"data,omitempty"`
}

// Parse reads a YAML definition and validates it.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a definition file. JSON is accepted alongside YAML so generated
// definitions work too.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		var d Definition
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, fmt.Errorf("parse definition %s: %w", path, err)
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return &d, nil
	}

	return Parse(data)
}

// StateID resolves a declared state name to its id, its position in the
// states list.
func (d *Definition) StateID(name string) (domain.StateID, bool) {
	for i, s := range d.States {
		if s == name {
			return domain.StateID(i), true
		}
	}
	return 0, false
}

// MsgID resolves a declared message name to its id.
func (d *Definition) MsgID(name string) (domain.MsgType, bool) {
	for i, m := range d.Messages {
		if m == name {
			return domain.MsgType(i), true
		}
	}
	return 0, false
}

// Build resolves the definition into a rule list ready for the engine,
// sentinel row included. Handler names are looked up in reg; rules without
// one default to "advance", or "complete" on terminal rules. The
// definition's States and Messages slices are the matching name tables.
func (d *Definition) Build(reg *registry.Registry) ([]domain.Rule, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	rules := make([]domain.Rule, 0, len(d.Rules)+1)
	for i, r := range d.Rules {
		from, _ := d.StateID(r.From)
		msg, _ := d.MsgID(r.On)

		to := domain.Terminal
		if r.To != TerminalName {
			to, _ = d.StateID(r.To)
		}

		name := r.Handler
		if name == "" {
			name = DefaultHandler
			if to == domain.Terminal {
				name = DefaultTerminalHandler
			}
		}
		h, err := reg.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}

		rules = append(rules, domain.Rule{
			CurrentState: from,
			Msg:          msg,
			Handler:      h,
			Data:         r.Data,
			NextState:    to,
		})
	}

	return append(rules, domain.End()), nil
}

// DecodeMeta decodes the free-form meta block into out, typically a struct
// with mapstructure tags.
func (d *Definition) DecodeMeta(out any) error {
	if err := mapstructure.Decode(d.Meta, out); err != nil {
		return fmt.Errorf("decode meta: %w", err)
	}
	return nil
}
