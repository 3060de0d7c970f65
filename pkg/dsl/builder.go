package dsl

import "github.com/ratchet-dev/ratchet/pkg/domain"

// Builder accumulates rules under named states and messages.
type Builder struct {
	states     map[string]domain.StateID
	msgs       map[string]domain.MsgType
	stateNames []string
	msgNames   []string
	rules      []domain.Rule
}

// New creates an empty builder.
func New() *Builder {
	return &Builder{
		states: make(map[string]domain.StateID),
		msgs:   make(map[string]domain.MsgType),
	}
}

// State enters the named state, creating it on first mention.
func (b *Builder) State(name string) *StateBuilder {
	return &StateBuilder{b: b, id: b.stateID(name)}
}

// Build seals the rule list with the sentinel row and returns it together
// with the name tables. The builder stays usable; each Build snapshots the
// rules declared so far.
func (b *Builder) Build() Def {
	rules := make([]domain.Rule, len(b.rules), len(b.rules)+1)
	copy(rules, b.rules)
	rules = append(rules, domain.End())

	return Def{
		Rules:      rules,
		StateNames: append([]string(nil), b.stateNames...),
		MsgNames:   append([]string(nil), b.msgNames...),
	}
}

func (b *Builder) stateID(name string) domain.StateID {
	if id, ok := b.states[name]; ok {
		return id
	}
	id := domain.StateID(len(b.stateNames))
	b.states[name] = id
	b.stateNames = append(b.stateNames, name)
	return id
}

func (b *Builder) msgID(name string) domain.MsgType {
	if id, ok := b.msgs[name]; ok {
		return id
	}
	id := domain.MsgType(len(b.msgNames))
	b.msgs[name] = id
	b.msgNames = append(b.msgNames, name)
	return id
}

// StateBuilder declares rules for one state.
type StateBuilder struct {
	b  *Builder
	id domain.StateID
}

// On begins a rule for the named message. Complete it with To, Stay or End;
// a rule left unfinished is not part of the table.
func (s *StateBuilder) On(msg string, h domain.Handler) *RuleBuilder {
	return &RuleBuilder{s: s, msg: s.b.msgID(msg), handler: h}
}

// RuleBuilder completes one rule.
type RuleBuilder struct {
	s       *StateBuilder
	msg     domain.MsgType
	handler domain.Handler
	data    any
}

// Data attaches a rule data value, handed to the handler on every dispatch.
func (r *RuleBuilder) Data(data any) *RuleBuilder {
	r.data = data
	return r
}

// To finishes the rule, transitioning to the named state.
func (r *RuleBuilder) To(state string) *StateBuilder {
	return r.finish(r.s.b.stateID(state))
}

// Stay finishes the rule, looping back to the current state.
func (r *RuleBuilder) Stay() *StateBuilder {
	return r.finish(r.s.id)
}

// End finishes the rule as terminal: after its handler the automaton is
// destroyed. Pair it with a completing handler such as registry.Complete.
func (r *RuleBuilder) End() *StateBuilder {
	return r.finish(domain.Terminal)
}

func (r *RuleBuilder) finish(next domain.StateID) *StateBuilder {
	r.s.b.rules = append(r.s.b.rules, domain.Rule{
		CurrentState: r.s.id,
		Msg:          r.msg,
		Handler:      r.handler,
		Data:         r.data,
		NextState:    next,
	})
	return r.s
}

// Def is a built table: a sentinel-terminated rule list plus the name tables
// that map ids back to the builder's names.
type Def struct {
	Rules      []domain.Rule
	StateNames []string
	MsgNames   []string
}

// StateID resolves a state name to its id.
func (d Def) StateID(name string) (domain.StateID, bool) {
	for i, n := range d.StateNames {
		if n == name {
			return domain.StateID(i), true
		}
	}
	return 0, false
}

// MsgID resolves a message name to its id.
func (d Def) MsgID(name string) (domain.MsgType, bool) {
	for i, n := range d.MsgNames {
		if n == name {
			return domain.MsgType(i), true
		}
	}
	return 0, false
}
