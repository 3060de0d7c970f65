package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/ratchet-dev/ratchet"
	"github.com/ratchet-dev/ratchet/internal/presentation/tui"
	"github.com/ratchet-dev/ratchet/pkg/def"
	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/registry"
)

// Scenario scripts a machine run: which definition to load and the steps to
// play against it. Steps stay raw until played; each one is decoded into a
// Step on demand.
type Scenario struct {
	Name       string           `yaml:"name"`
	Definition string           `yaml:"definition"`
	Steps      []map[string]any `yaml:"steps"`
}

// Step is one decoded scenario instruction. Exactly one action is set.
type Step struct {
	// Spawn creates an automaton at the named state, optionally keeping it
	// addressable under As and carrying Payload.
	Spawn   string `mapstructure:"spawn"`
	As      string `mapstructure:"as"`
	Payload any    `mapstructure:"payload"`

	// Send queues a message.
	Send *SendInstr `mapstructure:"send"`

	// Run executes that many passes; Drain runs to idle within a budget.
	Run   int `mapstructure:"run"`
	Drain int `mapstructure:"drain"`

	// Expect asserts an automaton's current state.
	Expect *ExpectInstr `mapstructure:"expect"`
}

// SendInstr queues a message for the automaton addressed by To, or the last
// spawned one when To is empty.
type SendInstr struct {
	To      string `mapstructure:"to"`
	Msg     string `mapstructure:"msg"`
	Payload any    `mapstructure:"payload"`
}

// ExpectInstr asserts something about the automaton addressed by Of: either
// its current state, or that it has been destroyed.
type ExpectInstr struct {
	Of        string `mapstructure:"of"`
	State     string `mapstructure:"state"`
	Destroyed bool   `mapstructure:"destroyed"`
}

// LoadScenario reads a scenario file. The definition path is resolved
// relative to the scenario's own directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	if sc.Definition == "" {
		return nil, fmt.Errorf("scenario %s names no definition", path)
	}
	if !filepath.IsAbs(sc.Definition) {
		sc.Definition = filepath.Join(filepath.Dir(path), sc.Definition)
	}

	return &sc, nil
}

func decodeStep(raw map[string]any) (Step, error) {
	var st Step
	if err := mapstructure.Decode(raw, &st); err != nil {
		return Step{}, fmt.Errorf("decode step: %w", err)
	}

	actions := 0
	if st.Spawn != "" {
		actions++
	}
	if st.Send != nil {
		actions++
	}
	if st.Run > 0 {
		actions++
	}
	if st.Drain > 0 {
		actions++
	}
	if st.Expect != nil {
		actions++
	}
	if actions == 0 {
		return Step{}, fmt.Errorf("empty or unknown instruction %v", raw)
	}
	if actions > 1 {
		return Step{}, fmt.Errorf("instruction mixes multiple actions %v", raw)
	}

	return st, nil
}

// player holds the live objects a scenario run accumulates.
type player struct {
	def       *def.Definition
	machine   *ratchet.Machine
	handles   map[string]domain.Automaton
	last      domain.Automaton
	destroyed map[domain.Automaton]bool
	out       io.Writer
	quiet     bool
}

// PlayScenario builds the machine a scenario names and plays its steps.
// Trace and system output go to out.
func PlayScenario(sc *Scenario, out io.Writer, opts RunOptions) error {
	logger := createLogger(opts.Debug)

	d, err := def.Load(sc.Definition)
	if err != nil {
		return err
	}

	reg := registry.New()
	reg.Register("log", registry.LogHandler(logger))

	rules, err := d.Build(reg)
	if err != nil {
		return err
	}

	p := &player{
		def:       d,
		handles:   make(map[string]domain.Automaton),
		destroyed: make(map[domain.Automaton]bool),
		out:       out,
		quiet:     opts.Quiet,
	}

	tracer := tui.NewTracer(out)
	machine, err := ratchet.New(rules,
		ratchet.WithLogger(logger),
		ratchet.WithObserver(func(from domain.StateID, msg domain.MsgType, to domain.StateID) {
			if opts.Quiet {
				return
			}
			tracer.Transition(stateName(d, from), msgName(d, msg), stateName(d, to))
		}),
	)
	if err != nil {
		return err
	}
	p.machine = machine
	defer machine.Close()

	for i, raw := range sc.Steps {
		st, err := decodeStep(raw)
		if err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		if err := p.play(st); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	stats := p.machine.Stats()
	if !p.quiet {
		systemMessage(out, "done: %d live automatons (new %d, active %d, inactive %d)",
			stats.Total(), stats.New, stats.Active, stats.Inactive)
	}
	return nil
}

func (p *player) play(st Step) error {
	switch {
	case st.Spawn != "":
		return p.spawn(st)
	case st.Send != nil:
		return p.send(st.Send)
	case st.Run > 0:
		return p.run(st.Run)
	case st.Drain > 0:
		return p.drain(st.Drain)
	case st.Expect != nil:
		return p.expect(st.Expect)
	}
	return nil
}

func (p *player) spawn(st Step) error {
	id, ok := p.def.StateID(st.Spawn)
	if !ok {
		return fmt.Errorf("spawn: %w: state %q", domain.ErrUnknownName, st.Spawn)
	}

	var a domain.Automaton
	a, err := p.machine.Spawn(id,
		ratchet.WithPayload(st.Payload),
		ratchet.WithDestroyHook(func(any) { p.destroyed[a] = true }),
	)
	if err != nil {
		return fmt.Errorf("spawn: %w", err)
	}

	p.last = a
	if st.As != "" {
		p.handles[st.As] = a
	}
	if !p.quiet {
		label := st.As
		if label == "" {
			label = "automaton"
		}
		systemMessage(p.out, "spawned %s at %q", label, st.Spawn)
	}
	return nil
}

func (p *player) send(instr *SendInstr) error {
	target, err := p.resolve(instr.To)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}

	msg, ok := p.def.MsgID(instr.Msg)
	if !ok {
		return fmt.Errorf("send: %w: message %q", domain.ErrUnknownName, instr.Msg)
	}

	if err := target.Send(msg, instr.Payload); err != nil {
		return fmt.Errorf("send %q: %w", instr.Msg, err)
	}
	return nil
}

func (p *player) run(passes int) error {
	for i := 0; i < passes; i++ {
		if _, err := p.machine.Run(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

func (p *player) drain(budget int) error {
	passes, err := p.machine.RunToIdle(budget)
	if err != nil {
		return fmt.Errorf("drain: %w", err)
	}
	if !p.quiet {
		systemMessage(p.out, "drained in %d passes", passes)
	}
	return nil
}

func (p *player) expect(instr *ExpectInstr) error {
	target, err := p.resolve(instr.Of)
	if err != nil {
		return fmt.Errorf("expect: %w", err)
	}

	if instr.Destroyed {
		if instr.State != "" {
			return fmt.Errorf("expect: destroyed and state cannot be combined")
		}
		if !p.destroyed[target] {
			return fmt.Errorf("expect: automaton is still live at %q",
				stateName(p.def, target.Current()))
		}
		return nil
	}

	want, ok := p.def.StateID(instr.State)
	if !ok {
		return fmt.Errorf("expect: %w: state %q", domain.ErrUnknownName, instr.State)
	}

	if got := target.Current(); got != want {
		return fmt.Errorf("expect: automaton is at %q, want %q",
			stateName(p.def, got), instr.State)
	}
	return nil
}

func (p *player) resolve(handle string) (domain.Automaton, error) {
	if handle == "" {
		if p.last == nil {
			return nil, fmt.Errorf("no automaton spawned yet")
		}
		return p.last, nil
	}
	a, ok := p.handles[handle]
	if !ok {
		return nil, fmt.Errorf("%w: automaton %q", domain.ErrUnknownName, handle)
	}
	return a, nil
}
