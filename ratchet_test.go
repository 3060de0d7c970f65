package ratchet_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/ratchet-dev/ratchet"
	"github.com/ratchet-dev/ratchet/pkg/domain"
	"github.com/ratchet-dev/ratchet/pkg/middleware"
)

func advance(domain.Automaton, any, any, domain.MsgType, any) (domain.Outcome, error) {
	return domain.Advance, nil
}

func TestNew_CompileErrors(t *testing.T) {
	t.Run("missing sentinel", func(t *testing.T) {
		_, err := ratchet.New([]domain.Rule{
			{CurrentState: 0, Msg: 0, Handler: advance, NextState: 0},
		})
		if !errors.Is(err, domain.ErrMissingSentinel) {
			t.Errorf("Expected ErrMissingSentinel, got %v", err)
		}
	})

	t.Run("nil handler", func(t *testing.T) {
		_, err := ratchet.New([]domain.Rule{
			{CurrentState: 0, Msg: 0, Handler: nil, NextState: 0},
			domain.End(),
		})
		if !errors.Is(err, domain.ErrNilHandler) {
			t.Errorf("Expected ErrNilHandler, got %v", err)
		}
	})

	t.Run("empty table compiles", func(t *testing.T) {
		m, err := ratchet.New([]domain.Rule{domain.End()})
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer m.Close()
		if got := m.Graph(nil, nil); got != "digraph G {\n}\n" {
			t.Errorf("Unexpected graph for empty table: %q", got)
		}
	})
}

func TestMachine_Lifecycle(t *testing.T) {
	// The walkthrough scenario: a three-state pipeline where the first two
	// handlers chain-send the next message and the final external message
	// completes the automaton on a terminal rule.
	const (
		stateRecv domain.StateID = iota
		stateParse
		stateReply
	)
	const (
		msgData domain.MsgType = iota
		msgParsed
		msgSent
	)
	stateNames := []string{"RECV", "PARSE", "REPLY"}
	msgNames := []string{"DATA", "PARSED", "SENT"}

	type connState struct {
		parsed  int
		replies int
		closed  bool
	}

	onData := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		return domain.Advance, a.Send(msgParsed, nil)
	}
	onParsed := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		data.(*connState).parsed++
		return domain.Advance, nil
	}
	onSent := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
		data.(*connState).replies++
		return domain.Complete, nil
	}

	conn := &connState{}
	m, err := ratchet.New([]domain.Rule{
		{CurrentState: stateRecv, Msg: msgData, Handler: onData, NextState: stateParse},
		{CurrentState: stateParse, Msg: msgParsed, Handler: onParsed, NextState: stateReply},
		{CurrentState: stateReply, Msg: msgSent, Handler: onSent, NextState: domain.Terminal},
		domain.End(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	a, err := m.Spawn(stateRecv,
		ratchet.WithPayload(conn),
		ratchet.WithDestroyHook(func(p any) { p.(*connState).closed = true }))
	if err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	// A. Deliver the first message and run one pass. The chained send is
	// deferred, so the pass reports more work.
	if err := a.Send(msgData, nil); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	more, err := m.Run()
	if err != nil {
		t.Fatalf("Run 1 failed: %v", err)
	}
	if !more || a.Current() != stateParse {
		t.Fatalf("After pass 1: more=%v state=%d, want more=true state=%d", more, a.Current(), stateParse)
	}

	// B. Second pass consumes the chained message.
	more, err = m.Run()
	if err != nil {
		t.Fatalf("Run 2 failed: %v", err)
	}
	if !more || a.Current() != stateReply {
		t.Fatalf("After pass 2: more=%v state=%d, want more=true state=%d", more, a.Current(), stateReply)
	}
	if conn.parsed != 1 {
		t.Errorf("Expected one parse, got %d", conn.parsed)
	}

	// C. An external message completes the automaton; the follow-up pass
	// finds nothing queued.
	if err := a.Send(msgSent, nil); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	more, err = m.Run()
	if err != nil {
		t.Fatalf("Run 3 failed: %v", err)
	}
	if more {
		t.Error("Expected no work after completion")
	}
	if conn.replies != 1 || !conn.closed {
		t.Errorf("Expected reply counted and hook fired, got %+v", conn)
	}
	if err := a.Send(msgData, nil); !errors.Is(err, domain.ErrDestroyed) {
		t.Errorf("Expected ErrDestroyed after completion, got %v", err)
	}

	// D. The compiled table renders with the supplied names.
	wantGraph := "digraph G {\n" +
		"  RECV -> PARSE [label=\"DATA\"];\n" +
		"  PARSE -> REPLY [label=\"PARSED\"];\n" +
		"  REPLY -> _ [label=\"SENT\"];\n" +
		"}\n"
	if got := m.Graph(stateNames, msgNames); got != wantGraph {
		t.Errorf("Graph mismatch\ngot:\n%s\nwant:\n%s", got, wantGraph)
	}
}

func TestMachine_ObserverOption(t *testing.T) {
	const (
		stateA domain.StateID = iota
		stateB
	)
	var first, second []domain.TransitionRecord
	obs := domain.CombineObservers(
		func(from domain.StateID, msg domain.MsgType, to domain.StateID) {
			first = append(first, domain.TransitionRecord{From: from, Msg: msg, To: to})
		},
		func(from domain.StateID, msg domain.MsgType, to domain.StateID) {
			second = append(second, domain.TransitionRecord{From: from, Msg: msg, To: to})
		},
	)

	m, err := ratchet.New([]domain.Rule{
		{CurrentState: stateA, Msg: 0, Handler: advance, NextState: stateB},
		{CurrentState: stateB, Msg: 0, Handler: advance, NextState: stateA},
		domain.End(),
	}, ratchet.WithObserver(obs))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer m.Close()

	a, _ := m.Spawn(stateA)
	a.Send(0, nil)
	a.Send(0, nil)
	if _, err := m.RunToIdle(0); err != nil {
		t.Fatalf("RunToIdle failed: %v", err)
	}

	want := []domain.TransitionRecord{
		{From: stateA, Msg: 0, To: stateB},
		{From: stateB, Msg: 0, To: stateA},
	}
	for _, got := range [][]domain.TransitionRecord{first, second} {
		if len(got) != len(want) {
			t.Fatalf("Expected %d observations, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("Observation %d mismatch: got %+v, want %+v", i, got[i], want[i])
			}
		}
	}
}

func TestMachine_MiddlewareOption(t *testing.T) {
	t.Run("recover freezes the pass", func(t *testing.T) {
		panicking := func(domain.Automaton, any, any, domain.MsgType, any) (domain.Outcome, error) {
			panic("boom")
		}
		m, err := ratchet.New([]domain.Rule{
			{CurrentState: 0, Msg: 0, Handler: panicking, NextState: 1},
			{CurrentState: 1, Msg: 0, Handler: advance, NextState: 0},
			domain.End(),
		}, ratchet.WithMiddleware(middleware.Recover()))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer m.Close()

		a, _ := m.Spawn(0)
		a.Send(0, nil)
		_, err = m.Run()
		var herr *domain.HandlerError
		if !errors.As(err, &herr) {
			t.Fatalf("Expected a HandlerError, got %v", err)
		}
		if !strings.Contains(herr.Err.Error(), "handler panic") {
			t.Errorf("Expected the panic in the handler error, got %v", herr.Err)
		}
		if a.Current() != 0 || a.Pending() != 1 {
			t.Errorf("Expected a frozen automaton (state 0, 1 pending), got state %d with %d pending",
				a.Current(), a.Pending())
		}
	})

	t.Run("options accumulate outermost first", func(t *testing.T) {
		var calls []string
		tag := func(name string) middleware.Middleware {
			return func(next domain.Handler) domain.Handler {
				return func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
					calls = append(calls, name)
					return next(a, data, ruleData, msg, payload)
				}
			}
		}
		m, err := ratchet.New([]domain.Rule{
			{CurrentState: 0, Msg: 0, Handler: advance, NextState: 0},
			domain.End(),
		}, ratchet.WithMiddleware(tag("first")), ratchet.WithMiddleware(tag("second")))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		defer m.Close()

		a, _ := m.Spawn(0)
		a.Send(0, nil)
		if _, err := m.RunToIdle(0); err != nil {
			t.Fatalf("RunToIdle failed: %v", err)
		}
		if want := []string{"first", "second"}; len(calls) != 2 || calls[0] != want[0] || calls[1] != want[1] {
			t.Errorf("Expected call order %v, got %v", want, calls)
		}
	})
}

func TestMachine_CloseIsIdempotent(t *testing.T) {
	m, err := ratchet.New([]domain.Rule{
		{CurrentState: 0, Msg: 0, Handler: advance, NextState: 0},
		domain.End(),
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	fired := 0
	if _, err := m.Spawn(0, ratchet.WithDestroyHook(func(any) { fired++ })); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Second Close failed: %v", err)
	}
	if fired != 1 {
		t.Errorf("Expected one hook firing across both closes, got %d", fired)
	}
	if _, err := m.Spawn(0); !errors.Is(err, domain.ErrClosed) {
		t.Errorf("Expected ErrClosed, got %v", err)
	}
}
