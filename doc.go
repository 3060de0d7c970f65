/*
Package ratchet is an edge-triggered finite-state automaton engine: many
independent automatons advance against one shared transition table, driven by
messages posted into per-automaton mailboxes.

It implements a strictly single-threaded, cooperative dispatch model. Sending
never processes anything inline; work happens only inside an explicit engine
pass, which your application ("host") schedules. That makes every transition
reproducible and keeps handler code free of locking.

# Concept

You describe behavior as a flat list of rules, each one "in state S, message M
runs this handler and moves to state S'". The engine compiles the list into a
dense per-state table, then lets you spawn any number of automatons that walk
it independently. Each automaton owns a mailbox; a Run pass drains the
mailboxes that have messages pending, invoking your handlers inline. Handlers
may send further messages (to their own automaton or any other) and may
destroy automatons, including their own, mid-pass.

A message sent while the sender's mailbox tail is being handled is deferred to
the next pass, one notch per pass, which keeps chains of self-feeding
automatons from starving everything else.

# Key Features

  - Deterministic dispatch: rule order fixes match priority, spawn order fixes
    pass order, and a pass is bounded by the work that existed when it began.
  - Hexagonal layout: the core is pure; journals, metrics, feeds and hosts
    live behind ports (see pkg/ports and pkg/adapters).
  - Reentrancy: handlers can Send and Destroy freely while a pass is running.
  - Introspection: compiled tables render as Graphviz dot, and machines report
    a status census for hosts and tests.

# Usage

	package main

	import (
		"log"

		"github.com/ratchet-dev/ratchet"
		"github.com/ratchet-dev/ratchet/pkg/domain"
	)

	const (
		stateClosed domain.StateID = iota
		stateOpen
	)

	const (
		msgOpen domain.MsgType = iota
		msgClose
	)

	func main() {
		open := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
			log.Println("opening")
			return domain.Advance, nil
		}
		shut := func(a domain.Automaton, data, ruleData any, msg domain.MsgType, payload any) (domain.Outcome, error) {
			log.Println("closing for good")
			return domain.Complete, nil
		}

		m, err := ratchet.New([]domain.Rule{
			{CurrentState: stateClosed, Msg: msgOpen, Handler: open, NextState: stateOpen},
			{CurrentState: stateOpen, Msg: msgClose, Handler: shut, NextState: domain.Terminal},
			domain.End(),
		})
		if err != nil {
			log.Fatal(err)
		}
		defer m.Close()

		door, err := m.Spawn(stateClosed)
		if err != nil {
			log.Fatal(err)
		}

		// Host loop: feed messages, then pump until the machine settles.
		door.Send(msgOpen, nil)
		door.Send(msgClose, nil)
		if _, err := m.RunToIdle(0); err != nil {
			log.Fatal(err)
		}
	}

The engine is not safe for concurrent use; a host that takes messages from
several goroutines serializes access itself (pkg/adapters/http shows the
pattern with a plain mutex).
*/
package ratchet
