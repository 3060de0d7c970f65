/*
Package dsl provides a fluent builder for constructing rule tables
programmatically, with names instead of raw ids.

It is the type-safe alternative to YAML definitions (pkg/def): handy for
dynamic table generation, unit tests, and IDE autocompletion. State and
message ids are assigned in first-mention order, so the built table and its
graph output are deterministic.

Example usage:

	package main

	import (
		"log"

		"github.com/ratchet-dev/ratchet"
		"github.com/ratchet-dev/ratchet/pkg/dsl"
		"github.com/ratchet-dev/ratchet/pkg/registry"
	)

	func main() {
		b := dsl.New()

		b.State("closed").
			On("open", registry.Advance).To("open")

		b.State("open").
			On("knock", registry.Advance).Stay().
			On("close", registry.Advance).To("closed").
			On("demolish", registry.Complete).End()

		def := b.Build()

		m, err := ratchet.New(def.Rules)
		if err != nil {
			log.Fatal(err)
		}
		defer m.Close()

		// Spawn at a named state, export a named graph.
		start, _ := def.StateID("closed")
		if _, err := m.Spawn(start); err != nil {
			log.Fatal(err)
		}
		log.Print(m.Graph(def.StateNames, def.MsgNames))
	}
*/
package dsl
