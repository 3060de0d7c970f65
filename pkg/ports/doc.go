/*
Package ports defines the driven ports (interfaces) around the ratchet engine.

These interfaces decouple the core from infrastructure: event sources deliver
messages through Sender without knowing the automaton behind it, and hosts
record dispatch history through Journal without the engine knowing where the
records go.

# Key Interfaces

  - Sender: the message-delivery capability of an automaton handle.
  - Journal: an ordered, append-only log of dispatched transitions.

RunJournalContract is a reusable suite that pins the semantics every Journal
implementation must share; pkg/adapters/memory and pkg/adapters/redis both run
it.
*/
package ports
