/*
Package domain contains the core domain model for the ratchet engine.

It defines the fundamental entities of the machine: transition rules and their
compiled table form, message and state identifiers, automaton status, and the
opaque automaton handle. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture
principles.

# Key Entities

  - Rule: one row of the flat transition table (state, message, handler, next).
  - Table: the compiled per-state lookup structure produced from a rule list.
  - Automaton: the handle to one instance traversing the shared machine.
  - Status: New (unclassified), Active (pending mail), Inactive (empty mailbox).

# Ownership

Payloads are opaque to the engine. An automaton payload and a rule's Data are
stored by reference and handed back to handlers untouched; a message payload is
borrowed for the duration of the handler call that consumes it. The engine
never inspects or copies any of them.
*/
package domain
