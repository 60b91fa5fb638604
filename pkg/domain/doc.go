/*
Package domain contains the core domain models of the Turing machine engine.

It defines the vocabulary shared by the tape, the transition table and the runtime:
states, symbols, head movements, transition rules, machine snapshots and the error
conditions raised while stepping. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - State: An opaque label identifying one configuration of the control logic.
  - Symbol: An opaque label identifying one unit of tape content.
  - Move: The head displacement applied after a rule fires (Left, Right, Stay).
  - Rule: The (next state, symbol to write, move) triple registered for a (state, symbol) pair.
  - Snapshot: A read-only view of a machine (state, head, materialized tape) for presentation.
*/
package domain
