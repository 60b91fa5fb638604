/*
Package turing is a deterministic single-tape Turing machine engine.

A machine reads and writes a bi-infinite tape while moving its head left or right,
following a transition table, until it reaches one of its halting states. The tape
grows on demand in both directions; reading a cell that was never written yields the
blank symbol.

# Concept

The library separates three concerns, following Hexagonal Architecture:

  - pkg/tape: the sparse tape.
  - pkg/table: the transition function, built by repeated SetTransition calls.
  - internal/runtime: the step/run loop that binds one tape to one table.

Presentation (tape printing, Mermaid export), declarative definitions and transports
(HTTP, MCP, CLI) live in their own packages and only use the public contract.

# Errors

A step on a (state, symbol) pair with no rule fails with *domain.UndefinedTransitionError
(matched by domain.ErrUndefinedTransition) and leaves the tape untouched. Runs are
unbounded unless WithMaxSteps is given, in which case exceeding the bound fails with
domain.ErrStepLimitExceeded.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/turing"
		"github.com/aretw0/turing/pkg/domain"
	)

	func main() {
		m := turing.New(domain.Symbols("101"), " ", "q0", []domain.State{"qf"})

		m.SetTransition("q0", "1", "q0", "0", domain.MoveRight)
		m.SetTransition("q0", "0", "q0", "1", domain.MoveRight)
		m.SetTransition("q0", " ", "qf", " ", domain.MoveStay)

		tape, err := m.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(turing.Result(tape, m.Blank())) // 010
	}
*/
package turing
