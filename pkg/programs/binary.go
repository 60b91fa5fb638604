package programs

import (
	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
)

// Blank is the blank symbol shared by the binary programs.
const Blank domain.Symbol = " "

// Halt is the halting state shared by the binary programs.
const Halt domain.State = "qf"

// BinaryIncrement adds one to the binary number on the tape.
func BinaryIncrement(input []domain.Symbol, opts ...turing.Option) *turing.Machine {
	m := turing.New(input, Blank, "q0", []domain.State{Halt}, opts...)

	// Walk to the blank after the number, then turn around.
	m.SetTransition("q0", "1", "q0", "1", domain.MoveRight)
	m.SetTransition("q0", "0", "q0", "0", domain.MoveRight)
	m.SetTransition("q0", Blank, "q1", Blank, domain.MoveLeft)

	// Propagate the carry leftwards.
	m.SetTransition("q1", "0", Halt, "1", domain.MoveStay)
	m.SetTransition("q1", "1", "q1", "0", domain.MoveLeft)
	m.SetTransition("q1", Blank, Halt, "1", domain.MoveStay)

	return m
}

// BinaryComplement flips every bit on the tape.
func BinaryComplement(input []domain.Symbol, opts ...turing.Option) *turing.Machine {
	m := turing.New(input, Blank, "q0", []domain.State{Halt}, opts...)

	m.SetTransition("q0", "1", "q0", "0", domain.MoveRight)
	m.SetTransition("q0", "0", "q0", "1", domain.MoveRight)
	m.SetTransition("q0", Blank, Halt, Blank, domain.MoveStay)

	return m
}

// BinaryAddition adds the two binary numbers of a tape shaped like "101+11".
// It decrements the right operand and increments the left one until the right operand
// is exhausted, then erases the operator and the right operand. The sum is left in
// place of the left operand, growing to the left on overflow.
func BinaryAddition(input []domain.Symbol, opts ...turing.Option) *turing.Machine {
	m := turing.New(input, Blank, "q0", []domain.State{Halt}, opts...)

	// q0: move to the right end of the second number.
	m.SetTransition("q0", "0", "q0", "0", domain.MoveRight)
	m.SetTransition("q0", "1", "q0", "1", domain.MoveRight)
	m.SetTransition("q0", "+", "q0", "+", domain.MoveRight)
	m.SetTransition("q0", Blank, "q1", Blank, domain.MoveLeft)

	// q1: decrement the second number. Reaching "+" means it was zero.
	m.SetTransition("q1", "0", "q1", "1", domain.MoveLeft)
	m.SetTransition("q1", "1", "q2", "0", domain.MoveLeft)
	m.SetTransition("q1", "+", "q5", Blank, domain.MoveRight)

	// q2: return to the operator.
	m.SetTransition("q2", "0", "q2", "0", domain.MoveLeft)
	m.SetTransition("q2", "1", "q2", "1", domain.MoveLeft)
	m.SetTransition("q2", "+", "q3", "+", domain.MoveLeft)

	// q3: increment the first number.
	m.SetTransition("q3", "1", "q3", "0", domain.MoveLeft)
	m.SetTransition("q3", "0", "q4", "1", domain.MoveRight)
	m.SetTransition("q3", Blank, "q4", "1", domain.MoveRight)

	// q4: go back to the right end.
	m.SetTransition("q4", "0", "q4", "0", domain.MoveRight)
	m.SetTransition("q4", "1", "q4", "1", domain.MoveRight)
	m.SetTransition("q4", "+", "q4", "+", domain.MoveRight)
	m.SetTransition("q4", Blank, "q1", Blank, domain.MoveLeft)

	// q5: erase the exhausted operand.
	m.SetTransition("q5", "0", "q5", Blank, domain.MoveRight)
	m.SetTransition("q5", "1", "q5", Blank, domain.MoveRight)
	m.SetTransition("q5", Blank, Halt, Blank, domain.MoveStay)

	return m
}
