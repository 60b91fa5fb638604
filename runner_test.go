package turing_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_Run(t *testing.T) {
	var buf bytes.Buffer
	m := newComplement("10")

	contents, err := turing.NewRunner(&buf).Run(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "01", turing.Result(contents, m.Blank()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// Initial configuration plus one line per step.
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "[1]")
	assert.Contains(t, lines[3], "qf")
}

func TestRunner_Every(t *testing.T) {
	var buf bytes.Buffer
	m := newComplement("101010")

	r := turing.NewRunner(&buf)
	r.Every = 3
	_, err := r.Run(context.Background(), m)
	require.NoError(t, err)

	// 7 steps: initial, step 3, step 6, final step 7.
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 4)
}

func TestRunner_Errors(t *testing.T) {
	t.Run("Missing Output", func(t *testing.T) {
		_, err := (&turing.Runner{}).Run(context.Background(), newComplement("1"))
		assert.Error(t, err)
	})

	t.Run("Undefined Transition", func(t *testing.T) {
		var buf bytes.Buffer
		m := turing.New(domain.Symbols("x"), " ", "q0", []domain.State{"qf"})
		_, err := turing.NewRunner(&buf).Run(context.Background(), m)
		assert.ErrorIs(t, err, domain.ErrUndefinedTransition)
		assert.NotEmpty(t, buf.String())
	})

	t.Run("Step Limit", func(t *testing.T) {
		var buf bytes.Buffer
		m := turing.New(nil, "_", "q0", nil, turing.WithMaxSteps(3))
		m.SetTransition("q0", "_", "q0", "_", domain.MoveRight)
		_, err := turing.NewRunner(&buf).Run(context.Background(), m)
		assert.ErrorIs(t, err, domain.ErrStepLimitExceeded)
	})
}

func TestPlainRenderer(t *testing.T) {
	snap := domain.Snapshot{State: "q1", Head: -1, Steps: 2, Tape: domain.Symbols("10"), Offset: 0}
	got := turing.PlainRenderer(snap, "_")
	assert.Contains(t, got, "q1")
	assert.Contains(t, got, "[_] 1  0 ")
}
