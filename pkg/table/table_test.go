package table_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_SetAndLookup(t *testing.T) {
	tbl := table.New()
	tbl.Set("q0", "1", "q1", "0", domain.MoveRight)

	rule, ok := tbl.Lookup("q0", "1")
	require.True(t, ok)
	assert.Equal(t, domain.Rule{Next: "q1", Write: "0", Move: domain.MoveRight}, rule)

	t.Run("Unregistered Pair", func(t *testing.T) {
		_, ok := tbl.Lookup("q0", "0")
		assert.False(t, ok)
		_, ok = tbl.Lookup("q9", "1")
		assert.False(t, ok)
	})
}

func TestTable_IdempotentRegistration(t *testing.T) {
	once := table.New()
	once.Set("q0", " ", "qf", " ", domain.MoveStay)

	twice := table.New()
	twice.Set("q0", " ", "qf", " ", domain.MoveStay)
	twice.Set("q0", " ", "qf", " ", domain.MoveStay)

	r1, ok1 := once.Lookup("q0", " ")
	r2, ok2 := twice.Lookup("q0", " ")
	assert.Equal(t, ok1, ok2)
	assert.Equal(t, r1, r2)
	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, 1, twice.Len())
}

func TestTable_LastRegistrationWins(t *testing.T) {
	tbl := table.New()
	tbl.Set("q0", "a", "q1", "b", domain.MoveLeft)
	tbl.Set("q0", "a", "q2", "c", domain.MoveRight)

	rule, ok := tbl.Lookup("q0", "a")
	require.True(t, ok)
	assert.Equal(t, domain.State("q2"), rule.Next)
	assert.Equal(t, domain.Symbol("c"), rule.Write)
	assert.Equal(t, domain.MoveRight, rule.Move)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_Inspection(t *testing.T) {
	tbl := table.New()
	tbl.Set("q1", "0", "qf", "1", domain.MoveStay)
	tbl.Set("q0", "1", "q0", "1", domain.MoveRight)
	tbl.Set("q0", "0", "q1", "0", domain.MoveRight)

	trs := tbl.Transitions()
	require.Len(t, trs, 3)
	assert.Equal(t, domain.State("q0"), trs[0].State)
	assert.Equal(t, domain.Symbol("0"), trs[0].Symbol)
	assert.Equal(t, domain.State("q1"), trs[2].State)

	assert.Equal(t, []domain.State{"q0", "q1", "qf"}, tbl.States())
}
