package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tailspend/pkg/domain-errors"
)

func TestTableResolve(t *testing.T) {
	table := Table{
		{From: "DRAFT", Action: "submit", To: "PENDING"},
		{From: "PENDING", Action: "approve", To: "APPROVED"},
		{From: "PENDING", Action: "reject", To: "REJECTED"},
		{From: "REJECTED", Action: "submit", To: "PENDING"},
	}

	t.Run("legal move", func(t *testing.T) {
		to, err := table.Resolve("DRAFT", "submit")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", to)
	})

	t.Run("same action from second source status", func(t *testing.T) {
		to, err := table.Resolve("REJECTED", "submit")
		require.NoError(t, err)
		assert.Equal(t, "PENDING", to)
	})

	t.Run("known action wrong status", func(t *testing.T) {
		_, err := table.Resolve("APPROVED", "approve")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := table.Resolve("DRAFT", "teleport")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))
	})
}

func TestTableActions(t *testing.T) {
	table := Table{
		{From: "A", Action: "x", To: "B"},
		{From: "B", Action: "x", To: "C"},
		{From: "C", Action: "y", To: "A"},
	}
	assert.Equal(t, []string{"x", "y"}, table.Actions())
}

func TestMetricsNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordTransition("rfq", "submit", "ok")
		m.RecordDenial("Supplier", "rfq")
	})
}
