package timber

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerEntries(t *testing.T) {
	t.Run("purchase entry carries the full purchase price", func(t *testing.T) {
		log := newTestLog(t, 100)

		entry := NewPurchaseEntry(log)

		assert.Equal(t, log.ID, entry.LogID)
		assert.Equal(t, LedgerActionPurchase, entry.Action)
		assert.Equal(t, "9812000", entry.AmountChange.String())
	})

	t.Run("consumption entry is negative at unit cost", func(t *testing.T) {
		log := newTestLog(t, 100)

		entry := NewConsumptionEntry(log, 25)

		assert.Equal(t, log.ID, entry.LogID)
		assert.Equal(t, LedgerActionProductionUse, entry.Action)
		assert.Equal(t, "-2453000", entry.AmountChange.String())
	})

	t.Run("ledger sum matches remaining value after draws", func(t *testing.T) {
		log := newTestLog(t, 100)
		sum := NewPurchaseEntry(log).AmountChange

		for _, qty := range []int64{25, 40, 35} {
			entry := NewConsumptionEntry(log, qty)
			require.NoError(t, log.Allocate(qty))
			sum = sum.Add(entry.AmountChange)
		}

		assert.Equal(t, LogStatusConsumed, log.Status)
		assert.True(t, sum.Equal(log.RemainingValue()),
			"ledger sum %s should equal remaining value %s", sum, log.RemainingValue())
		assert.True(t, sum.IsZero())
	})
}

func TestLedgerAction(t *testing.T) {
	assert.True(t, LedgerActionPurchase.IsValid())
	assert.True(t, LedgerActionProductionUse.IsValid())
	assert.False(t, LedgerAction("ADJUSTMENT").IsValid())
	assert.Equal(t, "PURCHASE", LedgerActionPurchase.String())
}
