package sepa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrency_DefaultAssignedOnFirstRead(t *testing.T) {
	tx := NewCreditTransferTransaction()
	assert.Equal(t, "", tx.currency)

	assert.Equal(t, "EUR", tx.Currency())
	assert.Equal(t, "EUR", tx.currency)
}

func TestCurrency_ElementTriggersDefault(t *testing.T) {
	tx := NewDirectDebitTransaction()
	assert.Equal(t, "", tx.currency)

	_ = tx.Element()
	assert.Equal(t, "EUR", tx.currency)
}
