package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Libreria-api/internal/domain/entity"
)

func TestPurchaseStatus_Transiciones(t *testing.T) {
	all := []entity.PurchaseStatus{
		entity.PurchaseStatusPending,
		entity.PurchaseStatusPaid,
		entity.PurchaseStatusCancelled,
		entity.PurchaseStatusAddedToInventory,
	}
	allowed := map[[2]entity.PurchaseStatus]bool{
		{entity.PurchaseStatusPending, entity.PurchaseStatusPaid}:          true,
		{entity.PurchaseStatusPending, entity.PurchaseStatusCancelled}:     true,
		{entity.PurchaseStatusPaid, entity.PurchaseStatusAddedToInventory}: true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]entity.PurchaseStatus{from, to}], from.CanTransitionTo(to), "%s → %s", from, to)
		}
	}
}

func TestPurchaseStatus_Terminales(t *testing.T) {
	assert.True(t, entity.PurchaseStatusCancelled.IsTerminal())
	assert.True(t, entity.PurchaseStatusAddedToInventory.IsTerminal())
	assert.False(t, entity.PurchaseStatusPending.IsTerminal())
	assert.False(t, entity.PurchaseStatusPaid.IsTerminal())
}

func TestParsePurchaseStatus(t *testing.T) {
	st, err := entity.ParsePurchaseStatus("added_to_inventory")
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusAddedToInventory, st)

	_, err = entity.ParsePurchaseStatus("shipped")
	assert.Error(t, err)
}

func TestBookPurchase_TotalCost(t *testing.T) {
	p := entity.BookPurchase{PurchasePrice: decimal.RequireFromString("7.25"), Quantity: 4}
	assert.True(t, p.TotalCost().Equal(decimal.RequireFromString("29")))
}

func TestFinancialTransaction_Signed(t *testing.T) {
	in := entity.FinancialTransaction{Type: entity.TransactionIncome, Amount: decimal.NewFromInt(10)}
	out := entity.FinancialTransaction{Type: entity.TransactionExpense, Amount: decimal.NewFromInt(10)}
	assert.True(t, in.Signed().Equal(decimal.NewFromInt(10)))
	assert.True(t, out.Signed().Equal(decimal.NewFromInt(-10)))

	typ, err := entity.ParseTransactionType("INCOME")
	require.NoError(t, err)
	assert.Equal(t, entity.TransactionIncome, typ)
}

func TestBookSnapshot_Complete(t *testing.T) {
	b := entity.Book{ISBN: "1", Title: "T", Author: "A", Publisher: "P"}
	assert.True(t, b.Snapshot().Complete())
	assert.False(t, entity.BookSnapshot{ISBN: "1", Title: "T"}.Complete())
}
