package finance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maresia/maresia/internal/ui"
)

func TestOutstanding(t *testing.T) {
	invoice := Invoice{
		Amount: 350,
		Payments: []Payment{
			{Amount: 100},
			{Amount: 85.50},
		},
	}
	require.Equal(t, 164.50, Outstanding(invoice))
}

func TestOutstandingNoPayments(t *testing.T) {
	require.Equal(t, 420.0, Outstanding(Invoice{Amount: 420}))
}

func TestOutstandingFullySettled(t *testing.T) {
	invoice := Invoice{Amount: 99.99, Payments: []Payment{{Amount: 99.99}}}
	require.Zero(t, Outstanding(invoice))
}

func TestOutstandingRoundsToCents(t *testing.T) {
	invoice := Invoice{Amount: 10, Payments: []Payment{{Amount: 3.333}, {Amount: 3.333}}}
	require.Equal(t, 3.33, Outstanding(invoice))
}

func TestStatusBadge(t *testing.T) {
	require.Equal(t, ui.VariantWarning, StatusBadge(InvoiceOpen).Variant)
	require.Equal(t, ui.VariantSuccess, StatusBadge(InvoicePaid).Variant)
	require.Equal(t, ui.VariantSuccess, StatusBadge(InvoiceReceived).Variant)
	require.Equal(t, ui.VariantNeutral, StatusBadge(InvoiceCanceled).Variant)
	require.Equal(t, "desconhecido", StatusBadge(InvoiceStatus("desconhecido")).Label)
}

func TestKindBadge(t *testing.T) {
	require.Equal(t, "Receita", KindBadge(KindRevenue).Label)
	require.Equal(t, ui.VariantDanger, KindBadge(KindExpense).Variant)
}
