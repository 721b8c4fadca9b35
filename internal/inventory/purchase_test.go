package inventory

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineDraftRecomputesTotal(t *testing.T) {
	var draft LineDraft
	draft.SetQuantity(3)
	draft.SetUnitCost(12.5)
	require.Equal(t, 37.5, draft.Total)

	draft.SetQuantity(4)
	require.Equal(t, 50.0, draft.Total)
}

func TestLineDraftDerivesUnitCostFromTotal(t *testing.T) {
	var draft LineDraft
	draft.SetQuantity(3)
	draft.SetTotal(100)
	require.Equal(t, 33.33, draft.UnitCost)

	// Without a quantity the total is kept as typed and reconciled later.
	empty := LineDraft{}
	empty.SetTotal(80)
	require.Equal(t, 80.0, empty.Total)
	require.Equal(t, 0.0, empty.UnitCost)
}

func TestConfirmReconcilesWithinOneCent(t *testing.T) {
	cases := []struct {
		name     string
		quantity float64
		total    float64
	}{
		{"exact division", 4, 100},
		{"repeating decimal", 3, 100},
		{"fractional quantity", 2.5, 33.07},
		{"single unit", 1, 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			draft := LineDraft{ProductID: "p1"}
			draft.SetQuantity(tc.quantity)
			draft.SetTotal(tc.total)

			line, err := draft.Confirm()
			require.NoError(t, err)
			require.Equal(t, line.UnitCost, math.Round(tc.total/tc.quantity*100)/100)
			require.InDelta(t, tc.total, line.Total, 0.01)
			require.Equal(t, math.Round(line.Quantity*line.UnitCost*100)/100, line.Total)
		})
	}
}

func TestConfirmQuantityTimesCost(t *testing.T) {
	draft := LineDraft{ProductID: "p1"}
	draft.SetQuantity(6)
	draft.SetUnitCost(4.35)

	line, err := draft.Confirm()
	require.NoError(t, err)
	require.Equal(t, 26.1, line.Total)
}

func TestConfirmRejectsZeroQuantity(t *testing.T) {
	draft := LineDraft{ProductID: "p1"}
	_, err := draft.Confirm()
	require.ErrorIs(t, err, ErrZeroQuantity)
}

func TestConfirmRejectsTotalWithoutQuantity(t *testing.T) {
	draft := LineDraft{ProductID: "p1"}
	draft.SetTotal(50)
	_, err := draft.Confirm()
	require.ErrorIs(t, err, ErrTotalWithoutQuantity)
}

func TestConfirmRejectsNegativeCost(t *testing.T) {
	draft := LineDraft{ProductID: "p1"}
	draft.SetQuantity(2)
	draft.SetUnitCost(-1)
	_, err := draft.Confirm()
	require.ErrorIs(t, err, ErrNegativeCost)
}

func TestPurchaseLineFormDraft(t *testing.T) {
	form := PurchaseLineForm{
		ProductID: "p1",
		Quantity:  "3",
		UnitCost:  "10,50",
	}
	draft, errs := form.Draft()
	require.Empty(t, errs)
	require.Equal(t, 3.0, draft.Quantity)
	require.Equal(t, 10.5, draft.UnitCost)
	require.Equal(t, 31.5, draft.Total)
}

func TestPurchaseLineFormExplicitTotalWins(t *testing.T) {
	form := PurchaseLineForm{
		ProductID: "p1",
		Quantity:  "3",
		UnitCost:  "10",
		Total:     "100",
	}
	draft, errs := form.Draft()
	require.Empty(t, errs)

	line, err := draft.Confirm()
	require.NoError(t, err)
	require.Equal(t, 33.33, line.UnitCost)
	require.Equal(t, 99.99, line.Total)
}

func TestPurchaseLineFormValidation(t *testing.T) {
	form := PurchaseLineForm{Quantity: "abc"}
	_, errs := form.Draft()
	require.Contains(t, errs, "ProductID")
	require.Contains(t, errs, "Quantity")
}

func TestCollectPurchaseLinesSkipsBlankRows(t *testing.T) {
	form := url.Values{
		"product_id": {"p1", "", "p2"},
		"quantity":   {"2", "", "3"},
		"unit_cost":  {"10", "", "4,50"},
		"total":      {"", "", ""},
	}
	lines, msg := collectPurchaseLines(form)
	require.Empty(t, msg)
	require.Len(t, lines, 2)
	require.Equal(t, "p1", lines[0].ProductID)
	require.Equal(t, 13.5, lines[1].Total)
}

func TestCollectPurchaseLinesRejectsEmptyPurchase(t *testing.T) {
	blank := url.Values{
		"product_id": {"", "", ""},
		"quantity":   {"", "", ""},
		"unit_cost":  {"", "", ""},
		"total":      {"", "", ""},
	}
	lines, msg := collectPurchaseLines(blank)
	require.Nil(t, lines)
	require.Equal(t, "Inclua ao menos uma linha na compra", msg)

	lines, msg = collectPurchaseLines(url.Values{})
	require.Nil(t, lines)
	require.NotEmpty(t, msg)
}

func TestCollectPurchaseLinesPropagatesLineErrors(t *testing.T) {
	form := url.Values{
		"product_id": {"p1"},
		"quantity":   {"abc"},
		"unit_cost":  {"10"},
		"total":      {""},
	}
	lines, msg := collectPurchaseLines(form)
	require.Nil(t, lines)
	require.NotEmpty(t, msg)

	noQty := url.Values{
		"product_id": {"p1"},
		"quantity":   {""},
		"unit_cost":  {""},
		"total":      {"50"},
	}
	lines, msg = collectPurchaseLines(noQty)
	require.Nil(t, lines)
	require.Equal(t, "Linha de compra inválida", msg)
}
