package billing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evolt.in/scms/models"
	"evolt.in/scms/pkg/workflow"
)

func partsLine(price string, qty int, rate string) LineInput {
	return LineInput{
		Description: "Brake Pad Set",
		HSNCode:     "8708",
		UnitPrice:   d(price),
		Quantity:    qty,
		GSTRate:     d(rate),
	}
}

func TestComposeTotalsIdentity(t *testing.T) {
	inv, err := Compose([]LineInput{
		partsLine("500", 2, "18"),
		partsLine("333.33", 1, "28"),
	}, d("50"), "Delhi", "Delhi", Options{})
	require.NoError(t, err)

	// grandTotal == subtotal + totalTax - discount + roundOff
	recomputed := inv.Subtotal.Add(inv.TotalTax).Sub(inv.Discount).Add(inv.RoundOff)
	assert.True(t, inv.GrandTotal.Equal(recomputed),
		"grand total %s, recomputed %s", inv.GrandTotal, recomputed)
	assert.True(t, inv.RoundOff.IsZero(), "default composition books no round off")
	assert.Equal(t, models.InvoiceUnpaid, inv.Status)
	assert.NotEmpty(t, inv.AmountInWords)
}

func TestComposeTaxExclusivity(t *testing.T) {
	intra, err := Compose([]LineInput{partsLine("1000", 1, "18")}, decimal.Zero, "Delhi", "Delhi", Options{})
	require.NoError(t, err)
	require.Len(t, intra.Items, 1)
	assert.True(t, intra.Items[0].CGSTAmount.IsPositive())
	assert.True(t, intra.Items[0].IGSTAmount.IsZero())

	inter, err := Compose([]LineInput{partsLine("1000", 1, "18")}, decimal.Zero, "Maharashtra", "Delhi", Options{})
	require.NoError(t, err)
	require.Len(t, inter.Items, 1)
	assert.True(t, inter.Items[0].CGSTAmount.IsZero())
	assert.True(t, inter.Items[0].SGSTAmount.IsZero())
	assert.True(t, inter.Items[0].IGSTAmount.Equal(d("180")))
}

func TestComposeRoundToRupee(t *testing.T) {
	// 333.33 * 18% = 59.9994 -> 60.00 tax; total 393.33.
	inv, err := Compose([]LineInput{partsLine("333.33", 1, "18")}, decimal.Zero, "Maharashtra", "Delhi",
		Options{RoundTotalToRupee: true})
	require.NoError(t, err)

	assert.True(t, inv.GrandTotal.Equal(d("393")), "grand total %s", inv.GrandTotal)
	assert.True(t, inv.RoundOff.Equal(d("-0.33")), "round off %s", inv.RoundOff)

	recomputed := inv.Subtotal.Add(inv.TotalTax).Sub(inv.Discount).Add(inv.RoundOff)
	assert.True(t, inv.GrandTotal.Equal(recomputed))
}

func TestComposeLineValidation(t *testing.T) {
	_, err := Compose(nil, decimal.Zero, "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = Compose([]LineInput{partsLine("100", 0, "18")}, decimal.Zero, "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = Compose([]LineInput{partsLine("-5", 1, "18")}, decimal.Zero, "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = Compose([]LineInput{partsLine("100", 1, "18")}, d("-1"), "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	_, err = Compose([]LineInput{partsLine("100", 1, "120")}, decimal.Zero, "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)
}

func TestComposeDiscountCannotExceedInvoiceValue(t *testing.T) {
	_, err := Compose([]LineInput{partsLine("100", 1, "18")}, d("119"), "Delhi", "Delhi", Options{})
	assert.ErrorIs(t, err, workflow.ErrValidation)

	// Discount equal to the full value is allowed: a free-of-charge invoice.
	inv, err := Compose([]LineInput{partsLine("100", 1, "18")}, d("118"), "Delhi", "Delhi", Options{})
	require.NoError(t, err)
	assert.True(t, inv.GrandTotal.IsZero())
}

func TestComposeZeroPricedWarrantyLine(t *testing.T) {
	line := partsLine("0", 1, "18")
	inv, err := Compose([]LineInput{line}, decimal.Zero, "Delhi", "Delhi", Options{})
	require.NoError(t, err)
	assert.True(t, inv.GrandTotal.IsZero())
	assert.Equal(t, "Zero Rupees Only", inv.AmountInWords)
}
