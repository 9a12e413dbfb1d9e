package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"evolt.in/scms/pkg/workflow"
)

// LineTax is the GST split for one taxable line. Exactly one of
// {CGST+SGST} or {IGST} is non-zero.
type LineTax struct {
	CGST decimal.Decimal
	SGST decimal.Decimal
	IGST decimal.Decimal
}

// Total returns the summed tax for the line.
func (t LineTax) Total() decimal.Decimal {
	return t.CGST.Add(t.SGST).Add(t.IGST)
}

var (
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// ComputeLineTax applies the GST place-of-supply rule. An intrastate
// supply (place of supply equals the service center's state, compared
// case-insensitively after trimming) splits the rate evenly into CGST and
// SGST; an interstate supply levies the full rate as IGST. Amounts are
// rounded to two decimals, half up.
func ComputeLineTax(taxableAmount, gstRate decimal.Decimal, placeOfSupplyState, serviceCenterState string) (LineTax, error) {
	if gstRate.IsNegative() || gstRate.GreaterThan(hundred) {
		return LineTax{}, fmt.Errorf("%w: gst rate %s outside [0, 100]", workflow.ErrValidation, gstRate)
	}

	fullTax := taxableAmount.Mul(gstRate).Div(hundred)
	if statesEqual(placeOfSupplyState, serviceCenterState) {
		half := fullTax.Div(two).Round(2)
		return LineTax{CGST: half, SGST: half, IGST: decimal.Zero}, nil
	}
	return LineTax{CGST: decimal.Zero, SGST: decimal.Zero, IGST: fullTax.Round(2)}, nil
}

func statesEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
