package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"evolt.in/scms/models"
	"evolt.in/scms/pkg/workflow"
)

// LineInput is one billable line handed to the composer: a part issued
// against the job card or a labour charge.
type LineInput struct {
	PartID      *uuid.UUID
	Description string
	HSNCode     string
	UnitPrice   decimal.Decimal
	Quantity    int
	GSTRate     decimal.Decimal
}

// Options tunes composition. The zero value is the default behaviour:
// grand total kept at paisa precision with RoundOff = 0.
type Options struct {
	// RoundTotalToRupee rounds the grand total to the nearest whole rupee
	// and books the difference as RoundOff.
	RoundTotalToRupee bool
}

// Compose builds an invoice from line inputs: per-line taxable amount and
// GST split, then subtotal, total tax, discount, round-off and grand
// total, with the grand total rendered to words. The caller assigns the
// invoice number, date and references afterwards.
//
// The invariant grandTotal == subtotal + totalTax - discount + roundOff
// holds by construction.
func Compose(items []LineInput, discount decimal.Decimal, placeOfSupply, serviceCenterState string, opts Options) (*models.Invoice, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: an invoice needs at least one line item", workflow.ErrValidation)
	}
	if discount.IsNegative() {
		return nil, fmt.Errorf("%w: discount cannot be negative", workflow.ErrValidation)
	}

	inv := &models.Invoice{
		PlaceOfSupply: placeOfSupply,
		Status:        models.InvoiceUnpaid,
		Discount:      discount.Round(2),
	}

	subtotal := decimal.Zero
	totalTax := decimal.Zero
	for i, in := range items {
		if in.Quantity <= 0 {
			return nil, fmt.Errorf("%w: line %d: quantity must be positive", workflow.ErrValidation, i+1)
		}
		if in.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: line %d: unit price cannot be negative", workflow.ErrValidation, i+1)
		}

		taxable := in.UnitPrice.Mul(decimal.NewFromInt(int64(in.Quantity))).Round(2)
		tax, err := ComputeLineTax(taxable, in.GSTRate, placeOfSupply, serviceCenterState)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		inv.Items = append(inv.Items, models.InvoiceItem{
			PartID:        in.PartID,
			Description:   in.Description,
			HSNCode:       in.HSNCode,
			UnitPrice:     in.UnitPrice.Round(2),
			Quantity:      in.Quantity,
			TaxableAmount: taxable,
			GSTRate:       in.GSTRate,
			CGSTAmount:    tax.CGST,
			SGSTAmount:    tax.SGST,
			IGSTAmount:    tax.IGST,
			TotalAmount:   taxable.Add(tax.Total()),
		})
		subtotal = subtotal.Add(taxable)
		totalTax = totalTax.Add(tax.Total())
	}

	if inv.Discount.GreaterThan(subtotal.Add(totalTax)) {
		return nil, fmt.Errorf("%w: discount %s exceeds invoice value %s", workflow.ErrValidation, inv.Discount, subtotal.Add(totalTax))
	}

	inv.Subtotal = subtotal
	inv.TotalTax = totalTax

	beforeRounding := subtotal.Add(totalTax).Sub(inv.Discount)
	if opts.RoundTotalToRupee {
		inv.GrandTotal = beforeRounding.Round(0)
		inv.RoundOff = inv.GrandTotal.Sub(beforeRounding).Round(2)
	} else {
		inv.GrandTotal = beforeRounding.Round(2)
		inv.RoundOff = decimal.Zero
	}
	inv.AmountInWords = AmountInWords(inv.GrandTotal)

	return inv, nil
}
