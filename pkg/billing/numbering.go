package billing

import (
	"fmt"
	"strconv"
	"strings"

	"evolt.in/scms/models"
)

// NextInvoiceNumber derives the next sequential invoice number for a
// service-center code and year, formatted "{code}-{year}-{seq}". The
// sequence is computed from the supplied invoice snapshot, so the function
// is deterministic: the same snapshot always yields the same next number,
// and a number already present is never handed out again. Numbers carrying
// other codes, other years or a malformed suffix are ignored.
func NextInvoiceNumber(serviceCenterCode string, year int, existing []models.Invoice) string {
	prefix := fmt.Sprintf("%s-%d-", serviceCenterCode, year)

	max := 0
	for _, inv := range existing {
		rest, ok := strings.CutPrefix(inv.InvoiceNumber, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}
