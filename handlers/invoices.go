package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"evolt.in/scms/config"
	"evolt.in/scms/models"
	"evolt.in/scms/pkg/billing"
)

type invoiceLineReq struct {
	PartID      *uuid.UUID      `json:"partId"`
	Description string          `json:"description" validate:"required"`
	HSNCode     string          `json:"hsnCode"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    int             `json:"quantity" validate:"required,gt=0"`
	GSTRate     decimal.Decimal `json:"gstRate"`
}

type invoiceReq struct {
	JobCardID     uuid.UUID        `json:"jobCardId" validate:"required"`
	CustomerGSTIN string           `json:"customerGstin"`
	Discount      decimal.Decimal  `json:"discount"`
	RoundToRupee  bool             `json:"roundToRupee"`
	LabourLines   []invoiceLineReq `json:"labourLines" validate:"dive"`
	DueInDays     int              `json:"dueInDays"`
}

// CreateInvoice raises the GST invoice for a completed job card: every part
// issued against the card plus any labour lines from the payload. The
// invoice number is sequential per service-center code and calendar year.
// POST /api/v1/invoices
func CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var card models.JobCard
	if err := config.DB.Preload("PartsRequests.Items.Part").
		First(&card, "id = ?", req.JobCardID).Error; err != nil {
		http.Error(w, "job card not found", http.StatusNotFound)
		return
	}
	var appt models.Appointment
	if err := config.DB.First(&appt, "id = ?", card.SourceAppointmentID).Error; err != nil {
		http.Error(w, "source appointment not found", http.StatusNotFound)
		return
	}
	var center models.ServiceCenter
	if err := config.DB.First(&center, "id = ?", card.ServiceCenterID).Error; err != nil {
		http.Error(w, "service center not found", http.StatusNotFound)
		return
	}

	lines := buildInvoiceLines(&card, req.LabourLines)

	placeOfSupply := appt.CustomerState
	if placeOfSupply == "" {
		placeOfSupply = center.State
	}

	inv, err := billing.Compose(lines, req.Discount, placeOfSupply, center.State,
		billing.Options{RoundTotalToRupee: req.RoundToRupee})
	if err != nil {
		workflowError(w, err)
		return
	}

	existing, err := snapshots().LoadInvoices()
	if err != nil {
		workflowError(w, err)
		return
	}

	now := time.Now()
	inv.InvoiceNumber = billing.NextInvoiceNumber(center.Code, now.Year(), existing)
	inv.ServiceCenterID = center.ID
	inv.JobCardID = &card.ID
	inv.AppointmentID = &appt.ID
	inv.CustomerName = appt.CustomerName
	inv.CustomerPhone = appt.CustomerPhone
	inv.CustomerGSTIN = req.CustomerGSTIN
	inv.InvoiceDate = now
	if req.DueInDays > 0 {
		due := now.AddDate(0, 0, req.DueInDays)
		inv.DueDate = &due
	}

	if err := config.DB.Create(inv).Error; err != nil {
		http.Error(w, "failed to save invoice: "+err.Error(), http.StatusInternalServerError)
		return
	}
	config.Log.WithField("invoiceNumber", inv.InvoiceNumber).
		WithField("grandTotal", inv.GrandTotal).Info("invoice raised")
	writeJSON(w, http.StatusCreated, inv)
}

// buildInvoiceLines turns the card's ISSUED parts into billable lines and
// appends the labour charges. Warranty replacements are billed at zero.
func buildInvoiceLines(card *models.JobCard, labour []invoiceLineReq) []billing.LineInput {
	var lines []billing.LineInput
	for _, pr := range card.PartsRequests {
		if pr.Status != models.PartsRequestIssued {
			continue
		}
		for _, it := range pr.Items {
			line := billing.LineInput{
				Quantity: it.RequestedQty,
			}
			partID := it.PartID
			line.PartID = &partID
			if it.Part != nil {
				line.Description = it.Part.Name
				line.HSNCode = it.Part.HSNCode
				line.UnitPrice = it.Part.UnitPrice
				line.GSTRate = it.Part.GSTRate
			}
			if it.IsWarranty {
				line.UnitPrice = decimal.Zero
				line.Description += " (warranty replacement)"
			}
			lines = append(lines, line)
		}
	}
	for _, l := range labour {
		lines = append(lines, billing.LineInput{
			PartID:      l.PartID,
			Description: l.Description,
			HSNCode:     l.HSNCode,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			GSTRate:     l.GSTRate,
		})
	}
	return lines
}

// markOverdueInvoices flips open invoices past their due date to Overdue.
// Run lazily on listing rather than from a scheduler.
func markOverdueInvoices() {
	if err := config.DB.Model(&models.Invoice{}).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]models.InvoiceStatus{models.InvoiceUnpaid, models.InvoicePartiallyPaid}, time.Now()).
		Update("status", models.InvoiceOverdue).Error; err != nil {
		config.Log.WithError(err).Warn("overdue sweep failed")
	}
}

// GetInvoices lists invoices, newest first.
// GET /api/v1/invoices
func GetInvoices(w http.ResponseWriter, r *http.Request) {
	markOverdueInvoices()

	q := config.DB.Preload("Items").Order("created_at DESC")
	if raw := r.URL.Query().Get("status"); raw != "" {
		q = q.Where("status = ?", raw)
	}
	if raw := r.URL.Query().Get("serviceCenterId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			http.Error(w, "invalid serviceCenterId", http.StatusBadRequest)
			return
		}
		q = q.Where("service_center_id = ?", id)
	}

	var invoices []models.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		http.Error(w, "failed to fetch invoices", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"invoices": invoices,
		"count":    len(invoices),
	})
}

// GetInvoice returns one invoice with its lines.
// GET /api/v1/invoices/{id}
func GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var inv models.Invoice
	if err := config.DB.Preload("Items").First(&inv, "id = ?", id).Error; err != nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

type paymentReq struct {
	Amount decimal.Decimal `json:"amount"`
}

// RecordInvoicePayment books a payment and rolls the invoice status.
// POST /api/v1/invoices/{id}/payments
func RecordInvoicePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var body paymentReq
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if !body.Amount.IsPositive() {
		http.Error(w, "payment amount must be positive", http.StatusBadRequest)
		return
	}

	var inv models.Invoice
	if err := config.DB.First(&inv, "id = ?", id).Error; err != nil {
		http.Error(w, "invoice not found", http.StatusNotFound)
		return
	}
	if inv.Status == models.InvoicePaid {
		http.Error(w, "invoice already settled", http.StatusConflict)
		return
	}

	inv.AmountPaid = inv.AmountPaid.Add(body.Amount)
	if inv.AmountPaid.GreaterThanOrEqual(inv.GrandTotal) {
		inv.Status = models.InvoicePaid
	} else {
		inv.Status = models.InvoicePartiallyPaid
	}
	if err := config.DB.Save(&inv).Error; err != nil {
		http.Error(w, "failed to update invoice", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}

// ExportInvoicesXLSX streams the invoice register as a spreadsheet.
// GET /api/v1/invoices/export
func ExportInvoicesXLSX(w http.ResponseWriter, r *http.Request) {
	invoices, err := snapshots().LoadInvoices()
	if err != nil {
		workflowError(w, err)
		return
	}

	f := excelize.NewFile()
	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Invoice No", "Date", "Customer", "Place of Supply",
		"Subtotal", "CGST+SGST+IGST", "Discount", "Round Off", "Grand Total", "Status"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
	})
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, inv := range invoices {
		values := []interface{}{
			inv.InvoiceNumber,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.CustomerName,
			inv.PlaceOfSupply,
			inv.Subtotal.InexactFloat64(),
			inv.TotalTax.InexactFloat64(),
			inv.Discount.InexactFloat64(),
			inv.RoundOff.InexactFloat64(),
			inv.GrandTotal.InexactFloat64(),
			string(inv.Status),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		http.Error(w, "failed to build spreadsheet", http.StatusInternalServerError)
		return
	}
	filename := fmt.Sprintf("invoices_%s.xlsx", time.Now().Format("20060102"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Write(buf.Bytes())
}
