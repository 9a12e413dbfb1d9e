package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvoiceStatus string

const (
	InvoiceUnpaid        InvoiceStatus = "Unpaid"
	InvoicePartiallyPaid InvoiceStatus = "Partially Paid"
	InvoicePaid          InvoiceStatus = "Paid"
	InvoiceOverdue       InvoiceStatus = "Overdue"
)

// Invoice is the GST tax invoice raised once service work completes.
// InvoiceNumber is sequential per (service-center code, year). The back
// references to the job card and appointment are informational only.
type Invoice struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNumber   string        `gorm:"size:30;uniqueIndex;not null" json:"invoiceNumber"`
	ServiceCenterID uuid.UUID     `gorm:"type:uuid;not null;index" json:"serviceCenterId"`
	JobCardID       *uuid.UUID    `gorm:"type:uuid;index" json:"jobCardId,omitempty"`
	AppointmentID   *uuid.UUID    `gorm:"type:uuid;index" json:"appointmentId,omitempty"`
	CustomerName    string        `gorm:"size:100;not null" json:"customerName"`
	CustomerPhone   string        `gorm:"size:15" json:"customerPhone"`
	CustomerGSTIN   string        `gorm:"size:15" json:"customerGstin,omitempty"`
	PlaceOfSupply   string        `gorm:"size:50;not null" json:"placeOfSupply"`
	InvoiceDate     time.Time     `gorm:"not null" json:"invoiceDate"`
	DueDate         *time.Time    `json:"dueDate,omitempty"`
	Status          InvoiceStatus `gorm:"size:20;not null;default:'Unpaid'" json:"status"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	Subtotal      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"subtotal"`
	TotalTax      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"totalTax"`
	Discount      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"discount"`
	RoundOff      decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"roundOff"`
	GrandTotal    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"grandTotal"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"amountPaid"`
	AmountInWords string          `gorm:"size:255" json:"amountInWords"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (inv *Invoice) BeforeCreate(tx *gorm.DB) (err error) {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return
}

// InvoiceItem is one billed line. Exactly one of {CGST+SGST} or {IGST} is
// non-zero, decided by the place-of-supply comparison at composition time.
type InvoiceItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoiceId"`
	PartID        *uuid.UUID      `gorm:"type:uuid" json:"partId,omitempty"` // nil for labour lines
	Description   string          `gorm:"size:255;not null" json:"description"`
	HSNCode       string          `gorm:"size:10" json:"hsnCode,omitempty"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"unitPrice"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	TaxableAmount decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"taxableAmount"`
	GSTRate       decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"gstRate"`
	CGSTAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"cgstAmount"`
	SGSTAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"sgstAmount"`
	IGSTAmount    decimal.Decimal `gorm:"type:decimal(20,2);default:0" json:"igstAmount"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(20,2);not null" json:"totalAmount"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) (err error) {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return
}
