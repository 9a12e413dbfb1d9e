// Package store adapts the snapshot interfaces of pkg/workflow to GORM.
// Every Save walks the full snapshot: records present are upserted,
// records missing are deleted, matching the read-modify-write contract
// the workflows assume.
package store

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"evolt.in/scms/models"
	"evolt.in/scms/pkg/workflow"
)

type GormStore struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) LoadAppointments() ([]models.Appointment, error) {
	var out []models.Appointment
	if err := s.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveAppointments(appts []models.Appointment) error {
	return replaceAll(s.db, appts, func(a models.Appointment) uuid.UUID { return a.ID }, &models.Appointment{})
}

func (s *GormStore) LoadJobCards() ([]models.JobCard, error) {
	var out []models.JobCard
	if err := s.db.Preload("Reviews").Preload("PartsRequests").Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveJobCards(cards []models.JobCard) error {
	return replaceAll(s.db, cards, func(c models.JobCard) uuid.UUID { return c.ID }, &models.JobCard{})
}

func (s *GormStore) LoadPartsRequests() ([]models.PartsRequest, error) {
	var out []models.PartsRequest
	if err := s.db.Preload("Items").Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SavePartsRequests(requests []models.PartsRequest) error {
	return replaceAll(s.db, requests, func(r models.PartsRequest) uuid.UUID { return r.ID }, &models.PartsRequest{})
}

func (s *GormStore) LoadQuotations() ([]models.Quotation, error) {
	var out []models.Quotation
	if err := s.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveQuotations(quotes []models.Quotation) error {
	return replaceAll(s.db, quotes, func(q models.Quotation) uuid.UUID { return q.ID }, &models.Quotation{})
}

func (s *GormStore) LoadIntakeRequests() ([]models.ServiceIntakeRequest, error) {
	var out []models.ServiceIntakeRequest
	if err := s.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveIntakeRequests(intakes []models.ServiceIntakeRequest) error {
	return replaceAll(s.db, intakes, func(i models.ServiceIntakeRequest) uuid.UUID { return i.ID }, &models.ServiceIntakeRequest{})
}

func (s *GormStore) LoadInvoices() ([]models.Invoice, error) {
	var out []models.Invoice
	if err := s.db.Preload("Items").Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *GormStore) SaveInvoices(invoices []models.Invoice) error {
	return replaceAll(s.db, invoices, func(i models.Invoice) uuid.UUID { return i.ID }, &models.Invoice{})
}

// Available reads the current on-hand quantity per part. Always a fresh
// query; the workflows must never see a cached count.
func (s *GormStore) Available() (map[uuid.UUID]int, error) {
	var parts []models.Part
	if err := s.db.Find(&parts).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]int, len(parts))
	for _, p := range parts {
		out[p.ID] = p.AvailableQty
	}
	return out, nil
}

// Decrement applies the whole instruction set in one transaction. The
// guarded UPDATE keeps quantities non-negative even if a concurrent writer
// raced between the workflow's availability check and this call.
func (s *GormStore) Decrement(needed map[uuid.UUID]int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for partID, qty := range needed {
			res := tx.Model(&models.Part{}).
				Where("id = ? AND available_qty >= ?", partID, qty).
				UpdateColumn("available_qty", gorm.Expr("available_qty - ?", qty))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w: part %s", workflow.ErrInsufficientStock, partID)
			}
		}
		return nil
	})
}

func (s *GormStore) ServiceCenters() ([]models.ServiceCenter, error) {
	var out []models.ServiceCenter
	if err := s.db.Order("created_at").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// replaceAll upserts every record of the snapshot and deletes the rows
// that fell out of it, inside one transaction.
func replaceAll[T any](db *gorm.DB, records []T, id func(T) uuid.UUID, model any) error {
	return db.Transaction(func(tx *gorm.DB) error {
		ids := make([]uuid.UUID, 0, len(records))
		for _, rec := range records {
			ids = append(ids, id(rec))
		}

		if len(records) > 0 {
			if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).
				Clauses(clause.OnConflict{UpdateAll: true}).
				Create(&records).Error; err != nil {
				return err
			}
			return tx.Where("id NOT IN ?", ids).Delete(model).Error
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error
	})
}
