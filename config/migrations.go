package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
	"evolt.in/scms/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250812_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.ServiceCenter{}, &models.Part{},
					&models.Appointment{}, &models.JobCard{}, &models.JobCardReview{},
					&models.PartsRequest{}, &models.PartsRequestItem{})
			},
		},
		{
			ID: "20250819_add_billing_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.Quotation{}, &models.Invoice{}, &models.InvoiceItem{})
			},
		},
		{
			ID: "20250826_add_intake_requests",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.ServiceIntakeRequest{})
			},
		},
		{
			ID: "20250828_normalize_legacy_appointment_statuses",
			Migrate: func(tx *gorm.DB) error {
				// Older imports carry statuses like "SENT_TO_MANAGER" or
				// "in_progress"; rewrite them to the canonical vocabulary.
				var appts []models.Appointment
				if err := tx.Find(&appts).Error; err != nil {
					return err
				}
				for i := range appts {
					canonical, ok := models.ParseAppointmentStatus(string(appts[i].Status))
					if !ok || canonical == appts[i].Status {
						continue
					}
					if err := tx.Model(&models.Appointment{}).
						Where("id = ?", appts[i].ID).
						Update("status", canonical).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})

	return m.Migrate()
}
