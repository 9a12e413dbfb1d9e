package config

import (
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"evolt.in/scms/models"
)

// SeedServiceCenters inserts the initial centers and a starter parts
// catalogue. Skips anything already present, so it is safe on every boot.
func SeedServiceCenters(db *gorm.DB) {
	var count int64
	db.Model(&models.ServiceCenter{}).Count(&count)
	if count == 0 {
		centers := []models.ServiceCenter{
			{Name: "Okhla EV Service Center", Code: "SC001", State: "Delhi", City: "New Delhi", GSTIN: "07AABCE1234F1Z5"},
			{Name: "Andheri EV Service Center", Code: "SC002", State: "Maharashtra", City: "Mumbai", GSTIN: "27AABCE1234F1Z3"},
			{Name: "Whitefield EV Service Center", Code: "SC003", State: "Karnataka", City: "Bengaluru", GSTIN: "29AABCE1234F1Z9"},
		}
		for i := range centers {
			centers[i].IsActive = true
			if err := db.Create(&centers[i]).Error; err != nil {
				Log.WithError(err).WithField("code", centers[i].Code).Warn("seeding service center failed")
			}
		}
	}

	db.Model(&models.Part{}).Count(&count)
	if count == 0 {
		parts := []models.Part{
			{Name: "Traction Battery Module 2.5kWh", SKU: "BAT-2500", HSNCode: "8507", Category: "Battery", UnitPrice: decimal.NewFromInt(42000), GSTRate: decimal.NewFromInt(18), AvailableQty: 12, ReorderLevel: 4},
			{Name: "BMS Controller", SKU: "BMS-01", HSNCode: "8537", Category: "Battery", UnitPrice: decimal.NewFromInt(8500), GSTRate: decimal.NewFromInt(18), AvailableQty: 20, ReorderLevel: 5},
			{Name: "Hub Motor 3kW", SKU: "MOT-3000", HSNCode: "8501", Category: "Motor", UnitPrice: decimal.NewFromInt(15500), GSTRate: decimal.NewFromInt(18), AvailableQty: 8, ReorderLevel: 2},
			{Name: "Brake Pad Set", SKU: "BRK-PD-01", HSNCode: "8708", Category: "Brakes", UnitPrice: decimal.NewFromInt(900), GSTRate: decimal.NewFromInt(28), AvailableQty: 60, ReorderLevel: 20},
			{Name: "Onboard Charger 1.2kW", SKU: "CHG-1200", HSNCode: "8504", Category: "Charging", UnitPrice: decimal.NewFromInt(6200), GSTRate: decimal.NewFromInt(18), AvailableQty: 15, ReorderLevel: 5},
		}
		for i := range parts {
			parts[i].IsActive = true
			if err := db.Create(&parts[i]).Error; err != nil {
				Log.WithError(err).WithField("sku", parts[i].SKU).Warn("seeding part failed")
			}
		}
	}

	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count == 0 {
		password := os.Getenv("ADMIN_PASSWORD")
		if password == "" {
			Log.Warn("ADMIN_PASSWORD not set, skipping admin seed")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			Log.WithError(err).Warn("seeding admin user failed")
			return
		}
		admin := models.User{
			Name:         "Administrator",
			Email:        "admin@evolt.in",
			Phone:        "9999999999",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
			IsActive:     true,
		}
		if err := db.Create(&admin).Error; err != nil {
			Log.WithError(err).Warn("seeding admin user failed")
		}
	}
}
