package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Roles compared against JWT claims by the workflow guards. Kept as plain
// strings so an external identity provider can supply them unchanged.
const (
	RoleAdmin            = "admin"
	RoleServiceAdvisor   = "service_advisor"
	RoleSCManager        = "sc_manager"
	RoleInventoryManager = "inventory_manager"
	RoleEngineer         = "engineer"
)

type User struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Email           string         `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone           string         `gorm:"size:15;uniqueIndex;not null" json:"phone"`
	PasswordHash    string         `gorm:"size:255;not null" json:"-"`
	Role            string         `gorm:"size:50;not null;default:'service_advisor'" json:"role"`
	ServiceCenterID *uuid.UUID     `gorm:"type:uuid;index" json:"serviceCenterId,omitempty"`
	ServiceCenter   *ServiceCenter `gorm:"foreignKey:ServiceCenterID" json:"serviceCenter,omitempty"`
	IsActive        bool           `gorm:"default:true" json:"isActive"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}
