package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewStatus is the manager-review state of a job card. It moves
// PENDING -> APPROVED or PENDING -> REJECTED and is then terminal for that
// review cycle; a rejected card is resubmitted by opening a new cycle.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "PENDING"
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

// JobCard is the operational record opened when a vehicle arrives. At most
// one active job card exists per appointment; SourceAppointmentID is a
// back-reference, not ownership.
type JobCard struct {
	ID                  uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	JobCardNumber       string       `gorm:"size:30;uniqueIndex;not null" json:"jobCardNumber"`
	SourceAppointmentID uuid.UUID    `gorm:"type:uuid;not null;index" json:"sourceAppointmentId"`
	ServiceCenterID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"serviceCenterId"`
	OdometerReading     int          `json:"odometerReading"`
	BatterySOC          int          `json:"batterySoc"` // state of charge % at intake
	Complaints          string       `gorm:"type:text" json:"complaints,omitempty"`
	Diagnosis           string       `gorm:"type:text" json:"diagnosis,omitempty"`
	PassedToManager     bool         `gorm:"default:false" json:"passedToManager"`
	ManagerReviewStatus ReviewStatus `gorm:"size:20;not null;default:'PENDING'" json:"managerReviewStatus"`
	ReviewCycle         int          `gorm:"not null;default:1" json:"reviewCycle"`

	PartsRequests []PartsRequest  `gorm:"foreignKey:JobCardID" json:"partsRequests,omitempty"`
	Reviews       []JobCardReview `gorm:"foreignKey:JobCardID" json:"reviews,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (jc *JobCard) BeforeCreate(tx *gorm.DB) (err error) {
	if jc.ID == uuid.Nil {
		jc.ID = uuid.New()
	}
	return
}

// JobCardReview records the outcome of one manager review cycle. The rows
// are append-only; a resolved cycle is never mutated in place.
type JobCardReview struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	JobCardID  uuid.UUID    `gorm:"type:uuid;not null;index" json:"jobCardId"`
	Cycle      int          `gorm:"not null" json:"cycle"`
	Status     ReviewStatus `gorm:"size:20;not null" json:"status"`
	Notes      string       `gorm:"type:text" json:"notes,omitempty"`
	ReviewedBy string       `gorm:"size:100" json:"reviewedBy,omitempty"`
	ReviewedAt *time.Time   `json:"reviewedAt,omitempty"`
	CreatedAt  time.Time    `json:"createdAt"`
}

func (r *JobCardReview) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
