package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rider status machine: pending -> active (approve) or pending -> reject.
// Both outcomes are terminal.
const (
	RiderStatusPending  = "pending"
	RiderStatusActive   = "active"
	RiderStatusRejected = "reject"
)

type Rider struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string    `gorm:"column:name" json:"name"`
	Email         string    `gorm:"column:email;index" json:"email"`
	Phone         string    `gorm:"column:phone" json:"phone"`
	Region        string    `gorm:"column:region" json:"region"`
	District      string    `gorm:"column:district;index" json:"district"`
	Status        string    `gorm:"column:status;not null" json:"status"`
	ActiveParcels int       `gorm:"column:active_parcels;not null;default:0" json:"activeParcels"`
	AppliedAt     time.Time `gorm:"column:applied_at" json:"appliedAt"`

	// AssignedParcels is the rider's current workload, ordered by assignment
	// time. active_parcels is incremented in the same transaction that links
	// a parcel, so the counter tracks the association.
	AssignedParcels []Parcel `gorm:"foreignKey:RiderID" json:"assignedParcels,omitempty"`
}

func (Rider) TableName() string {
	return "riders"
}

func (r *Rider) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Status == "" {
		r.Status = RiderStatusPending
	}
	if r.AppliedAt.IsZero() {
		r.AppliedAt = time.Now()
	}
	return nil
}
