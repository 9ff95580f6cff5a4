package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackingEvent is an append-only log entry; events are never updated or
// deleted.
type TrackingEvent struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingID string     `gorm:"column:tracking_id;index" json:"tracking_id"`
	ParcelID   *uuid.UUID `gorm:"type:uuid;column:parcel_id" json:"parcel_id"`
	Status     string     `gorm:"column:status" json:"status"`
	Message    string     `gorm:"column:message" json:"message"`
	Time       time.Time  `gorm:"column:time;index" json:"time"`
	UpdateBy   string     `gorm:"column:update_by" json:"update_by"`
}

func (TrackingEvent) TableName() string {
	return "tracking_events"
}

func (e *TrackingEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	return nil
}
