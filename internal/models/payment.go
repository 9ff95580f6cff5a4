package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment records are immutable after insert.
type Payment struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TransactionID string    `gorm:"column:transaction_id;index" json:"transactionId"`
	Amount        float64   `gorm:"column:amount" json:"amount"`
	ParcelID      uuid.UUID `gorm:"type:uuid;column:parcel_id;index" json:"parcelId"`
	UserEmail     string    `gorm:"column:user_email;index" json:"userEmail"`
	PaidAt        time.Time `gorm:"column:paid_at;index" json:"paid_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
