package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

const (
	DeliveryStatusNotCollected = "not collected"
	DeliveryStatusCollecting   = "collecting"
	DeliveryStatusInTransit    = "in transit"
	DeliveryStatusDelivered    = "delivered"
)

// Parcel JSON field names follow the client contract, which mixes snake_case
// and camelCase.
type Parcel struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TrackingID            string     `gorm:"column:tracking_id;index" json:"tracking_id"`
	Title                 string     `gorm:"column:title" json:"title"`
	Type                  string     `gorm:"column:type" json:"type"`
	Weight                float64    `gorm:"column:weight" json:"weight"`
	Cost                  float64    `gorm:"column:cost" json:"cost"`
	CreatedBy             string     `gorm:"column:created_by;index" json:"created_by"`
	PaymentStatus         string     `gorm:"column:payment_status;not null" json:"payment_status"`
	DeliveryStatus        string     `gorm:"column:delivery_status;not null" json:"delivery_status"`
	SenderName            string     `gorm:"column:sender_name" json:"senderName"`
	SenderContact         string     `gorm:"column:sender_contact" json:"senderContact"`
	SenderRegion          string     `gorm:"column:sender_region" json:"senderRegion"`
	SenderServiceCenter   string     `gorm:"column:sender_service_center;index" json:"senderServiceCenter"`
	SenderAddress         string     `gorm:"column:sender_address" json:"senderAddress"`
	ReceiverName          string     `gorm:"column:receiver_name" json:"receiverName"`
	ReceiverContact       string     `gorm:"column:receiver_contact" json:"receiverContact"`
	ReceiverRegion        string     `gorm:"column:receiver_region" json:"receiverRegion"`
	ReceiverServiceCenter string     `gorm:"column:receiver_service_center" json:"receiverServiceCenter"`
	ReceiverAddress       string     `gorm:"column:receiver_address" json:"receiverAddress"`
	PickupInstruction     string     `gorm:"column:pickup_instruction" json:"pickupInstruction"`
	DeliveryInstruction   string     `gorm:"column:delivery_instruction" json:"deliveryInstruction"`
	RiderID               *uuid.UUID `gorm:"type:uuid;column:rider_id;index" json:"rider_id"`
	RiderAssignedAt       *time.Time `gorm:"column:rider_assigned_at" json:"riderAssignedAt"`
	CreationDate          time.Time  `gorm:"column:creation_date;index" json:"creation_date"`
}

func (Parcel) TableName() string {
	return "parcels"
}

func (p *Parcel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.PaymentStatus == "" {
		p.PaymentStatus = PaymentStatusUnpaid
	}
	if p.DeliveryStatus == "" {
		p.DeliveryStatus = DeliveryStatusNotCollected
	}
	if p.CreationDate.IsZero() {
		p.CreationDate = time.Now()
	}
	return nil
}
