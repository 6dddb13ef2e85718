package models

import "time"

// Payment record statuses
const (
	PaymentRecordPending = "pending"
	PaymentRecordSuccess = "success"
	PaymentRecordExpired = "expired"
)

// Payment methods
const (
	PaymentMethodCash      = "cash"
	PaymentMethodPromptPay = "promptpay"
)

// Payment is the record of a settled (or attempted) bill for an order.
// Actual money movement happens outside this system; staff verify and mark
// the record successful.
type Payment struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	OrderID      uint       `gorm:"not null;index" json:"order_id"`
	Order        Order      `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"order"`
	Amount       float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method       string     `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	Status       string     `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReferenceID  string     `gorm:"type:varchar(100)" json:"reference_id"`
	CashReceived float64    `gorm:"type:decimal(10,2)" json:"cash_received"`
	Change       float64    `gorm:"type:decimal(10,2)" json:"change"`
	PaymentTime  *time.Time `json:"payment_time,omitempty"`
	ExpiredAt    *time.Time `json:"expired_at,omitempty"`
	VerifiedBy   *uint      `json:"verified_by,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}
