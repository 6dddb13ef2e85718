package models

import "time"

// Waiter call statuses
const (
	WaiterCallPending      = "pending"
	WaiterCallAcknowledged = "acknowledged"
)

// WaiterCall is raised from a customer's phone and shown to staff until
// someone acknowledges it.
type WaiterCall struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	SessionID uint          `gorm:"not null;index" json:"session_id"`
	Session   DineInSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"session"`
	TableID   uint          `gorm:"not null;index" json:"table_id"`
	Table     Table         `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Message   string        `gorm:"type:varchar(255)" json:"message"`
	Status    string        `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time     `gorm:"not null" json:"updated_at"`
}
