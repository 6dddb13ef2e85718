package models

import "time"

// Session statuses
const (
	SessionActive   = "active"
	SessionFinished = "finished"
)

// DineInSession is a table-scoped customer visit. It groups the orders of one
// seating without requiring a login; customers hold the session key.
type DineInSession struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	TableID    uint      `gorm:"not null;index" json:"table_id"`
	Table      Table     `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	SessionKey string    `gorm:"type:varchar(64);unique;not null" json:"session_key"`
	GuestName  string    `gorm:"type:varchar(255)" json:"guest_name"`
	Status     string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
