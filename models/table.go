package models

import "time"

// Table statuses
const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
	TableDirty     = "dirty"
)

type Table struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	BranchID    uint      `gorm:"not null;index" json:"branch_id"`
	Branch      Branch    `gorm:"foreignKey:BranchID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"branch"`
	TableNumber string    `gorm:"type:varchar(50);not null" json:"table_number"`
	Capacity    int       `gorm:"not null;default:4" json:"capacity"`
	QRCode      string    `gorm:"type:varchar(255);unique" json:"qr_code"`
	Status      string    `gorm:"type:varchar(50);not null;default:'available'" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
