package models

import "time"

// CareerPath tracks position and progression for kitchen staff.
type CareerPath struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"user_id"`
	User              User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user"`
	Position          string    `gorm:"type:varchar(255);not null" json:"position"`
	Salary            float64   `gorm:"type:decimal(10,2);not null;default:0.00" json:"salary"`
	ImprovementPoints int       `gorm:"not null;default:0" json:"improvement_points"`
	Level             int       `gorm:"not null;default:1" json:"level"`
	CreatedAt         time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time `gorm:"not null" json:"updated_at"`
}
