package models

import "time"

// Ingredient is kitchen stock managed from the cooker screen.
type Ingredient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);unique;not null" json:"name"`
	Unit      string    `gorm:"type:varchar(50);not null" json:"unit"`
	Quantity  float64   `gorm:"not null;default:0" json:"quantity"`
	Threshold float64   `gorm:"not null;default:0" json:"threshold"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// IsLow reports whether the stock has fallen to the reorder threshold.
func (i *Ingredient) IsLow() bool {
	return i.Quantity <= i.Threshold
}
