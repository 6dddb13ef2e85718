package models

import "time"

type Order struct {
	ID                uint          `gorm:"primaryKey" json:"id"`
	SessionID         uint          `gorm:"not null;index" json:"session_id"`
	Session           DineInSession `gorm:"foreignKey:SessionID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"session"`
	TableID           uint          `gorm:"not null;index" json:"table_id"`
	Table             Table         `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"table"`
	Status            string        `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus     string        `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	TotalAmount       float64       `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	Notes             string        `gorm:"type:text" json:"notes"`
	StartCookingTime  *time.Time    `json:"start_cooking_time,omitempty"`
	FinishCookingTime *time.Time    `json:"finish_cooking_time,omitempty"`
	CreatedAt         time.Time     `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"not null" json:"updated_at"`
	OrderItems        []OrderItem   `gorm:"foreignKey:OrderID" json:"order_items"`
}

// AllItemsReady reports whether every loaded item has finished cooking. The
// order may only advance to ready once this holds.
func (o *Order) AllItemsReady() bool {
	if len(o.OrderItems) == 0 {
		return false
	}
	for _, item := range o.OrderItems {
		if item.Status != ItemReady {
			return false
		}
	}
	return true
}
