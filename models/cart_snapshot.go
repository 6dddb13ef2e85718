package models

import "time"

// CartSnapshot mirrors a session's in-progress cart so a reconnecting client
// does not lose its selections. The snapshot is advisory; checkout reprices
// everything from the menus table.
type CartSnapshot struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SessionKey string    `gorm:"type:varchar(64);unique;not null" json:"session_key"`
	Payload    string    `gorm:"type:text;not null" json:"payload"` // JSON blob of cart lines
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}
