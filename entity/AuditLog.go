package entity

import "time"

// AuditLog rows are append-only.
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	WorkerID   uint      `gorm:"index" json:"workerId"`
	Email      string    `gorm:"size:150" json:"email"`
	ActionType string    `gorm:"size:50;index" json:"actionType"`
	Details    string    `gorm:"type:text" json:"details"`
	OnPage     string    `gorm:"size:100" json:"onPage"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
