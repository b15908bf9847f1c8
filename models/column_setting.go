package models

import (
	"time"
)

// ColumnSetting coluna habilitada/desabilitada no kanban por empresa.
// Unico estado durado que este core possui.
type ColumnSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CompanyID string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_company_status" json:"company_id"`
	Status    Status    `gorm:"type:varchar(20);not null;uniqueIndex:idx_company_status" json:"status"`
	Enabled   bool      `gorm:"not null;default:true" json:"enabled"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
