package models

import "time"

// AuditLog records who did what to which record. Rows are append-only.
type AuditLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`                        // primary key
	ShopID     uint      `gorm:"not null;index" json:"shop_id"`               // shop scope
	UserID     uint      `gorm:"not null;index" json:"user_id"`               // acting user
	Action     string    `gorm:"type:varchar(40);not null;index" json:"action"` // sale.create, sale.delete, ...
	EntityType string    `gorm:"type:varchar(40);not null;index:idx_audit_entity" json:"entity_type"` // record kind
	EntityID   uint      `gorm:"not null;index:idx_audit_entity" json:"entity_id"` // record id
	Detail     JSON      `gorm:"type:json" json:"detail"`                     // action payload snapshot
	IP         string    `gorm:"type:varchar(45)" json:"ip"`                  // client address
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                     // event time
}

// TableName sets the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
