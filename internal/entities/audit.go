package entities

import "time"

type AuditAction string

const (
	AuditActionSignup AuditAction = "signup"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records an account action. It never carries credentials.
type AuditEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"index;size:36" json:"user_id,omitempty"`
	Action    AuditAction `gorm:"index;size:32" json:"action"`
	Status    AuditStatus `gorm:"size:20" json:"status"`
	Reason    string      `gorm:"size:255" json:"reason,omitempty"` // Stable error message, never raw errors
	IPAddress string      `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string      `gorm:"size:500" json:"user_agent,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
