package models

import (
	"encoding/json"
	"time"
)

// Audit actions recorded by the system.
const (
	AuditActionLogin    = "LOGIN"
	AuditActionRegister = "REGISTER"
	AuditActionCreate   = "CREATE"
	AuditActionUpdate   = "UPDATE"
	AuditActionDelete   = "DELETE"
)

// AuditLog is an append-only record of privileged actions, persisted
// asynchronously off the request path.
type AuditLog struct {
	ID         string          `db:"id" json:"id"`
	UserID     *int64          `db:"user_id" json:"user_id"`
	Action     string          `db:"action" json:"action"`
	Resource   string          `db:"resource" json:"resource"`
	ResourceID *int64          `db:"resource_id" json:"resource_id"`
	NewValues  json.RawMessage `db:"new_values" json:"new_values,omitempty"`
	IPAddress  string          `db:"ip_address" json:"ip_address"`
	UserAgent  string          `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
