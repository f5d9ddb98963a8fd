package domain

import "time"

// AuditEntry records a security-relevant action. Recording is best-effort:
// failures are logged locally and never surfaced to the request that caused
// the entry.
type AuditEntry struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Action      string    `json:"action" bson:"action"`
	EntityType  string    `json:"entity_type" bson:"entity_type"`
	EntityID    string    `json:"entity_id" bson:"entity_id"`
	OldValue    string    `json:"old_value,omitempty" bson:"old_value,omitempty"`
	NewValue    string    `json:"new_value,omitempty" bson:"new_value,omitempty"`
	ClientIP    string    `json:"client_ip" bson:"client_ip"`
	ClientAgent string    `json:"client_agent" bson:"client_agent"`
	At          time.Time `json:"at" bson:"at"`
}

// Audit actions recorded by the auth layer.
const (
	AuditActionRegister = "register"
	AuditActionLogin    = "login"
	AuditActionLogout   = "logout"
	AuditActionRefresh  = "token_refresh"
)
