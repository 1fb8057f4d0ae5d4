// audit/model.go
package audit

import (
	"time"
)

// Audited actions.
const (
	ActionLogin        = "login"
	ActionLoginFailed  = "login_failed"
	ActionCacheRefresh = "cache_refresh"
	ActionCacheCorrupt = "cache_corrupt"
)

type AuditLog struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	StudentID string    `json:"student_id"`
	Action    string    `json:"action"`
	DataKind  string    `json:"data_kind,omitempty"`
	ClientIP  string    `json:"client_ip,omitempty"`
	Success   bool      `json:"success"`
	Detail    string    `json:"detail,omitempty"`
}
