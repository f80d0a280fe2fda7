package models

import "time"

// Action types recorded in the audit log
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// AdminActionLog is one mutation issued through the admin interface.
type AdminActionLog struct {
	ID          int       `json:"id" db:"id"`
	Actor       string    `json:"actor" db:"actor"`
	ActionType  string    `json:"action_type" db:"action_type"`
	TargetType  string    `json:"target_type" db:"target_type"`
	TargetID    *int      `json:"target_id,omitempty" db:"target_id"`
	Description string    `json:"description" db:"description"`
	NewValue    *string   `json:"new_value,omitempty" db:"new_value"`
	IPAddress   *string   `json:"ip_address,omitempty" db:"ip_address"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
