package models

import "time"

// NotificationKind is the severity of a notification
type NotificationKind string

const (
	KindSuccess NotificationKind = "success"
	KindError   NotificationKind = "error"
	KindInfo    NotificationKind = "info"
)

// Notification is a transient, auto-expiring status message
type Notification struct {
	ID        string           `json:"id"`
	Kind      NotificationKind `json:"type"`
	Message   string           `json:"message"`
	CreatedAt time.Time        `json:"createdAt"`
}
