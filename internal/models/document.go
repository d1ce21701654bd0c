package models

import (
	"time"
)

// ContentDocument stores one versioned content snapshot per locale
type ContentDocument struct {
	DocumentID      uint64 `gorm:"primaryKey;autoIncrement"`
	Locale          string `gorm:"uniqueIndex;size:16;not null"`
	DocumentVersion uint64 `gorm:"not null;default:0"`
	Payload         Payload
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides the table name for ContentDocument
func (ContentDocument) TableName() string {
	return "content_documents"
}
