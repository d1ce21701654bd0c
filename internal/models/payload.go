package models

import (
	"database/sql/driver"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// payloadColumnTypes maps a dialect to the column type of a Payload.
// MSSQL has no json type.
var payloadColumnTypes = map[string]string{
	"mysql":     "JSON",
	"postgres":  "JSONB",
	"sqlite":    "JSON",
	"sqlserver": "NVARCHAR(MAX)",
	"mssql":     "NVARCHAR(MAX)",
}

// Payload is the JSON body of a content snapshot
type Payload struct {
	datatypes.JSON
}

// NewPayload encodes content into a Payload
func NewPayload(content Content) (Payload, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return Payload{}, err
	}
	return Payload{JSON: datatypes.JSON(raw)}, nil
}

// Content decodes the payload
func (p Payload) Content() (Content, error) {
	var c Content
	err := json.Unmarshal([]byte(p.JSON), &c)
	return c, err
}

// Value promotes the embedded JSON's Value method
func (p Payload) Value() (driver.Value, error) {
	return p.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (p *Payload) Scan(value interface{}) error {
	return p.JSON.Scan(value)
}

// GormDBDataType picks the column type per driver
func (Payload) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if t, ok := payloadColumnTypes[db.Dialector.Name()]; ok {
		return t
	}
	return "TEXT"
}
