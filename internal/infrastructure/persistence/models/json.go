package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// JSONMap is a JSON object column. A nil map is stored as NULL.
type JSONMap map[string]any

// Scan implements sql.Scanner
func (m *JSONMap) Scan(value any) error {
	if value == nil {
		*m = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal JSON value: %v", value)
	}

	if string(bytes) == "null" {
		*m = nil
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Value implements driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	bytes, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(bytes), nil
}

// GormDataType is the column type used by the migrator for dialects not listed in GormDBDataType
func (JSONMap) GormDataType() string {
	return "json"
}

// GormDBDataType picks a native JSON type per dialect
func (JSONMap) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "sqlite":
		return "JSON"
	default:
		return "TEXT"
	}
}
