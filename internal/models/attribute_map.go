package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AttributeMap holds a category's schema-specific fields as a JSON object
// column. Unlike datatypes.JSONMap it scans numbers back as float64, so an
// item loaded from the database carries the same value shapes the coercion
// layer writes.
type AttributeMap map[string]interface{}

func (m AttributeMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]interface{}(m))
	return string(b), err
}

func (m *AttributeMap) Scan(val interface{}) error {
	if val == nil {
		*m = nil
		return nil
	}
	var ba []byte
	switch v := val.(type) {
	case []byte:
		ba = v
	case string:
		ba = []byte(v)
	default:
		return fmt.Errorf("unsupported attributes value: %T", val)
	}
	t := map[string]interface{}{}
	if err := json.Unmarshal(ba, &t); err != nil {
		return err
	}
	*m = t
	return nil
}

func (AttributeMap) GormDataType() string { return "json" }

func (AttributeMap) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "postgres":
		return "JSONB"
	case "mysql":
		return "JSON"
	}
	return ""
}
