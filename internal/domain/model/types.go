package model

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONB stores a free-form JSON object in a jsonb column.
type JSONB map[string]interface{}

// Value implements driver.Valuer interface
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONB) Scan(src interface{}) error {
	if src == nil {
		*j = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, j)
	case string:
		return json.Unmarshal([]byte(v), j)
	default:
		*j = make(JSONB)
		return nil
	}
}

// StringList stores a JSON string array in a jsonb column.
type StringList []string

// Value implements driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

// Scan implements sql.Scanner interface
func (l *StringList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}

	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		*l = StringList{}
		return nil
	}
}
