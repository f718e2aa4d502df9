package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Vector stores a fixed-dimension embedding as a JSON float array.
// MySQL has no native vector column; nearest-neighbor ranking runs in-process.
type Vector []float32

func (v Vector) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal([]float32(v))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (v *Vector) Scan(value interface{}) error {
	if v == nil {
		return fmt.Errorf("models.Vector: Scan on nil pointer")
	}
	if value == nil {
		*v = nil
		return nil
	}

	var raw string
	switch typed := value.(type) {
	case []byte:
		raw = string(typed)
	case string:
		raw = typed
	default:
		return fmt.Errorf("models.Vector: unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		*v = nil
		return nil
	}

	var arr []float32
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return fmt.Errorf("models.Vector: %w", err)
	}
	*v = arr
	return nil
}
