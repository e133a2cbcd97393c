package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Snapshots are stored as JSON text columns so a saved application keeps
// exactly what the client sent, whatever the database driver is.

func (j JobAnalysis) Value() (driver.Value, error) { return jsonValue(j) }

func (j *JobAnalysis) Scan(value any) error { return jsonScan(value, j) }

func (r ResumeData) Value() (driver.Value, error) { return jsonValue(r) }

func (r *ResumeData) Scan(value any) error { return jsonScan(value, r) }

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot, %w", err)
	}

	return string(b), nil
}

func jsonScan(value any, dst any) error {
	if value == nil {
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case string:
		b = []byte(v)
	case []byte:
		b = v
	default:
		return fmt.Errorf("failed to scan snapshot, unsupported type %T", value)
	}

	if len(b) == 0 {
		return nil
	}

	return json.Unmarshal(b, dst)
}
