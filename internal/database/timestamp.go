package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp scans DATETIME columns whether the driver hands back a time.Time
// (mysql with parseTime) or the raw text sqlite stores for CURRENT_TIMESTAMP.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05Z07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02",
}

func (ts *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		ts.Time = time.Time{}
		return nil
	case time.Time:
		ts.Time = v
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts *Timestamp) parse(value string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("unparsable timestamp %q", value)
}

func (ts Timestamp) Value() (driver.Value, error) {
	return ts.Time, nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Time)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &ts.Time)
}

func (ts Timestamp) MarshalYAML() (any, error) {
	return ts.Time, nil
}
