package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/noah-isme/tutorbot-admin/pkg/format"
)

// Row is one record as returned by the store: column name to driver value. Accessors treat a
// missing column and a NULL value alike and fall back to the caller's default.
type Row map[string]interface{}

// Value returns the raw value when the column is present and not NULL.
func (r Row) Value(key string) (interface{}, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String renders the column as text.
func (r Row) String(key, fallback string) string {
	v, ok := r.Value(key)
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(t)
	}
}

// Int reads an integer column. Values that cannot be read as integers yield fallback.
func (r Row) Int(key string, fallback int64) int64 {
	v, ok := r.IntOK(key)
	if !ok {
		return fallback
	}
	return v
}

// IntOK reads an integer column and reports whether a usable value was present.
func (r Row) IntOK(key string) (int64, bool) {
	v, ok := r.Value(key)
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case int64:
		return t, true
	case int32:
		return int64(t), true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case []byte:
		n, err := strconv.ParseInt(string(t), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// IntPtr reads a nullable integer column such as a foreign key.
func (r Row) IntPtr(key string) *int64 {
	v, ok := r.IntOK(key)
	if !ok {
		return nil
	}
	return &v
}

// Bool reads a boolean column.
func (r Row) Bool(key string, fallback bool) bool {
	v, ok := r.Value(key)
	if !ok {
		return fallback
	}
	switch t := v.(type) {
	case bool:
		return t
	case []byte:
		b, err := strconv.ParseBool(string(t))
		if err != nil {
			return fallback
		}
		return b
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return fallback
		}
		return b
	case int64:
		return t != 0
	default:
		return fallback
	}
}

// Float reads a nullable numeric column; numeric types arrive as text from lib/pq.
func (r Row) Float(key string) *float64 {
	v, ok := r.Value(key)
	if !ok {
		return nil
	}
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int64:
		f = float64(t)
	case int32:
		f = float64(t)
	case int:
		f = float64(t)
	case []byte:
		parsed, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

// Time reads a timestamp column stored either natively or as text.
func (r Row) Time(key string) (time.Time, bool) {
	v, ok := r.Value(key)
	if !ok {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case []byte:
		return format.ParseTimestamp(string(t))
	case string:
		return format.ParseTimestamp(t)
	default:
		return time.Time{}, false
	}
}

// List reads a JSON array column. Anything that is not an array yields nil.
func (r Row) List(key string) []interface{} {
	v, ok := r.Value(key)
	if !ok {
		return nil
	}
	var raw []byte
	switch t := v.(type) {
	case []interface{}:
		return t
	case []byte:
		raw = t
	case string:
		raw = []byte(t)
	default:
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var list []interface{}
	if err := dec.Decode(&list); err != nil {
		return nil
	}
	return list
}
