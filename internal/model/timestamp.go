package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// maxUnixSeconds is 9999-12-31T23:59:59Z. Anything larger is milliseconds
// or garbage, not a creation time.
const maxUnixSeconds = 253402300799

// Timestamp is a creation time that may be stored as unix seconds or as an
// ISO-8601 string. Values that cannot be parsed are the zero time.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// ParseTimestamp converts a unix-seconds or ISO-8601 string.
func ParseTimestamp(s string) Timestamp {
	s = strings.TrimSpace(s)
	if s == "" {
		return Timestamp{}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromUnix(float64(secs))
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return fromUnix(f)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}
		}
	}
	return Timestamp{}
}

// fromUnix returns the zero time for seconds outside 0..maxUnixSeconds.
func fromUnix(secs float64) Timestamp {
	if math.IsNaN(secs) || secs < 0 || secs > maxUnixSeconds {
		return Timestamp{}
	}
	return Timestamp{Time: time.Unix(int64(secs), 0).UTC()}
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*t = Timestamp{}
			return nil
		}
		*t = ParseTimestamp(s)
		return nil
	}
	*t = ParseTimestamp(string(data))
	return nil
}

// MarshalJSON always writes unix seconds, the shape Stripe uses.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(t.Unix(), 10)), nil
}

// Scan lets the created column be a bigint, a timestamptz or text.
func (t *Timestamp) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = Timestamp{}
	case int64:
		*t = fromUnix(float64(v))
	case float64:
		*t = fromUnix(v)
	case time.Time:
		*t = Timestamp{Time: v}
	case []byte:
		*t = ParseTimestamp(string(v))
	case string:
		*t = ParseTimestamp(v)
	default:
		return fmt.Errorf("unsupported created value of type %T", src)
	}
	return nil
}

func (t Timestamp) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Unix(), nil
}
