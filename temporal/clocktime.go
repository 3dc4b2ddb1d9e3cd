package temporal

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ClockTime is a minute-granular time of day with no date or zone attached.
// The zero value is midnight.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) Before(o ClockTime) bool {
	if c.Hour != o.Hour {
		return c.Hour < o.Hour
	}
	return c.Minute < o.Minute
}

func (c ClockTime) After(o ClockTime) bool {
	return o.Before(c)
}

// String renders the 24-hour HH:MM form used by edit forms.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// TwelveHour renders the H:MM AM/PM form used in event listings.
func (c ClockTime) TwelveHour() string {
	hour := c.Hour
	suffix := "AM"
	if hour > 11 {
		suffix = "PM"
		if hour > 12 {
			hour -= 12
		}
	} else if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, suffix)
}

// NullClockTime maps a nullable TIME column, in the manner of sql.NullTime.
type NullClockTime struct {
	ClockTime ClockTime
	Valid     bool
}

func (n NullClockTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return fmt.Sprintf("%02d:%02d:00", n.ClockTime.Hour, n.ClockTime.Minute), nil
}

func (n *NullClockTime) Scan(src interface{}) error {
	if src == nil {
		*n = NullClockTime{}
		return nil
	}

	switch v := src.(type) {
	case time.Time:
		*n = NullClockTime{ClockTime: ClockTime{Hour: v.Hour(), Minute: v.Minute()}, Valid: true}
		return nil
	case string:
		return n.scanText(v)
	case []byte:
		return n.scanText(string(v))
	}
	return fmt.Errorf("cannot scan %T into NullClockTime", src)
}

func (n *NullClockTime) scanText(s string) error {
	var hour, minute int
	if _, err := fmt.Sscanf(s, "%d:%d", &hour, &minute); err != nil {
		return fmt.Errorf("cannot scan %q into NullClockTime: %v", s, err)
	}
	*n = NullClockTime{ClockTime: ClockTime{Hour: hour, Minute: minute}, Valid: true}
	return nil
}

// MarshalJSON emits "HH:MM" or null.
func (n NullClockTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.ClockTime.String())
}

func (n *NullClockTime) UnmarshalJSON(data []byte) error {
	var s *string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == nil {
		*n = NullClockTime{}
		return nil
	}
	return n.scanText(*s)
}
