package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Attendance status values. Comparison is case-sensitive; anything else is
// rejected at the API boundary.
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Attendance represents one employee's presence status on a single date.
// Rows are never updated in place; they are created and, eventually, deleted
// by id. Duplicate (EmployeeID, Date) pairs are permitted.
type Attendance struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeName string    `gorm:"size:255;not null" json:"employeeName"`
	EmployeeID   string    `gorm:"size:64;not null;index" json:"employeeID"`
	Date         Date      `gorm:"type:date;not null;index" json:"date"`
	Status       string    `gorm:"size:16;not null" json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

const dateLayout = "2006-01-02"

// Date is a calendar date stored in a DATE column and rendered on the wire as
// YYYY-MM-DD.
type Date time.Time

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date(t), nil
}

func (d Date) String() string {
	return time.Time(d).Format(dateLayout)
}

// MarshalJSON renders the date as a quoted YYYY-MM-DD string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a quoted YYYY-MM-DD string.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("date must be a quoted %s string", dateLayout)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer; dates are written as YYYY-MM-DD.
func (d Date) Value() (driver.Value, error) {
	return d.String(), nil
}

// Scan implements sql.Scanner. The MySQL driver yields time.Time for DATE
// columns when parseTime is enabled and raw bytes otherwise.
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Date(v)
		return nil
	case []byte:
		parsed, err := ParseDate(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case string:
		parsed, err := ParseDate(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}
	return fmt.Errorf("cannot scan %T into Date", value)
}

// GormDataType tells the migrator to use a DATE column.
func (Date) GormDataType() string {
	return "date"
}
