package domain

import "time"

// AvailabilityWindow is a recurring weekly window during which an
// employee can work. Absence of any window for a weekday means the
// employee is available all day (permissive default).
type AvailabilityWindow struct {
	ID          int64     `json:"id"`
	ShopID      string    `json:"shopID"`
	EmployeeID  int64     `json:"employeeID"`
	Day         int       `json:"day"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// AvailabilityOverride is a one-off exception for a concrete date:
// either revoking part of a recurring window (IsAvailable=false) or
// granting availability outside one (IsAvailable=true).
type AvailabilityOverride struct {
	ID          int64     `json:"id"`
	ShopID      string    `json:"shopID"`
	EmployeeID  int64     `json:"employeeID"`
	Date        time.Time `json:"date"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// UnavailableDate blocks an employee for a whole calendar day. It wins
// over every window and override.
type UnavailableDate struct {
	ID         int64     `json:"id"`
	ShopID     string    `json:"shopID"`
	EmployeeID int64     `json:"employeeID"`
	Date       time.Time `json:"date"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"createdAt"`
	Version    int32     `json:"-"`
}
