package domain

import "time"

// CoverageRequirement is a staffing need for one weekday of a specific
// week: between StartMinute and EndMinute the shop wants Headcount
// people, optionally of a minimum role. Times are minutes since local
// midnight, days are 0-6 with Monday = 0.
type CoverageRequirement struct {
	ID          int64     `json:"id"`
	ShopID      string    `json:"shopID"`
	WeekStart   time.Time `json:"weekStart"`
	Day         int       `json:"day"`
	StartMinute int       `json:"startMinute"`
	EndMinute   int       `json:"endMinute"`
	Headcount   int       `json:"headcount"`
	Role        *Role     `json:"role,omitempty"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
