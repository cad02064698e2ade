package domain

import "time"

// DraftShift is an ephemeral, in-memory proposed assignment. A nil
// EmployeeID marks an open (unassigned) shift. Times are minutes since
// local midnight, Day is 0-6 with Monday = 0.
type DraftShift struct {
	ID          string `json:"id"`
	EmployeeID  *int64 `json:"employeeID"`
	Day         int    `json:"day"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
	Role        *Role  `json:"role,omitempty"`
	Notes       string `json:"notes"`
}

// DurationMinutes returns the shift length; negative for invalid shifts.
func (d *DraftShift) DurationMinutes() int {
	return d.EndMinute - d.StartMinute
}

// Clone returns a deep copy so board snapshots never alias live shifts.
func (d *DraftShift) Clone() *DraftShift {
	c := *d
	if d.EmployeeID != nil {
		id := *d.EmployeeID
		c.EmployeeID = &id
	}
	if d.Role != nil {
		role := *d.Role
		c.Role = &role
	}
	return &c
}

type ShiftStatus string

const (
	ShiftStatusPlanned   ShiftStatus = "planned"
	ShiftStatusPublished ShiftStatus = "published"
	ShiftStatusCompleted ShiftStatus = "completed"
)

// PlannedShift is the persisted record produced by publishing. The
// engine writes these and reads them back only for conflict and
// overtime checks; completed shifts are never overwritten.
type PlannedShift struct {
	ID         int64       `json:"id"`
	ShopID     string      `json:"shopID"`
	EmployeeID int64       `json:"employeeID"`
	StartTime  time.Time   `json:"startTime"`
	EndTime    time.Time   `json:"endTime"`
	Status     ShiftStatus `json:"status"`
	Role       *Role       `json:"role,omitempty"`
	Notes      string      `json:"notes"`
	CreatedAt  time.Time   `json:"createdAt"`
	Version    int32       `json:"-"`
}
