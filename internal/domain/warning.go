package domain

type WarningKind string

const (
	WarningUncovered     WarningKind = "uncovered"
	WarningConflict      WarningKind = "conflict"
	WarningOvertime      WarningKind = "overtime"
	WarningRestViolation WarningKind = "rest_violation"
	WarningAvailability  WarningKind = "availability"
	WarningInvalidShift  WarningKind = "invalid_shift"
	WarningUnassigned    WarningKind = "unassigned"
)

type WarningSeverity int

const (
	SeverityInfo WarningSeverity = iota
	SeverityWarning
	SeverityCritical
)

func (s WarningSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// ScheduleWarning is a non-blocking validation finding. Day, EmployeeID
// and ShiftID are optional correlation hooks for UI highlighting.
type ScheduleWarning struct {
	Kind       WarningKind     `json:"kind"`
	Severity   WarningSeverity `json:"severity"`
	Message    string          `json:"message"`
	Day        *int            `json:"day,omitempty"`
	EmployeeID *int64          `json:"employeeID,omitempty"`
	ShiftID    string          `json:"shiftID,omitempty"`
}
