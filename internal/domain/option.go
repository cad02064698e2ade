package domain

// ScheduleOption is a named, scored bundle of draft shifts produced by
// one generation strategy. Options are immutable once generated;
// selecting one seeds the mutable draft set on the board.
type ScheduleOption struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Strategy string            `json:"strategy"`
	Score    int               `json:"score"`
	Shifts   []*DraftShift     `json:"shifts"`
	Warnings []ScheduleWarning `json:"warnings"`
}

// CoverageBucket is one 15-minute accounting unit of the heat map.
// Delta = Assigned - Needed; negative means uncovered.
type CoverageBucket struct {
	Day         int `json:"day"`
	StartMinute int `json:"startMinute"`
	Needed      int `json:"needed"`
	Assigned    int `json:"assigned"`
	Delta       int `json:"delta"`
}
