package utils

import (
	"fmt"
	"sort"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

// ValidateAvailabilityWindows checks a full recurring submission:
// every window must be a positive range on a valid weekday, and
// windows on the same day must not overlap each other.
func ValidateAvailabilityWindows(windows []domain.AvailabilityWindow) error {
	for i, w := range windows {
		if w.Day < 0 || w.Day > 6 {
			return fmt.Errorf("window %d has an invalid day", i+1)
		}
		if w.StartMinute < 0 || w.EndMinute > 24*60 {
			return fmt.Errorf("window %d is outside the day", i+1)
		}
		if w.EndMinute <= w.StartMinute {
			return fmt.Errorf("window %d must end after it starts", i+1)
		}
	}

	sorted := make([]domain.AvailabilityWindow, len(windows))
	copy(sorted, windows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Day != sorted[j].Day {
			return sorted[i].Day < sorted[j].Day
		}
		return sorted[i].StartMinute < sorted[j].StartMinute
	})

	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if prev.Day == cur.Day && cur.StartMinute < prev.EndMinute {
			return fmt.Errorf("windows overlap on day %d", cur.Day)
		}
	}

	return nil
}
