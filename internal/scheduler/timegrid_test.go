package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizedWeekStart(t *testing.T) {
	loc := testLocation(t)

	tests := []struct {
		name  string
		input time.Time
		want  time.Time
	}{
		{
			name:  "mid-week afternoon floors to monday midnight",
			input: time.Date(2026, time.March, 4, 15, 30, 0, 0, loc),
			want:  time.Date(2026, time.March, 2, 0, 0, 0, 0, loc),
		},
		{
			name:  "monday midnight is a fixed point",
			input: time.Date(2026, time.March, 2, 0, 0, 0, 0, loc),
			want:  time.Date(2026, time.March, 2, 0, 0, 0, 0, loc),
		},
		{
			name:  "sunday belongs to the week started six days earlier",
			input: time.Date(2026, time.March, 8, 23, 59, 0, 0, loc),
			want:  time.Date(2026, time.March, 2, 0, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizedWeekStart(tt.input, loc)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestNormalizedWeekStartIsIdempotent(t *testing.T) {
	loc := testLocation(t)
	once := NormalizedWeekStart(time.Date(2026, time.July, 17, 9, 0, 0, 0, loc), loc)
	twice := NormalizedWeekStart(once, loc)
	assert.True(t, once.Equal(twice))
}

func TestAbsoluteTimeAcrossDSTTransition(t *testing.T) {
	loc := testLocation(t)
	// the week containing the US spring-forward on 2026-03-08
	weekStart := NormalizedWeekStart(time.Date(2026, time.March, 5, 12, 0, 0, 0, loc), loc)
	require.Equal(t, time.March, weekStart.Month())
	require.Equal(t, 2, weekStart.Day())

	// Sunday 09:00 local must stay 09:00 on the wall clock even though
	// the day is only 23 hours long
	sunday := AbsoluteTime(weekStart, 6, 9*60)
	assert.Equal(t, 9, sunday.Hour())
	assert.Equal(t, 0, sunday.Minute())
	assert.Equal(t, 8, sunday.Day())
}

func TestSnap(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{7, 0},     // half step rounds down
		{8, 15},    // past half rounds up
		{15, 15},
		{22, 15},
		{23, 30},
		{-7, 0},
		{-8, -15},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Snap(tt.in), "Snap(%d)", tt.in)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(3, 5, 10))
	assert.Equal(t, 10, Clamp(12, 5, 10))
	assert.Equal(t, 7, Clamp(7, 5, 10))
}

func TestOverlapsIsStrict(t *testing.T) {
	assert.True(t, overlaps(540, 780, 720, 960))
	assert.False(t, overlaps(540, 720, 720, 960), "touching intervals do not overlap")
	assert.False(t, overlaps(540, 600, 660, 720))
}

func TestContainsIsInclusive(t *testing.T) {
	assert.True(t, contains(480, 720, 480, 720), "exact bounds count as contained")
	assert.True(t, contains(480, 720, 540, 660))
	assert.False(t, contains(480, 720, 420, 660))
}

func TestTimeWindowSnapped(t *testing.T) {
	w := TimeWindow{StartMinute: 307, EndMinute: 1433}.Snapped()
	assert.Equal(t, 300, w.StartMinute, "start aligns down")
	assert.Equal(t, 1440, w.EndMinute, "end aligns up")
}
