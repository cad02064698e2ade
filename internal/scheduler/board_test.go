package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

func testBoard(t *testing.T, drafts ...*domain.DraftShift) *Board {
	t.Helper()
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	b := NewBoard(testValidator(t, nil, reqs, nil), reqs, DefaultWindow())
	if len(drafts) > 0 {
		b.ReplaceDrafts(drafts, true)
	}
	return b
}

func TestBoardDragCommit(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", 37, 1) // snaps to +30
	b.EndDrag("s1")

	shift := b.Drafts()[0]
	assert.Equal(t, 1, shift.Day)
	assert.Equal(t, 9*60+30, shift.StartMinute)
	assert.Equal(t, 13*60+30, shift.EndMinute)
	assert.True(t, b.CanUndo())
}

func TestBoardDragDeltasAreAgainstBaseline(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", 60, 0)
	b.DragShift("s1", 15, 0) // not cumulative: replaces the previous frame
	b.EndDrag("s1")

	assert.Equal(t, 9*60+15, b.Drafts()[0].StartMinute)
}

func TestBoardDragPreviewDoesNotTouchCommitted(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", 120, 0)

	assert.Equal(t, 9*60, b.Drafts()[0].StartMinute, "committed list unchanged mid-gesture")
	require.NotNil(t, b.PreviewShift("s1"))
	assert.Equal(t, 11*60, b.PreviewShift("s1").StartMinute)

	b.CancelInteraction("s1")
	assert.Nil(t, b.PreviewShift("s1"))
	assert.Equal(t, 9*60, b.Drafts()[0].StartMinute)
	assert.False(t, b.CanUndo(), "cancelled gesture pushes nothing")
}

func TestBoardDragNoopPushesNoUndo(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", 3, 0) // snaps back to zero
	b.EndDrag("s1")

	assert.False(t, b.CanUndo())
}

func TestBoardDragClampsToWindowAndWeek(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	window := TimeWindow{StartMinute: 5 * 60, EndMinute: 24 * 60}
	v := NewValidator(domain.DefaultConstraints(), testRoster(), emptyResolver(t), reqs, nil, window)
	b := NewBoard(v, reqs, window)
	b.ReplaceDrafts([]*domain.DraftShift{draft("s1", 3, 6, 9*60, 13*60)}, true)

	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", -10*60, 3) // far left, off the end of the week
	b.EndDrag("s1")

	shift := b.Drafts()[0]
	assert.Equal(t, 6, shift.Day, "day clamps to sunday")
	assert.Equal(t, 5*60, shift.StartMinute, "start clamps to window")
	assert.Equal(t, 4*60, shift.DurationMinutes(), "duration preserved")
}

func TestBoardResizeEdges(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginResize("s1"))
	b.ResizeShiftStart("s1", -60)
	b.EndResize("s1")
	assert.Equal(t, 8*60, b.Drafts()[0].StartMinute)

	require.True(t, b.BeginResize("s1"))
	b.ResizeShiftEnd("s1", 60)
	b.EndResize("s1")
	assert.Equal(t, 14*60, b.Drafts()[0].EndMinute)
}

func TestBoardResizeEnforcesMinimumDuration(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	require.True(t, b.BeginResize("s1"))
	b.ResizeShiftStart("s1", 10*60) // would invert the shift
	b.EndResize("s1")

	shift := b.Drafts()[0]
	assert.Equal(t, 13*60-MinShiftMinutes, shift.StartMinute)
	assert.Equal(t, MinShiftMinutes, shift.DurationMinutes())
}

func TestBoardAddShift(t *testing.T) {
	b := testBoard(t)

	added := b.AddShift(2, 9*60+7, 4*60, ref(int64(3)))

	require.NotNil(t, added)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, 9*60, added.StartMinute, "start snaps to grid")
	assert.Equal(t, added.ID, b.Selection(), "new shift is selected")
	require.Len(t, b.Drafts(), 1)
}

func TestBoardCopyPaste(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	b.Select("s1")
	require.True(t, b.CopySelection())
	pasted := b.PasteCopiedShift()

	require.NotNil(t, pasted)
	assert.NotEqual(t, "s1", pasted.ID)
	assert.Equal(t, 9*60+GridStep, pasted.StartMinute, "paste offsets one grid step")
	assert.Equal(t, 4*60, pasted.DurationMinutes())
	assert.Len(t, b.Drafts(), 2)
	assert.Equal(t, pasted.ID, b.Selection())
}

func TestBoardCutPaste(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	b.Select("s1")
	require.True(t, b.CutSelection())
	assert.Empty(t, b.Drafts())
	assert.Empty(t, b.Selection())

	pasted := b.PasteCopiedShift()
	require.NotNil(t, pasted)
	assert.Len(t, b.Drafts(), 1)
}

func TestBoardReassign(t *testing.T) {
	b := testBoard(t, draft("s1", 3, 0, 9*60, 13*60))

	assert.False(t, b.ReassignShift("s1", ref(int64(3))), "same employee is a no-op")
	assert.False(t, b.CanUndo())

	require.True(t, b.ReassignShift("s1", ref(int64(4))))
	assert.Equal(t, int64(4), *b.Drafts()[0].EmployeeID)

	require.True(t, b.ReassignShift("s1", nil), "unassigning is a real change")
	assert.Nil(t, b.Drafts()[0].EmployeeID)
}

func TestBoardUndoRestoresExactList(t *testing.T) {
	s1 := draft("s1", 3, 0, 9*60, 13*60)
	s2 := draft("s2", 4, 1, 9*60, 13*60)
	b := testBoard(t, s1, s2)
	before := append([]*domain.DraftShift{}, b.Drafts()...)

	// three mutations
	require.True(t, b.BeginDrag("s1"))
	b.DragShift("s1", 60, 0)
	b.EndDrag("s1")
	b.AddShift(2, 9*60, 4*60, nil)
	require.True(t, b.ReassignShift("s2", ref(int64(3))))

	require.True(t, b.UndoLastChange())
	require.True(t, b.UndoLastChange())
	require.True(t, b.UndoLastChange())
	assert.False(t, b.CanUndo())

	after := b.Drafts()
	require.Len(t, after, len(before))
	for i := range before {
		assert.Same(t, before[i], after[i], "unrelated shift identity preserved through undo")
	}
}

func TestBoardUndoClearsDanglingSelection(t *testing.T) {
	b := testBoard(t)
	added := b.AddShift(0, 9*60, 4*60, nil)
	require.Equal(t, added.ID, b.Selection())

	require.True(t, b.UndoLastChange())
	assert.Empty(t, b.Selection(), "selection cannot point at a removed shift")
}

func TestBoardUndoDepthBounded(t *testing.T) {
	b := testBoard(t)
	for i := 0; i < UndoDepth+20; i++ {
		b.AddShift(0, 9*60, 4*60, nil)
	}

	undone := 0
	for b.UndoLastChange() {
		undone++
	}
	assert.Equal(t, UndoDepth, undone)
	assert.Len(t, b.Drafts(), 20, "oldest snapshots were dropped")
}

func TestBoardRestoreOriginal(t *testing.T) {
	reqs := []domain.CoverageRequirement{requirement(0, 9*60, 17*60, 1)}
	b := NewBoard(testValidator(t, nil, reqs, nil), reqs, DefaultWindow())
	b.LoadOption(&domain.ScheduleOption{
		Shifts: []*domain.DraftShift{draft("s1", 3, 0, 9*60, 17*60)},
	})

	b.AddShift(1, 9*60, 4*60, nil)
	require.True(t, b.DeleteShift("s1"))
	require.Len(t, b.Drafts(), 1)

	b.RestoreOriginal()

	require.Len(t, b.Drafts(), 1)
	assert.Equal(t, "s1", b.Drafts()[0].ID)
	assert.False(t, b.CanUndo(), "restore clears history")
}

func TestBoardRecalculateTracksCoverage(t *testing.T) {
	b := testBoard(t) // requires Monday 09:00-17:00 covered

	assert.NotEmpty(t, b.Warnings(), "empty board leaves the requirement uncovered")
	assert.Positive(t, b.Evaluation().UncoveredBucketDeficit())

	b.AddShift(0, 9*60, 8*60, ref(int64(3)))

	assert.Empty(t, b.Warnings())
	assert.Zero(t, b.Evaluation().UncoveredBucketDeficit())
}
