package scheduler

import (
	"github.com/google/uuid"

	"github.com/daybreak-coffee/shift-planner/internal/domain"
)

const (
	// MinShiftMinutes is the interactive floor on shift length; raw
	// generation output has no floor before condensing.
	MinShiftMinutes = 30
	// UndoDepth bounds the undo stack.
	UndoDepth = 80
)

// Board is the interactive editing state machine for one week's draft.
// Committed shifts are immutable values: every mutation replaces the
// affected pointer rather than editing in place, so undo snapshots can
// share pointers and still restore the exact pre-mutation list.
//
// The board owns all of its state exclusively; it is single-threaded by
// contract and never touched from other goroutines.
type Board struct {
	validator    *Validator
	requirements []domain.CoverageRequirement
	window       TimeWindow

	drafts    []*domain.DraftShift
	selection string

	// baseline snapshots for in-flight gestures: deltas are computed
	// against the gesture start, never the previous frame
	interactions map[string]*domain.DraftShift
	// tentative shifts rendered during a gesture; the committed list is
	// untouched until the gesture ends
	preview map[string]*domain.DraftShift

	undo      [][]*domain.DraftShift
	clipboard *domain.DraftShift
	original  []*domain.DraftShift

	warnings []domain.ScheduleWarning
	eval     CoverageEvaluation
}

func NewBoard(validator *Validator, requirements []domain.CoverageRequirement, window TimeWindow) *Board {
	b := &Board{
		validator:    validator,
		requirements: requirements,
		window:       window.Snapped(),
		interactions: make(map[string]*domain.DraftShift),
		preview:      make(map[string]*domain.DraftShift),
	}
	b.Recalculate()
	return b
}

// LoadOption seeds the board from an immutable generated option,
// resetting undo history and the restore baseline.
func (b *Board) LoadOption(option *domain.ScheduleOption) {
	drafts := make([]*domain.DraftShift, 0, len(option.Shifts))
	original := make([]*domain.DraftShift, 0, len(option.Shifts))
	for _, s := range option.Shifts {
		drafts = append(drafts, s.Clone())
		original = append(original, s.Clone())
	}
	b.drafts = drafts
	b.original = original
	b.resetHistory()
	b.Recalculate()
}

// ReplaceDrafts swaps in an arbitrary draft set (e.g. restored from a
// client), keeping the existing restore baseline unless told otherwise.
func (b *Board) ReplaceDrafts(drafts []*domain.DraftShift, resetOriginal bool) {
	b.drafts = make([]*domain.DraftShift, 0, len(drafts))
	for _, s := range drafts {
		b.drafts = append(b.drafts, s.Clone())
	}
	if resetOriginal {
		b.original = make([]*domain.DraftShift, 0, len(drafts))
		for _, s := range drafts {
			b.original = append(b.original, s.Clone())
		}
	}
	b.resetHistory()
	b.Recalculate()
}

// RestoreOriginal rolls the draft back to the loaded option.
func (b *Board) RestoreOriginal() {
	if b.original == nil {
		return
	}
	restored := make([]*domain.DraftShift, 0, len(b.original))
	for _, s := range b.original {
		restored = append(restored, s.Clone())
	}
	b.drafts = restored
	b.resetHistory()
	b.Recalculate()
}

func (b *Board) resetHistory() {
	b.undo = nil
	b.interactions = make(map[string]*domain.DraftShift)
	b.preview = make(map[string]*domain.DraftShift)
	b.selection = ""
}

// Drafts returns the committed draft list.
func (b *Board) Drafts() []*domain.DraftShift {
	return b.drafts
}

// Warnings returns the warning feed from the last recalculation.
func (b *Board) Warnings() []domain.ScheduleWarning {
	return b.warnings
}

// Evaluation returns the heat-map buckets from the last recalculation.
func (b *Board) Evaluation() CoverageEvaluation {
	return b.eval
}

func (b *Board) Select(id string) {
	if b.findShift(id) != nil {
		b.selection = id
	}
}

func (b *Board) ClearSelection() {
	b.selection = ""
}

func (b *Board) Selection() string {
	return b.selection
}

// SelectedShift returns the committed selected shift, if any.
func (b *Board) SelectedShift() *domain.DraftShift {
	if b.selection == "" {
		return nil
	}
	return b.findShift(b.selection)
}

func (b *Board) findShift(id string) *domain.DraftShift {
	for _, d := range b.drafts {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// Recalculate re-runs validation and coverage accounting in full. Draft
// sets are dozens of shifts at most, so incremental bookkeeping is not
// worth the complexity.
func (b *Board) Recalculate() {
	b.warnings = b.validator.Validate(b.drafts)
	b.eval = EvaluateCoverage(b.requirements, b.drafts, b.window)
}

// pushUndo snapshots the current pointer list. Callers invoke it only
// when the list is about to actually change.
func (b *Board) pushUndo() {
	snapshot := make([]*domain.DraftShift, len(b.drafts))
	copy(snapshot, b.drafts)
	b.undo = append(b.undo, snapshot)
	if len(b.undo) > UndoDepth {
		b.undo = b.undo[1:]
	}
}

// UndoLastChange pops the last snapshot and replaces the entire draft
// list. Selection is cleared if the selected shift no longer exists.
func (b *Board) UndoLastChange() bool {
	if len(b.undo) == 0 {
		return false
	}
	b.drafts = b.undo[len(b.undo)-1]
	b.undo = b.undo[:len(b.undo)-1]
	if b.selection != "" && b.findShift(b.selection) == nil {
		b.selection = ""
	}
	b.Recalculate()
	return true
}

// CanUndo reports whether any snapshot remains.
func (b *Board) CanUndo() bool {
	return len(b.undo) > 0
}

// commitReplace swaps the shift with next's id for next, pushing undo
// first. No-op commits are filtered by callers.
func (b *Board) commitReplace(next *domain.DraftShift) {
	b.pushUndo()
	replaced := make([]*domain.DraftShift, len(b.drafts))
	for i, d := range b.drafts {
		if d.ID == next.ID {
			replaced[i] = next
		} else {
			replaced[i] = d
		}
	}
	b.drafts = replaced
	b.Recalculate()
}

// --- drag ---

// BeginDrag captures the gesture baseline for a shift.
func (b *Board) BeginDrag(id string) bool {
	shift := b.findShift(id)
	if shift == nil {
		return false
	}
	b.interactions[id] = shift.Clone()
	return true
}

// DragShift applies a live drag delta against the baseline: minuteDelta
// moves both edges (snapped to the grid), dayDelta moves the shift
// across days. The result goes to the preview overlay only.
func (b *Board) DragShift(id string, minuteDelta, dayDelta int) {
	baseline, ok := b.interactions[id]
	if !ok {
		return
	}
	duration := baseline.DurationMinutes()
	snapped := SnapTo(minuteDelta, GridStep)

	next := baseline.Clone()
	next.Day = Clamp(baseline.Day+dayDelta, 0, DaysPerWeek-1)
	next.StartMinute = Clamp(baseline.StartMinute+snapped, b.window.StartMinute, b.window.EndMinute-duration)
	next.EndMinute = next.StartMinute + duration
	b.preview[id] = next
}

// EndDrag commits the preview if it differs from the committed shift,
// then clears the gesture state.
func (b *Board) EndDrag(id string) {
	b.endInteraction(id)
}

// CancelInteraction drops a gesture without touching the committed
// list; a jittery or aborted drag leaves no trace.
func (b *Board) CancelInteraction(id string) {
	delete(b.interactions, id)
	delete(b.preview, id)
}

// PreviewShift returns the tentative shift for an in-flight gesture.
func (b *Board) PreviewShift(id string) *domain.DraftShift {
	return b.preview[id]
}

func (b *Board) endInteraction(id string) {
	next, hasPreview := b.preview[id]
	delete(b.interactions, id)
	delete(b.preview, id)
	if !hasPreview {
		return
	}
	current := b.findShift(id)
	if current == nil || shiftsEqual(current, next) {
		return
	}
	b.commitReplace(next)
}

// --- resize ---

// BeginResize captures the baseline for an edge resize.
func (b *Board) BeginResize(id string) bool {
	return b.BeginDrag(id)
}

// ResizeShiftStart moves only the start edge, clamped so the shift
// keeps its minimum duration and stays inside the visible window.
func (b *Board) ResizeShiftStart(id string, minuteDelta int) {
	baseline, ok := b.interactions[id]
	if !ok {
		return
	}
	next := baseline.Clone()
	start := SnapTo(baseline.StartMinute+minuteDelta, GridStep)
	next.StartMinute = Clamp(start, b.window.StartMinute, baseline.EndMinute-MinShiftMinutes)
	b.preview[id] = next
}

// ResizeShiftEnd moves only the end edge with the same clamping rules.
func (b *Board) ResizeShiftEnd(id string, minuteDelta int) {
	baseline, ok := b.interactions[id]
	if !ok {
		return
	}
	next := baseline.Clone()
	end := SnapTo(baseline.EndMinute+minuteDelta, GridStep)
	next.EndMinute = Clamp(end, baseline.StartMinute+MinShiftMinutes, b.window.EndMinute)
	b.preview[id] = next
}

// EndResize commits a resize gesture.
func (b *Board) EndResize(id string) {
	b.endInteraction(id)
}

// --- add / delete / clipboard ---

// AddShift creates a fresh shift clamped to the visible window and
// minimum duration, commits it and selects it.
func (b *Board) AddShift(day, startMinute, durationMinutes int, employeeID *int64) *domain.DraftShift {
	if durationMinutes < MinShiftMinutes {
		durationMinutes = MinShiftMinutes
	}
	day = Clamp(day, 0, DaysPerWeek-1)
	start := Clamp(Snap(startMinute), b.window.StartMinute, b.window.EndMinute-durationMinutes)

	shift := &domain.DraftShift{
		ID:          uuid.NewString(),
		Day:         day,
		StartMinute: start,
		EndMinute:   start + durationMinutes,
	}
	if employeeID != nil {
		id := *employeeID
		shift.EmployeeID = &id
	}

	b.pushUndo()
	b.drafts = append(append([]*domain.DraftShift{}, b.drafts...), shift)
	b.selection = shift.ID
	b.Recalculate()
	return shift
}

// DeleteShift removes a shift from the committed list.
func (b *Board) DeleteShift(id string) bool {
	if b.findShift(id) == nil {
		return false
	}
	b.pushUndo()
	kept := make([]*domain.DraftShift, 0, len(b.drafts)-1)
	for _, d := range b.drafts {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	b.drafts = kept
	if b.selection == id {
		b.selection = ""
	}
	b.Recalculate()
	return true
}

// CopySelection stores the selected shift as a paste template.
func (b *Board) CopySelection() bool {
	shift := b.SelectedShift()
	if shift == nil {
		return false
	}
	b.clipboard = shift.Clone()
	return true
}

// CutSelection copies the selected shift and deletes the source.
func (b *Board) CutSelection() bool {
	shift := b.SelectedShift()
	if shift == nil {
		return false
	}
	b.clipboard = shift.Clone()
	return b.DeleteShift(shift.ID)
}

// PasteCopiedShift creates a new shift from the clipboard template,
// offset by one snap step and clamped to the visible window.
func (b *Board) PasteCopiedShift() *domain.DraftShift {
	if b.clipboard == nil {
		return nil
	}
	duration := b.clipboard.DurationMinutes()
	if duration < MinShiftMinutes {
		duration = MinShiftMinutes
	}
	start := Clamp(b.clipboard.StartMinute+GridStep, b.window.StartMinute, b.window.EndMinute-duration)

	shift := b.clipboard.Clone()
	shift.ID = uuid.NewString()
	shift.StartMinute = start
	shift.EndMinute = start + duration

	b.pushUndo()
	b.drafts = append(append([]*domain.DraftShift{}, b.drafts...), shift)
	b.selection = shift.ID
	b.Recalculate()
	return shift
}

// ReassignShift changes only the employee reference (roster drag &
// drop); unchanged assignments are a no-op and push nothing onto undo.
func (b *Board) ReassignShift(id string, employeeID *int64) bool {
	current := b.findShift(id)
	if current == nil {
		return false
	}
	if employeeRefEqual(current.EmployeeID, employeeID) {
		return false
	}
	next := current.Clone()
	if employeeID == nil {
		next.EmployeeID = nil
	} else {
		v := *employeeID
		next.EmployeeID = &v
	}
	b.commitReplace(next)
	return true
}

func employeeRefEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func shiftsEqual(a, b *domain.DraftShift) bool {
	return a.Day == b.Day &&
		a.StartMinute == b.StartMinute &&
		a.EndMinute == b.EndMinute &&
		employeeRefEqual(a.EmployeeID, b.EmployeeID) &&
		sameRole(a.Role, b.Role) &&
		a.Notes == b.Notes
}
