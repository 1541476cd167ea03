package store

import "github.com/dpshade/prompt-vault/internal/models"

// DefaultUndoDepth bounds the undo stack.
const DefaultUndoDepth = 20

// history keeps bounded snapshots of the record collection for undo/redo.
// Only record contents are covered: favorites and the category tree are
// deliberately outside its scope. Underflow is a silent no-op.
type history struct {
	undo     [][]*models.Record
	redo     [][]*models.Record
	capacity int
}

func newHistory(capacity int) *history {
	if capacity <= 0 {
		capacity = DefaultUndoDepth
	}
	return &history{capacity: capacity}
}

// snapshot pushes a deep copy of records onto the undo stack and clears the
// redo stack; redo is only valid immediately after an undo. When the undo
// stack is full the oldest entry is dropped.
func (h *history) snapshot(records []*models.Record) {
	h.undo = append(h.undo, cloneRecords(records))
	if len(h.undo) > h.capacity {
		h.undo = h.undo[1:]
	}
	h.redo = nil
}

// popUndo exchanges current for the most recent snapshot. It returns the
// restored collection and true, or nil and false when there is nothing to
// undo.
func (h *history) popUndo(current []*models.Record) ([]*models.Record, bool) {
	if len(h.undo) == 0 {
		return nil, false
	}
	restored := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cloneRecords(current))
	return restored, true
}

// popRedo is the symmetric operation for redo.
func (h *history) popRedo(current []*models.Record) ([]*models.Record, bool) {
	if len(h.redo) == 0 {
		return nil, false
	}
	restored := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cloneRecords(current))
	return restored, true
}

func cloneRecords(records []*models.Record) []*models.Record {
	out := make([]*models.Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
