package sketch

// Checkpoint is one entry of a History.
type Checkpoint struct {
	Label string
	doc   *Document
}

// History is a snapshot-based undo stack.
// Entry 0 is the baseline; cursor points at the entry matching the live document.
type History struct {
	entries []Checkpoint
	cursor  int
	limit   int
}

// NewHistory starts a history whose baseline is a copy of doc.
// limit bounds the number of kept checkpoints; 0 means unbounded.
func NewHistory(doc *Document, limit int) *History {
	return &History{
		entries: []Checkpoint{{Label: "baseline", doc: doc.Clone()}},
		limit:   limit,
	}
}

// Push records doc as a new checkpoint and drops any redo entries.
func (h *History) Push(label string, doc *Document) {
	h.entries = append(h.entries[:h.cursor+1], Checkpoint{Label: label, doc: doc.Clone()})
	h.cursor++
	if h.limit > 0 && len(h.entries) > h.limit+1 {
		drop := len(h.entries) - h.limit - 1
		h.entries = append(h.entries[:0:0], h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo steps back one checkpoint and returns a copy of its document.
func (h *History) Undo() (*Document, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.entries[h.cursor].doc.Clone(), true
}

// Redo steps forward one checkpoint and returns a copy of its document.
func (h *History) Redo() (*Document, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return h.entries[h.cursor].doc.Clone(), true
}

// Labels returns the checkpoint labels up to the cursor, oldest first.
func (h *History) Labels() []string {
	out := make([]string, 0, h.cursor+1)
	for _, e := range h.entries[:h.cursor+1] {
		out = append(out, e.Label)
	}
	return out
}

// Len returns the number of checkpoints that can be undone.
func (h *History) Len() int { return h.cursor }
