package schedule

// DefaultHistoryLimit is the number of undoable actions kept.
const DefaultHistoryLimit = 100

type historyEntry struct {
	action string
	state  State
}

// history is a linear list of post-action snapshots. Entry 0 is the base
// state the store was loaded with, so undo after N actions restores the state
// right before action N.
type history struct {
	entries []historyEntry
	index   int
	limit   int
}

func newHistory(base State, limit int) *history {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &history{
		entries: []historyEntry{{action: "load", state: base.Clone()}},
		limit:   limit,
	}
}

// push discards any redo branch and appends st.
func (h *history) push(action string, st State) {
	h.entries = append(h.entries[:h.index+1], historyEntry{action: action, state: st.Clone()})
	h.index = len(h.entries) - 1

	if over := len(h.entries) - (h.limit + 1); over > 0 {
		h.entries = append([]historyEntry(nil), h.entries[over:]...)
		h.index -= over
	}
}

// amend replaces the current snapshot without creating a new undo step.
func (h *history) amend(st State) {
	h.entries[h.index].state = st.Clone()
}

func (h *history) undo() (State, string, bool) {
	if !h.canUndo() {
		return State{}, "", false
	}
	undone := h.entries[h.index].action
	h.index--
	return h.entries[h.index].state.Clone(), undone, true
}

func (h *history) redo() (State, string, bool) {
	if !h.canRedo() {
		return State{}, "", false
	}
	h.index++
	e := h.entries[h.index]
	return e.state.Clone(), e.action, true
}

func (h *history) canUndo() bool {
	return h.index > 0
}

func (h *history) canRedo() bool {
	return h.index < len(h.entries)-1
}

// actions returns the recorded action names, oldest first, excluding the base.
func (h *history) actions() []string {
	out := make([]string, 0, len(h.entries)-1)
	for _, e := range h.entries[1:] {
		out = append(out, e.action)
	}
	return out
}
