package domain

// StateTable is the frozen, ordered list of states of a tool.
type StateTable struct {
	states []StateDefinition
	index  map[string]int
}

// NewStateTable freezes the given states in order.
func NewStateTable(states ...StateDefinition) StateTable {
	t := StateTable{
		states: append([]StateDefinition(nil), states...),
		index:  make(map[string]int, len(states)),
	}
	for i, s := range t.states {
		if _, dup := t.index[s.Name]; !dup {
			t.index[s.Name] = i
		}
	}
	return t
}

// Extend returns a new table holding the receiver's states followed by tail.
// The receiver is left untouched, so a shared base can serve many tools.
func (t StateTable) Extend(tail ...StateDefinition) StateTable {
	all := make([]StateDefinition, 0, len(t.states)+len(tail))
	all = append(all, t.states...)
	all = append(all, tail...)
	return NewStateTable(all...)
}

// Count returns the number of states.
func (t StateTable) Count() int { return len(t.states) }

// At returns the state at index i.
func (t StateTable) At(i int) (StateDefinition, bool) {
	if i < 0 || i >= len(t.states) {
		return StateDefinition{}, false
	}
	return t.states[i], true
}

// IndexOf returns the index of the first state with the given name.
func (t StateTable) IndexOf(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// States returns a copy of the states.
func (t StateTable) States() []StateDefinition {
	return append([]StateDefinition(nil), t.states...)
}
