package domain

// Selection is an ordered, consumable list of selected elements.
// Elements are handed out left to right; the first match wins.
type Selection struct {
	items []ImplicitPointer
}

// NewSelection copies items into a new Selection.
func NewSelection(items []ImplicitPointer) *Selection {
	return &Selection{items: append([]ImplicitPointer(nil), items...)}
}

// Len returns the number of elements left.
func (s *Selection) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Items returns a copy of the remaining elements.
func (s *Selection) Items() []ImplicitPointer {
	if s == nil {
		return nil
	}
	return append([]ImplicitPointer(nil), s.items...)
}

// Pop removes and returns the first element whose kind is in kinds and that
// passes accept (nil accepts everything).
func (s *Selection) Pop(kinds KindSet, accept func(ImplicitPointer) bool) (ImplicitPointer, bool) {
	if s == nil {
		return NoPointer, false
	}
	for i, p := range s.items {
		if !kinds.Has(p.Kind) {
			continue
		}
		if accept != nil && !accept(p) {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		return p, true
	}
	return NoPointer, false
}
