package domain

// Category is the semantic meaning of an input event for an interactive operator.
type Category uint8

const (
	CategoryOther Category = iota
	CategoryConfirm
	CategoryCancel
	CategoryDigit
	CategoryBackspace
	CategorySign
	CategorySeparator
	CategoryUnit
	CategoryNextComponent // cycles the numeric sub-component (TAB)
	CategoryNavigation    // pan/zoom/plain movement, always handed back to the host
)

var categoryNames = [...]string{
	"other", "confirm", "cancel", "digit", "backspace", "sign",
	"separator", "unit", "next_component", "navigation",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return "unknown"
}

// Class is the result of classifying an Event.
type Class struct {
	Category Category
	Digit    byte // '0'..'9' when Category == CategoryDigit
	Unit     rune // unit letter when Category == CategoryUnit
}

// IsNumeric reports whether the class edits a numeric buffer.
func (c Class) IsNumeric() bool {
	switch c.Category {
	case CategoryDigit, CategoryBackspace, CategorySign, CategorySeparator, CategoryUnit:
		return true
	}
	return false
}

// StartsNumeric reports whether the class may open numeric entry on its own.
// Backspace and unit letters only make sense once entry is in progress.
func (c Class) StartsNumeric() bool {
	switch c.Category {
	case CategoryDigit, CategorySign, CategorySeparator:
		return true
	}
	return false
}
