package domain

// Tool is the declarative description of an interactive operator:
// its state table, its properties and its lifecycle callbacks.
type Tool struct {
	ID    string
	Label string
	Doc   string

	Table      StateTable
	Properties []PropertyDescriptor

	// Init runs once on invocation; returning false cancels the operator.
	Init func(s Session, ev Event) bool
	// Main applies the tool's effect. Required.
	Main func(s Session) bool
	// Fini runs when the operator ends.
	Fini func(s Session, succeeded bool)
	// ContinueDraw decides whether a finished run chains into the next one.
	ContinueDraw func(s Session) bool

	WaitForInput   bool // prefill from selection and wait for an explicit confirm
	ContinuousDraw bool // restart from the last state's pointer after finishing
	GlobalObject   bool // state 0 is an object shared by later mesh-element states
	SkipUndo       bool // do not roll back on cancel
}

// Property returns the descriptor with the given name.
func (t *Tool) Property(name string) (PropertyDescriptor, bool) {
	for _, p := range t.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDescriptor{}, false
}

// DisplayName returns Label, falling back to ID.
func (t *Tool) DisplayName() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}
