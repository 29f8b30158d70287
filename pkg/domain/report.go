package domain

// Result is the outcome of handing one event to an operator.
type Result uint8

const (
	// ResultRunning means the event was consumed and the operator keeps running.
	ResultRunning Result = iota
	// ResultPassThrough means the operator keeps running but the host should also handle the event.
	ResultPassThrough
	// ResultFinished means the operator completed.
	ResultFinished
	// ResultCancelled means the operator ended and its changes were rolled back.
	ResultCancelled
)

var resultNames = [...]string{"running", "pass_through", "finished", "cancelled"}

func (r Result) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

// Done reports whether the operator has ended.
func (r Result) Done() bool {
	return r == ResultFinished || r == ResultCancelled
}

// MarshalText encodes the result by name.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Report describes the operator after one event.
type Report struct {
	Tool        string `json:"tool"`
	Result      Result `json:"result"`
	StateIndex  int    `json:"state_index"`
	StateName   string `json:"state_name,omitempty"`
	Status      string `json:"status,omitempty"`
	NumericEdit bool   `json:"numeric_edit,omitempty"`
	Executed    bool   `json:"executed,omitempty"`
	// OperationFailed is set when Main ran during this event and reported failure.
	OperationFailed bool `json:"operation_failed,omitempty"`
	// Chained is set when the event completed a run and continuous drawing restarted it.
	Chained bool `json:"chained,omitempty"`
}

// CursorKind is the mouse cursor shape requested from the host.
type CursorKind uint8

const (
	CursorDefault CursorKind = iota
	CursorCrosshair
)
