package runtime

import (
	"github.com/aretw0/stencil/internal/numeric"
	"github.com/aretw0/stencil/pkg/domain"
)

// stateData is what an operator knows about one state of its table.
type stateData struct {
	pointer    domain.ImplicitPointer
	existing   bool
	numeric    bool
	buffer     numeric.Buffer
	initCoords domain.Vec2
	hasInit    bool
}

// runState belongs to a single operator run and is dropped when it ends.
type runState struct {
	index       int
	data        map[int]*stateData
	substate    int
	executed    bool
	pendingUndo bool

	// ignore holds elements synthesized by the last replay; picking skips them.
	ignore []domain.ImplicitPointer

	coords   domain.Vec2
	lastMove domain.Vec2
	hasMove  bool
}

func newRunState() *runState {
	return &runState{data: make(map[int]*stateData)}
}

// at returns the data of state i, creating it on first use.
func (rs *runState) at(i int) *stateData {
	d, ok := rs.data[i]
	if !ok {
		d = &stateData{pointer: domain.NoPointer}
		rs.data[i] = d
	}
	return d
}

func (rs *runState) current() *stateData {
	return rs.at(rs.index)
}

func (rs *runState) ignored(p domain.ImplicitPointer) bool {
	for _, q := range rs.ignore {
		if q == p {
			return true
		}
	}
	return false
}
