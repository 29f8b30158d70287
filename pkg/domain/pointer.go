package domain

import (
	"fmt"
	"strings"
)

// PointerKind tags what an ImplicitPointer refers to.
// Kinds from PointerEntity upwards are free for domain models to assign.
type PointerKind uint8

const (
	PointerNone PointerKind = iota
	PointerObject
	PointerVertex
	PointerEdge
	PointerFace
	PointerEntity
)

// maxKinds bounds the number of kinds a KindSet can hold.
const maxKinds = 32

var builtinKindNames = map[PointerKind]string{
	PointerNone:   "none",
	PointerObject: "object",
	PointerVertex: "vertex",
	PointerEdge:   "edge",
	PointerFace:   "face",
	PointerEntity: "entity",
}

var customKindNames = map[PointerKind]string{}

// RegisterKindName gives a domain kind a display name.
// It is meant to be called from package init functions.
func RegisterKindName(k PointerKind, name string) {
	customKindNames[k] = name
}

func (k PointerKind) String() string {
	if n, ok := customKindNames[k]; ok {
		return n
	}
	if n, ok := builtinKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// IsMeshElement reports whether the kind lives inside an object.
func (k PointerKind) IsMeshElement() bool {
	return k == PointerVertex || k == PointerEdge || k == PointerFace
}

// KindSet is a set of pointer kinds.
type KindSet uint32

// Kinds builds a set from the given kinds.
func Kinds(kinds ...PointerKind) KindSet {
	var s KindSet
	for _, k := range kinds {
		if k == PointerNone || k >= maxKinds {
			continue
		}
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k PointerKind) bool {
	if k == PointerNone || k >= maxKinds {
		return false
	}
	return s&(1<<k) != 0
}

// Empty reports whether the set holds no kind.
func (s KindSet) Empty() bool { return s == 0 }

// List returns the kinds in ascending order.
func (s KindSet) List() []PointerKind {
	var out []PointerKind
	for k := PointerKind(1); k < maxKinds; k++ {
		if s.Has(k) {
			out = append(out, k)
		}
	}
	return out
}

func (s KindSet) String() string {
	kinds := s.List()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}

// ImplicitPointer references an element by name and sub-index instead of holding
// a live reference, so it can be re-resolved after the scene was rolled back.
// Index is -1 for elements without a sub-index.
type ImplicitPointer struct {
	Kind  PointerKind `json:"kind"`
	Name  string      `json:"name,omitempty"`
	Index int         `json:"index"`
}

// NoPointer is the zero pointer.
var NoPointer = ImplicitPointer{Index: -1}

// EntityPointer builds a pointer to a named element without sub-index.
func EntityPointer(kind PointerKind, name string) ImplicitPointer {
	return ImplicitPointer{Kind: kind, Name: name, Index: -1}
}

// ElementPointer builds a pointer to a sub-element of the named object.
func ElementPointer(kind PointerKind, object string, index int) ImplicitPointer {
	return ImplicitPointer{Kind: kind, Name: object, Index: index}
}

// IsZero reports whether the pointer references nothing.
func (p ImplicitPointer) IsZero() bool {
	return p.Kind == PointerNone
}

func (p ImplicitPointer) String() string {
	if p.IsZero() {
		return "<none>"
	}
	if p.Index >= 0 {
		return fmt.Sprintf("%s:%s[%d]", p.Kind, p.Name, p.Index)
	}
	return fmt.Sprintf("%s:%s", p.Kind, p.Name)
}

// ParseKind resolves a kind by the name produced by String.
func ParseKind(s string) (PointerKind, bool) {
	for k, n := range customKindNames {
		if n == s {
			return k, true
		}
	}
	for k, n := range builtinKindNames {
		if n == s {
			return k, true
		}
	}
	return PointerNone, false
}
