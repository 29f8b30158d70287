/*
Package domain contains the core types of the Stencil interactive operator engine.

It defines the vocabulary shared by the engine, the hosts that feed it events and
the tools that are built on top of it. This package is kept pure and free of
external dependencies like I/O or persistence.

# Key Entities

  - Event: A raw input event (key, mouse button, pointer movement, wheel) delivered by the host.
  - Class: The semantic category an Event maps to (confirm, cancel, digit, unit suffix, navigation).
  - ImplicitPointer: A (kind, name, index) reference that survives undo/redo cycles.
  - StateDefinition: One immutable step of a tool (what it targets and how it is resolved).
  - StateTable: The frozen, ordered list of a tool's states.
  - Tool: A state table plus its lifecycle callbacks (Init, Main, Fini, ContinueDraw).
  - Report: The outcome of dispatching one event to a running operator.
*/
package domain
