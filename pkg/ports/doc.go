/*
Package ports defines the driven ports (interfaces) of the Stencil engine.

These interfaces decouple the operator engine from the application hosting it,
allowing the same tools to run inside a terminal, behind an HTTP API or in tests.

# Key Interfaces

  - Host: Everything an operator needs from its application (picking, selection, undo, status line, units).
  - DocumentStore: Responsible for persisting and loading sketch documents.
  - DistributedLocker: Provides distributed locking for concurrent document access.
*/
package ports
