// Package pafv implements the Point/Axis/Facet/Value model: the assignment
// of data facets onto grid axis slots, the metadata service that loads and
// persists those assignments, and the drag/drop engine that reassigns them.
//
// # Model
//
// A [Mapping] binds at most one [Assignment] to each of the x, y and z
// slots. Each assignment names a facet, its display label and its LATCH
// dimension (Location/Alphabet/Time/Category/Hierarchy). A facet must not
// occupy more than one slot; this is a validation, not a structural
// constraint. The system may pass through an invalid mapping transiently,
// and [Mapping.Validate] reports it.
//
// # Components
//
//   - [Service]: wraps an external facet store; lists available axes,
//     mutates the in-memory mapping (assign/swap/clear), notifies change
//     listeners synchronously once per mutation, and write-through persists
//     the view state with a configurable debounce.
//   - [Engine]: the drag/drop state machine
//     (Idle → Dragging → {Dropped | Cancelled} → Idle) plus the reflow
//     orchestration that animates a re-layout after a mapping change.
//
// The store interfaces ([FacetStore], [ViewStore]) are defined here on the
// consumer side; pkg/axisstore provides memory, file and MongoDB
// implementations.
//
// # Error Posture
//
// Invalid input is swallowed, not thrown: dropping an unknown axis resolves
// without mutating anything, and constructing a [Service] over a failing
// store degrades to an empty axis list with a logged warning instead of
// failing. See the package-level tests for the exact guarantees.
package pafv
