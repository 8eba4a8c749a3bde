// Package fiber defines the unit of cooperative work run by the executor:
// a task, its lifecycle state machine
//
//	Submitted -> Running <-> Suspended -> {Resolved | Failed | Aborted}
//
// and the terminal Outcome observed by blocking callers.
package fiber
