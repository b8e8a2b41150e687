// Package statemachine is a small, domain-agnostic Rob-Pike-style state
// machine: each state is a function that does its work and returns the
// next state function to run. pkg/euchre instantiates it over GameState to
// drive one hand's dealing pipeline (deal start -> shuffle and deal -> open
// round-1 bidding); bidding, discard and play transitions are not run
// through it.
package statemachine

import (
	"sync"
)

// StateEvent identifies a phase-transition callback event.
type StateEvent int

const (
	StateEntered StateEvent = iota
	StateExited
	TransitionRequested
)

// StateFn is one state in the machine: it acts on entity and returns the
// next StateFn to run, or nil when the pipeline is done. callback is
// optional and may be nil.
type StateFn[T any] func(entity *T, callback func(stateName string, event StateEvent)) StateFn[T]

// StateMachine drives entity through a sequence of StateFns, one Dispatch
// call at a time, guarding the current state function with a mutex so
// GetCurrentState can be read safely from another goroutine.
type StateMachine[T any] struct {
	entity  *T
	stateFn StateFn[T]
	mutex   sync.RWMutex
}

// NewStateMachine builds a machine over entity starting at initialStateFn.
func NewStateMachine[T any](entity *T, initialStateFn StateFn[T]) *StateMachine[T] {
	return &StateMachine[T]{
		entity:  entity,
		stateFn: initialStateFn,
	}
}

// Dispatch runs the current state function once and advances to whatever
// state it returns. callback is optional and may be nil.
func (sm *StateMachine[T]) Dispatch(callback func(stateName string, event StateEvent)) {
	sm.mutex.Lock()
	currentStateFn := sm.stateFn
	sm.mutex.Unlock()

	if currentStateFn == nil {
		return
	}

	nextStateFn := currentStateFn(sm.entity, callback)

	sm.mutex.Lock()
	sm.stateFn = nextStateFn
	sm.mutex.Unlock()
}

// GetCurrentState returns the state function that the next Dispatch will run.
func (sm *StateMachine[T]) GetCurrentState() StateFn[T] {
	sm.mutex.RLock()
	defer sm.mutex.RUnlock()
	return sm.stateFn
}

// SetState forces the machine into stateFn and runs it immediately, bypassing
// whatever the current state function would otherwise have returned next.
func (sm *StateMachine[T]) SetState(stateFn StateFn[T]) {
	sm.mutex.Lock()
	sm.stateFn = stateFn
	sm.mutex.Unlock()

	sm.Dispatch(nil)
}
