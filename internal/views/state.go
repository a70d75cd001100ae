package views

import (
	"errors"
	"fmt"
)

var ErrInvalidTransition = errors.New("invalid view transition")

// State is where a view is in its workflow.
//
//	fresh --seed--> seeded --live--> live --historical--> seeded
//	  seeded --seed--> seeded      live --seed--> seeded
//	  any state but closed --close--> closed
//
// A fresh view has never been given a date range, which is distinct from a seeded view whose
// filters were deliberately cleared.
type State string

const (
	StateFresh  State = "fresh"
	StateSeeded State = "seeded"
	StateLive   State = "live"
	StateClosed State = "closed"
)

// Action drives a State transition.
type Action string

const (
	ActionSeed       Action = "seed"
	ActionGoLive     Action = "live"
	ActionHistorical Action = "historical"
	ActionClose      Action = "close"
)

var transitions = map[State]map[Action]State{
	StateFresh: {
		ActionSeed:  StateSeeded,
		ActionClose: StateClosed,
	},
	StateSeeded: {
		ActionSeed:   StateSeeded,
		ActionGoLive: StateLive,
		ActionClose:  StateClosed,
	},
	StateLive: {
		ActionSeed:       StateSeeded,
		ActionHistorical: StateSeeded,
		ActionClose:      StateClosed,
	},
}

// Next returns the state reached from s by action.
func (s State) Next(action Action) (State, error) {
	next, ok := transitions[s][action]
	if !ok {
		return s, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, s)
	}
	return next, nil
}

func (s State) Queryable() bool {
	return s == StateSeeded || s == StateLive
}
