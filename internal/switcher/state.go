// Package switcher stages and commits a layout plan and drives a full preset switch.
package switcher

// State is a step of a preset switch.
type State int

// States in the order a successful switch visits them; StateAborted is terminal on failure.
const (
	StateStart State = iota
	StateNamesResolved
	StateModesRead
	StatePlanned
	StateStagedRotating
	StateStagedAnchor
	StateApplied
	StateDone
	StateAborted
)

var stateNames = [...]string{
	StateStart:          "start",
	StateNamesResolved:  "names-resolved",
	StateModesRead:      "modes-read",
	StatePlanned:        "planned",
	StateStagedRotating: "staged-rotating",
	StateStagedAnchor:   "staged-anchor",
	StateApplied:        "applied",
	StateDone:           "done",
	StateAborted:        "aborted",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}
