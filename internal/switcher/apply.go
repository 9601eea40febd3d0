// Package switcher stages and commits a layout plan and drives a full preset switch.
package switcher

import (
	"fmt"

	"github.com/frudas24/monswitch/internal/display"
	"github.com/frudas24/monswitch/internal/layout"
)

// Step identifies which change request failed.
type Step int

const (
	// StepStage is a per-monitor staged change.
	StepStage Step = iota
	// StepCommit is the final apply of all staged changes.
	StepCommit
)

// ChangeError reports a rejected change request.
type ChangeError struct {
	Step   Step
	Role   layout.Role
	Device string
	Status display.Status
}

// Error describes the failed request and the decoded reason.
func (e *ChangeError) Error() string {
	if e.Step == StepCommit {
		return fmt.Sprintf("failed to apply display settings: %s", e.Status.Reason())
	}
	return fmt.Sprintf("failed to stage %s display settings on %s: %s", e.Role, e.Device, e.Status.Reason())
}

// Apply stages the rotating then the anchor target and commits both together.
// Nothing is committed if either stage request fails.
func Apply(api display.API, plan layout.Plan) error {
	return apply(api, plan, func(State) {})
}

// apply runs the staged two-phase change, reporting each completed step to advance.
func apply(api display.API, plan layout.Plan, advance func(State)) error {
	if err := stage(api, plan.Rotating); err != nil {
		return err
	}
	advance(StateStagedRotating)

	if err := stage(api, plan.Anchor); err != nil {
		return err
	}
	advance(StateStagedAnchor)

	if status := api.Commit(); !status.OK() {
		return &ChangeError{Step: StepCommit, Status: status}
	}
	debugf("committed staged changes")
	advance(StateApplied)
	return nil
}

// stage requests the target mode for one monitor without applying it.
func stage(api display.API, t layout.Target) error {
	flags := t.StageFlags()
	debugf("stage %s %s mode=%s flags=%#x", t.Role, t.Device, t.Mode, uint32(flags))
	if status := api.Stage(t.Device, t.Mode, flags); !status.OK() {
		return &ChangeError{Step: StepStage, Role: t.Role, Device: t.Device, Status: status}
	}
	return nil
}
