package asset

import (
	"fmt"
	"time"

	sw "github.com/filanov/stateswitch"
)

const (
	TransitionRequestRetire sw.TransitionType = "request_retire"
	TransitionApproveRetire sw.TransitionType = "approve_retire"
	TransitionRejectRetire  sw.TransitionType = "reject_retire"
	TransitionForceRetire   sw.TransitionType = "force_retire"
)

// lifecycleArgs is passed to every transition handler.
type lifecycleArgs struct {
	approvalID string
	at         time.Time
}

// lifecycleSwitch adapts an Asset to sw.StateSwitch.
type lifecycleSwitch struct {
	asset *Asset
}

func (s *lifecycleSwitch) State() sw.State {
	return sw.State(s.asset.state)
}

func (s *lifecycleSwitch) SetState(state sw.State) error {
	s.asset.state = State(state)
	return nil
}

var lifecycle = newLifecycleMachine()

//	active --request_retire--> pending_retirement --approve_retire--> retired
//	pending_retirement --reject_retire--> active
//	active --force_retire--> retired
func newLifecycleMachine() sw.StateMachine {
	sm := sw.NewStateMachine()

	sm.AddTransition(sw.TransitionRule{
		TransitionType:   TransitionRequestRetire,
		SourceStates:     sw.States{sw.State(StateActive)},
		DestinationState: sw.State(StatePendingRetirement),
		Transition: func(s sw.StateSwitch, args sw.TransitionArgs) error {
			a := s.(*lifecycleSwitch).asset
			a.pendingApprovalID = args.(*lifecycleArgs).approvalID
			return nil
		},
		PostTransition: touchAsset,
	})

	sm.AddTransition(sw.TransitionRule{
		TransitionType:   TransitionApproveRetire,
		SourceStates:     sw.States{sw.State(StatePendingRetirement)},
		DestinationState: sw.State(StateRetired),
		Condition:        approvalMatches,
		Transition:       markRetired,
		PostTransition:   touchAsset,
	})

	sm.AddTransition(sw.TransitionRule{
		TransitionType:   TransitionRejectRetire,
		SourceStates:     sw.States{sw.State(StatePendingRetirement)},
		DestinationState: sw.State(StateActive),
		Condition:        approvalMatches,
		Transition: func(s sw.StateSwitch, _ sw.TransitionArgs) error {
			s.(*lifecycleSwitch).asset.pendingApprovalID = ""
			return nil
		},
		PostTransition: touchAsset,
	})

	sm.AddTransition(sw.TransitionRule{
		TransitionType:   TransitionForceRetire,
		SourceStates:     sw.States{sw.State(StateActive)},
		DestinationState: sw.State(StateRetired),
		Transition:       markRetired,
		PostTransition:   touchAsset,
	})

	return sm
}

func approvalMatches(s sw.StateSwitch, args sw.TransitionArgs) (bool, error) {
	a := s.(*lifecycleSwitch).asset
	return a.pendingApprovalID == args.(*lifecycleArgs).approvalID, nil
}

func markRetired(s sw.StateSwitch, args sw.TransitionArgs) error {
	a := s.(*lifecycleSwitch).asset
	at := args.(*lifecycleArgs).at.UTC()
	a.retiredAt = &at
	a.pendingApprovalID = ""
	return nil
}

func touchAsset(s sw.StateSwitch, _ sw.TransitionArgs) error {
	s.(*lifecycleSwitch).asset.touch()
	return nil
}

func (a *Asset) run(t sw.TransitionType, args *lifecycleArgs) error {
	if err := lifecycle.Run(t, &lifecycleSwitch{asset: a}, args); err != nil {
		return fmt.Errorf("%w: %s from %s: %v", ErrInvalidTransition, t, a.state, err)
	}
	return nil
}

// RequestRetire parks an active asset until approval approvalID is resolved.
func (a *Asset) RequestRetire(approvalID string) error {
	if err := a.EnsureMutable(); err != nil {
		return err
	}
	return a.run(TransitionRequestRetire, &lifecycleArgs{approvalID: approvalID})
}

// ApproveRetire completes a flow-gated retirement.
func (a *Asset) ApproveRetire(approvalID string, at time.Time) error {
	if err := a.ensurePendingFor(approvalID); err != nil {
		return err
	}
	return a.run(TransitionApproveRetire, &lifecycleArgs{approvalID: approvalID, at: at})
}

// RejectRetire returns a pending asset to active.
func (a *Asset) RejectRetire(approvalID string) error {
	if err := a.ensurePendingFor(approvalID); err != nil {
		return err
	}
	return a.run(TransitionRejectRetire, &lifecycleArgs{approvalID: approvalID})
}

// ForceRetire retires an active asset immediately.
func (a *Asset) ForceRetire(at time.Time) error {
	if err := a.EnsureMutable(); err != nil {
		return err
	}
	return a.run(TransitionForceRetire, &lifecycleArgs{at: at})
}

// RetireAsPart retires a part as a consequence of its device being retired.
// A part waiting on its own approval is retired as well and the approval
// becomes moot.
func (a *Asset) RetireAsPart(at time.Time) error {
	switch a.state {
	case StateRetired:
		return nil
	case StatePendingRetirement:
		return a.ApproveRetire(a.pendingApprovalID, at)
	}
	return a.run(TransitionForceRetire, &lifecycleArgs{at: at})
}

func (a *Asset) ensurePendingFor(approvalID string) error {
	switch {
	case a.state == StateRetired:
		return ErrAssetAlreadyRetired
	case a.state != StatePendingRetirement:
		return ErrNotPendingRetirement
	case a.pendingApprovalID != approvalID:
		return ErrApprovalMismatch
	}
	return nil
}
