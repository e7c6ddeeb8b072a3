package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain the snapshot inbox into histories
	PhasePreUpdate               // 1: apply queued input frames
	PhaseUpdate                  // 2: advance actors
	PhasePostUpdate              // 3: sync collision space
	PhaseOutput                  // 4: encode outgoing state
	PhaseCleanup                 // 5: drop destroyed actors

	phaseCount
)

func (p Phase) String() string {
	switch p {
	case PhaseInput:
		return "input"
	case PhasePreUpdate:
		return "pre-update"
	case PhaseUpdate:
		return "update"
	case PhasePostUpdate:
		return "post-update"
	case PhaseOutput:
		return "output"
	case PhaseCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// System is one step of the simulation tick.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
