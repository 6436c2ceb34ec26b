package mission

import "fmt"

// GuardResult is the outcome of evaluating a lifecycle guard.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts a rejected guard into an ErrInvalidTransition.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidTransition, r.Reason)
}

// TransitionContext is the state a lifecycle guard is evaluated against.
type TransitionContext struct {
	MissionID int64
	Status    Status
	ChiefID   int64
	CallerID  int64
	CrewCount int64
	MaxCrew   int64
}

// Transition describes one edge of the mission lifecycle.
type Transition struct {
	To    Status
	From  []Status
	Guard func(TransitionContext) GuardResult
}

var (
	ProgressTransition = Transition{
		To:    StatusInProgress,
		From:  []Status{StatusOpen, StatusFailed},
		Guard: CanProgress,
	}
	CompleteTransition = Transition{
		To:    StatusCompleted,
		From:  []Status{StatusInProgress},
		Guard: CanComplete,
	}
	FailTransition = Transition{
		To:    StatusFailed,
		From:  []Status{StatusInProgress},
		Guard: CanFail,
	}
)

// CanProgress evaluates whether a mission can move to InProgress.
// Rules:
// - Status must be Open or Failed
// - Crew count must be above zero and below the configured maximum
// - Caller must be the chief
func CanProgress(ctx TransitionContext) GuardResult {
	if ctx.Status != StatusOpen && ctx.Status != StatusFailed {
		return GuardResult{
			Reason: fmt.Sprintf("mission %d is %s, expected Open or Failed", ctx.MissionID, ctx.Status),
		}
	}
	if ctx.CrewCount <= 0 {
		return GuardResult{
			Reason: fmt.Sprintf("mission %d has no crew", ctx.MissionID),
		}
	}
	if ctx.CrewCount >= ctx.MaxCrew {
		return GuardResult{
			Reason: fmt.Sprintf("mission %d crew count %d reaches the limit of %d", ctx.MissionID, ctx.CrewCount, ctx.MaxCrew),
		}
	}
	return chiefOnly(ctx)
}

// CanComplete evaluates whether a mission can move to Completed.
func CanComplete(ctx TransitionContext) GuardResult {
	return inProgressByChief(ctx)
}

// CanFail evaluates whether a mission can move to Failed.
func CanFail(ctx TransitionContext) GuardResult {
	return inProgressByChief(ctx)
}

func inProgressByChief(ctx TransitionContext) GuardResult {
	if ctx.Status != StatusInProgress {
		return GuardResult{
			Reason: fmt.Sprintf("mission %d is %s, expected InProgress", ctx.MissionID, ctx.Status),
		}
	}
	return chiefOnly(ctx)
}

func chiefOnly(ctx TransitionContext) GuardResult {
	if ctx.ChiefID != ctx.CallerID {
		return GuardResult{
			Reason: fmt.Sprintf("brawler %d is not the chief of mission %d", ctx.CallerID, ctx.MissionID),
		}
	}
	return GuardResult{Allowed: true}
}
