package gate

// FlowStep is one stage of a multi-screen auth flow. The view layer renders
// off the current step; the flow rejects transitions its table does not
// allow, so a form cannot jump ahead of the server.
type FlowStep string

// Registration flow steps.
const (
	StepRegistered  FlowStep = "registered"
	StepAwaitingOTP FlowStep = "awaiting-otp"
	StepVerified    FlowStep = "verified"
)

// Password reset flow steps.
const (
	StepResetRequested   FlowStep = "requested"
	StepResetEmailSent   FlowStep = "email-sent"
	StepChangingPassword FlowStep = "change-password"
	StepPasswordChanged  FlowStep = "password-changed"
)

// Flow tracks progress through one auth flow instance.
type Flow struct {
	current     FlowStep
	transitions map[FlowStep]map[FlowStep]struct{}
}

// NewRegistrationFlow models register → OTP → verified. Resending the OTP
// stays on the awaiting step.
func NewRegistrationFlow() *Flow {
	return &Flow{
		current: StepRegistered,
		transitions: map[FlowStep]map[FlowStep]struct{}{
			StepRegistered: {
				StepAwaitingOTP: {},
			},
			StepAwaitingOTP: {
				StepAwaitingOTP: {},
				StepVerified:    {},
			},
		},
	}
}

// NewPasswordResetFlow models request → email sent → change form → changed.
func NewPasswordResetFlow() *Flow {
	return &Flow{
		current: StepResetRequested,
		transitions: map[FlowStep]map[FlowStep]struct{}{
			StepResetRequested: {
				StepResetEmailSent: {},
			},
			StepResetEmailSent: {
				StepResetEmailSent:   {},
				StepChangingPassword: {},
			},
			StepChangingPassword: {
				StepPasswordChanged: {},
			},
		},
	}
}

// Current returns the step the flow is on.
func (f *Flow) Current() FlowStep {
	return f.current
}

// Advance moves the flow to target or rejects the transition.
func (f *Flow) Advance(target FlowStep) error {
	if target == "" {
		return invalidStep(f.current, target, "target step is empty")
	}

	allowed, ok := f.transitions[f.current]
	if !ok {
		return invalidStep(f.current, target, "current step is terminal")
	}

	if _, ok := allowed[target]; !ok {
		return invalidStep(f.current, target, "transition not allowed")
	}

	f.current = target
	return nil
}

// Done reports whether the flow reached a terminal step.
func (f *Flow) Done() bool {
	_, hasNext := f.transitions[f.current]
	return !hasNext
}

func invalidStep(from, to FlowStep, reason string) error {
	clone := ErrInvalidFlowStep.Clone()
	if clone == nil {
		return ErrInvalidFlowStep
	}
	return clone.WithMetadata(map[string]any{
		"from":   from,
		"to":     to,
		"reason": reason,
	})
}
