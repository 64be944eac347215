package checkout

// State tracks a single submission attempt through the checkout pipeline
type State string

const (
	StateIdle            State = "IDLE"
	StateValidating      State = "VALIDATING"
	StateCreating        State = "CREATING"
	StateAwaitingPayment State = "AWAITING_PAYMENT"
	StateFinalizing      State = "FINALIZING"
	StateCompleted       State = "COMPLETED"

	// Failure exits are terminal for the attempt. The cart, and any
	// pending order already created, survive so the user can retry.
	StateValidationFailed State = "VALIDATION_FAILED"
	StateCreationFailed   State = "CREATION_FAILED"
	StatePaymentFailed    State = "PAYMENT_FAILED"
)

// IsTerminal reports whether the attempt can make no further progress
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateValidationFailed, StateCreationFailed, StatePaymentFailed:
		return true
	default:
		return false
	}
}

func (s State) String() string {
	return string(s)
}
