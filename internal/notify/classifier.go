package notify

// Transition classifies one change of a ticket's operator field, derived
// from the operator identifiers before and after an edit.
type Transition string

const (
	// TransitionNoOp means the ticket had no operator before or after.
	TransitionNoOp Transition = "NO_OP"
	// TransitionUnassigned means the edit cleared the operator field. The
	// prior value does not matter; any edit that ends unassigned counts.
	TransitionUnassigned Transition = "UNASSIGNED"
	// TransitionAssignedFirst means a previously unassigned ticket gained
	// an operator.
	TransitionAssignedFirst Transition = "ASSIGNED_FIRST"
	// TransitionReassigned means the operator field was set both before and
	// after the edit, including the case where both values are equal.
	TransitionReassigned Transition = "REASSIGNED"
)

// Classify determines the transition kind for an operator change. Presence
// is what matters: identifier values are never inspected, so a sentinel or
// empty identifier behind a non-nil pointer still counts as present.
func Classify(oldOperator, newOperator *string) Transition {
	switch {
	case newOperator == nil && oldOperator == nil:
		return TransitionNoOp
	case newOperator == nil:
		return TransitionUnassigned
	case oldOperator == nil:
		return TransitionAssignedFirst
	default:
		return TransitionReassigned
	}
}
