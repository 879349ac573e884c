package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string {
	return &s
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		oldOperator *string
		newOperator *string
		want        Transition
	}{
		{
			name: "both absent is a no-op",
			want: TransitionNoOp,
		},
		{
			name:        "new absent with old present is unassignment",
			oldOperator: strPtr("op-1"),
			want:        TransitionUnassigned,
		},
		{
			name:        "old absent with new present is first assignment",
			newOperator: strPtr("op-1"),
			want:        TransitionAssignedFirst,
		},
		{
			name:        "both present is reassignment",
			oldOperator: strPtr("op-1"),
			newOperator: strPtr("op-2"),
			want:        TransitionReassigned,
		},
		{
			name:        "reassignment to the identical operator",
			oldOperator: strPtr("op-1"),
			newOperator: strPtr("op-1"),
			want:        TransitionReassigned,
		},
		{
			name:        "sentinel empty old operator still counts as present",
			oldOperator: strPtr(""),
			newOperator: strPtr("op-1"),
			want:        TransitionReassigned,
		},
		{
			name:        "sentinel empty new operator still counts as present",
			oldOperator: strPtr("op-1"),
			newOperator: strPtr(""),
			want:        TransitionReassigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.oldOperator, tt.newOperator))
		})
	}
}
