package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSteps_FixedSequence(t *testing.T) {
	steps := Steps()
	require.Len(t, steps, StepCount())

	ids := make([]StepID, 0, len(steps))
	for _, s := range steps {
		ids = append(ids, s.ID)
		assert.NotEmpty(t, s.Title)
		assert.NotEmpty(t, s.Message)
	}
	assert.Equal(t, []StepID{
		StepWelcome,
		StepBasicInfo,
		StepDocumentUpload,
		StepSelfieCheck,
		StepRiskChecks,
		StepCompleted,
	}, ids)
}

func TestStepAt(t *testing.T) {
	assert.Equal(t, StepWelcome, StepAt(0).ID)
	assert.Equal(t, StepCompleted, StepAt(StepCount()-1).ID)
}

func TestSteps_ReturnsCopy(t *testing.T) {
	steps := Steps()
	steps[0].Title = "mutated"
	assert.NotEqual(t, "mutated", StepAt(0).Title)
}
