package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("proposal_ready")
	require.NoError(t, err)
	assert.Equal(t, StatusProposalReady, st)

	_, err = ParseStatus("bogus")
	assert.Error(t, err)

	_, err = ParseStatus("")
	assert.Error(t, err)
}

func TestNextWalksMainWorkflow(t *testing.T) {
	want := []Status{
		StatusDraft,
		StatusSubmitted,
		StatusRequirementsAnalysis,
		StatusPlanning,
		StatusEstimation,
		StatusProposalReady,
		StatusApproved,
		StatusInDevelopment,
		StatusCompleted,
	}
	current := StatusDraft
	for i := 1; i < len(want); i++ {
		current = current.Next()
		assert.Equal(t, want[i], current, "step %d", i)
	}
}

func TestNextTerminalStatusesAreFixedPoints(t *testing.T) {
	for _, st := range []Status{StatusRejected, StatusCompleted, StatusCanceled} {
		assert.Equal(t, st, st.Next())
		assert.True(t, st.IsTerminal())
	}
}

func TestNextLegacyStatusesRejoinPipeline(t *testing.T) {
	assert.Equal(t, StatusRequirementsAnalysis, StatusInProcess.Next())
	assert.Equal(t, StatusPlanning, StatusInReview.Next())
}

func TestEveryStatusHasLabelAndColor(t *testing.T) {
	for _, st := range AllStatuses {
		assert.NotEmpty(t, st.Label(), "label for %s", st)
		assert.NotEmpty(t, st.Color(), "color for %s", st)
		assert.NotEqual(t, string(st), st.Label(), "label for %s should be humanized", st)
	}
}

func TestNonTerminalStatusesEventuallyComplete(t *testing.T) {
	for _, st := range AllStatuses {
		if st.IsTerminal() {
			continue
		}
		current := st
		for i := 0; i < len(AllStatuses); i++ {
			current = current.Next()
			if current.IsTerminal() {
				break
			}
		}
		assert.True(t, current.IsTerminal(), "workflow from %s must terminate", st)
	}
}
