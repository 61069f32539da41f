package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterviewStatusTransitions(t *testing.T) {
	t.Run("allowed transitions check", func(t *testing.T) {
		require.True(t, InterviewStatusPending.CanTransitionTo(InterviewStatusInProgress))
		require.True(t, InterviewStatusPending.CanTransitionTo(InterviewStatusExpired))
		require.True(t, InterviewStatusInProgress.CanTransitionTo(InterviewStatusCompleted))
		require.True(t, InterviewStatusInProgress.CanTransitionTo(InterviewStatusExpired))
	})
	t.Run("terminal statuses check", func(t *testing.T) {
		for _, terminal := range []InterviewStatus{InterviewStatusCompleted, InterviewStatusExpired} {
			require.True(t, terminal.IsTerminal())
			for _, next := range []InterviewStatus{InterviewStatusPending, InterviewStatusInProgress, InterviewStatusCompleted, InterviewStatusExpired} {
				require.False(t, terminal.CanTransitionTo(next))
			}
		}
	})
	t.Run("forbidden transitions check", func(t *testing.T) {
		require.False(t, InterviewStatusPending.CanTransitionTo(InterviewStatusCompleted))
		require.False(t, InterviewStatusInProgress.CanTransitionTo(InterviewStatusPending))
		require.False(t, InterviewStatusPending.IsTerminal())
		require.False(t, InterviewStatusInProgress.IsTerminal())
	})
}
