package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReviewState(t *testing.T) {
	tests := []struct {
		name   string
		review Review
		want   ReviewState
	}{
		{
			name:   "stub without rating is unrated",
			review: Review{Status: ReviewStatusPending, Rating: 0},
			want:   StateUnrated,
		},
		{
			name:   "rated but unanswered awaits reply",
			review: Review{Status: ReviewStatusPending, Rating: 4},
			want:   StateRatedPendingReply,
		},
		{
			name:   "replied status wins regardless of rating",
			review: Review{Status: ReviewStatusReplied, Rating: 5},
			want:   StateReplied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.review.State())
		})
	}
}

func TestCustomerEditable(t *testing.T) {
	unrated := Review{Status: ReviewStatusPending}
	assert.True(t, unrated.CustomerEditable())

	rated := Review{Status: ReviewStatusPending, Rating: 3}
	assert.True(t, rated.CustomerEditable(), "resubmission is allowed until a reply closes the draft")

	now := time.Now()
	replied := Review{Status: ReviewStatusReplied, Rating: 3, RepliedAt: &now}
	assert.False(t, replied.CustomerEditable())
}
