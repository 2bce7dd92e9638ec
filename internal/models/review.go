package models

import "time"

// ReviewState is the in-memory three-state view of a review's lifecycle.
// Only ReviewStatusPending/ReviewStatusReplied are persisted; the pending
// status collapses the first two states and rating distinguishes them.
type ReviewState string

const (
	StateUnrated           ReviewState = "unrated"
	StateRatedPendingReply ReviewState = "rated_pending_reply"
	StateReplied           ReviewState = "replied"
)

type Review struct {
	BaseModel
	CompanyID string  `gorm:"type:uuid;not null;index"`
	UID       *string `gorm:"uniqueIndex"` // single-use token; nil on direct-form reviews
	Rating    int     `gorm:"default:0;check:rating >= 0 AND rating <= 5"`
	Comment   *string
	Reply     *string
	Status    ReviewStatus `gorm:"type:varchar(20);default:'pending'"`
	RepliedAt *time.Time

	// Contact fields are display/notification data only.
	ContactName  string
	ContactEmail string
	ContactPhone string

	Company Company `gorm:"foreignKey:CompanyID"`
}

// State derives the lifecycle state from the persisted columns.
func (r *Review) State() ReviewState {
	if r.Status == ReviewStatusReplied {
		return StateReplied
	}
	if r.Rating > 0 {
		return StateRatedPendingReply
	}
	return StateUnrated
}

// CustomerEditable reports whether the customer may still submit or overwrite
// the rating. A reply closes the conversation from the customer side; merchant
// actions stay open.
func (r *Review) CustomerEditable() bool {
	return r.State() != StateReplied
}
