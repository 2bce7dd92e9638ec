package dto

import "time"

// CreateStubRequest seeds a review with a single-use token before the
// customer has rated. Called by the token-issuing collaborator.
type CreateStubRequest struct {
	UID          string `json:"uid" validate:"required,max=255"`
	ContactName  string `json:"contact_name" validate:"max=255"`
	ContactPhone string `json:"contact_phone" validate:"max=64"`
}

type SubmitRatingRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateReviewRequest is the direct-form path: contact data and rating
// supplied at once, no token involved.
type CreateReviewRequest struct {
	ContactName  string `json:"contact_name" validate:"max=255"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone string `json:"contact_phone" validate:"max=64"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment"`
}

type ReplyRequest struct {
	Reply string `json:"reply" validate:"required"`
}

// ListReviewsQuery binds the listing filter from query parameters.
type ListReviewsQuery struct {
	CompanyID string `form:"company_id"`
	Status    string `form:"status" validate:"is-review-status"`
}

type ReviewResponse struct {
	ID           string     `json:"id"`
	CompanyID    string     `json:"company_id"`
	UID          *string    `json:"uid,omitempty"`
	Rating       int        `json:"rating"`
	Comment      *string    `json:"comment,omitempty"`
	Reply        *string    `json:"reply,omitempty"`
	Status       string     `json:"status"`
	State        string     `json:"state"`
	ContactName  string     `json:"contact_name,omitempty"`
	ContactEmail string     `json:"contact_email,omitempty"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	RepliedAt    *time.Time `json:"replied_at,omitempty"`
}

type ReviewListResponse struct {
	Reviews    []*ReviewResponse `json:"reviews"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}
