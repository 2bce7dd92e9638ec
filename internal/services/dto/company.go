package dto

import "time"

type CreateCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=2000"`
}

// ListCompaniesQuery binds the optional status filter.
type ListCompaniesQuery struct {
	Status string `form:"status" validate:"omitempty,is-company-status"`
}

type CompanyResponse struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	ReviewCount   int       `json:"review_count"`
	FeedbackCount int       `json:"feedback_count"`
	FeedbackSent  int       `json:"feedback_sent"`
	CreatedAt     time.Time `json:"created_at"`
}

type CompanyListResponse struct {
	Companies []*CompanyResponse `json:"companies"`
	Total     int                `json:"total"`
}
