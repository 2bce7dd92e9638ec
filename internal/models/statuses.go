package models

type UserRole string
type CompanyStatus string
type ReviewStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	CompanyStatusPending   CompanyStatus = "pending"
	CompanyStatusPublished CompanyStatus = "published"
	CompanyStatusRejected  CompanyStatus = "rejected"

	// Only these two review statuses are persisted. "pending" covers both the
	// unrated stub and the rated-awaiting-reply record; see Review.State.
	ReviewStatusPending ReviewStatus = "pending"
	ReviewStatusReplied ReviewStatus = "replied"
)
