package models

// Company is the tenant: the unit of data isolation. OwnerID is immutable
// after creation.
type Company struct {
	BaseModel
	OwnerID     string        `gorm:"type:uuid;not null;index"`
	Name        string        `gorm:"not null"`
	Description string
	Status      CompanyStatus `gorm:"type:varchar(20);default:'pending'"`

	// Counters are maintained by the core and external collaborators
	// (the notifier increments FeedbackSent). Never user-writable, and the
	// aggregation layer must tolerate FeedbackSent racing ahead of totals.
	ReviewCount   int `gorm:"default:0"`
	FeedbackCount int `gorm:"default:0"`
	FeedbackSent  int `gorm:"default:0"`

	Reviews []Review `gorm:"foreignKey:CompanyID"`
}
