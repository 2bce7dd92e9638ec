package models

// User rows are owned by the identity collaborator; the core reads the role
// and performs the one-time USER -> ADMIN promotion on first company creation.
type User struct {
	BaseModel
	Name  string
	Email string   `gorm:"uniqueIndex;not null"`
	Role  UserRole `gorm:"type:varchar(20);not null;default:'user'"`
}
