package repositories

import (
	"errors"

	"reviewhub/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	FindUserByID(db *gorm.DB, id string) (*models.User, error)
	CreateUser(db *gorm.DB, user *models.User) error

	// PromoteToAdmin flips role user -> admin. The WHERE clause makes it
	// idempotent: a user already promoted is not touched again.
	PromoteToAdmin(db *gorm.DB, userID string) (bool, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) PromoteToAdmin(db *gorm.DB, userID string) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ? AND role = ?", userID, models.UserRoleUser).
		Update("role", models.UserRoleAdmin)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
