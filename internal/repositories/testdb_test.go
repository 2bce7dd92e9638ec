package repositories

import (
	"testing"
	"time"

	"reviewhub/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(&models.User{}, &models.Company{}, &models.Review{})
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:  "Test Owner",
		Email: uuid.NewString() + "@test.com",
		Role:  role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCompany(t *testing.T, db *gorm.DB, ownerID, name string) *models.Company {
	t.Helper()

	company := &models.Company{
		OwnerID: ownerID,
		Name:    name,
		Status:  models.CompanyStatusPublished,
	}
	require.NoError(t, db.Create(company).Error)
	return company
}

func createTestReview(t *testing.T, db *gorm.DB, companyID string, rating int, createdAt time.Time) *models.Review {
	t.Helper()

	uid := uuid.NewString()
	status := models.ReviewStatusPending
	review := &models.Review{
		CompanyID: companyID,
		UID:       &uid,
		Rating:    rating,
		Status:    status,
	}
	require.NoError(t, db.Create(review).Error)

	if !createdAt.IsZero() {
		require.NoError(t, db.Model(review).UpdateColumn("created_at", createdAt).Error)
		review.CreatedAt = createdAt
	}
	return review
}
