package services

import (
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	directory DirectoryService
	reviews   ReviewService
	stats     StatsService
	guard     AccessGuard
}

// newTestEnv wires the full service stack over an in-memory SQLite database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test database")

	err = db.AutoMigrate(&models.User{}, &models.Company{}, &models.Review{})
	require.NoError(t, err, "failed to migrate test database")

	userRepo := repositories.NewUserRepository()
	companyRepo := repositories.NewCompanyRepository()
	reviewRepo := repositories.NewReviewRepository()
	statsRepo := repositories.NewStatsRepository()

	guard := NewAccessGuard(companyRepo)

	return &testEnv{
		db:        db,
		directory: NewDirectoryService(companyRepo, userRepo),
		reviews:   NewReviewService(reviewRepo, companyRepo, guard),
		stats:     NewStatsService(statsRepo, guard),
		guard:     guard,
	}
}

func (e *testEnv) createUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Name:  "Test Owner",
		Email: uuid.NewString() + "@test.com",
		Role:  role,
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}
