package services

import (
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/services/dto"
	"reviewhub/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyPromotesOwnerOnce(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)

	first, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.Name)
	assert.Equal(t, string(models.CompanyStatusPublished), first.Status)
	assert.Zero(t, first.ReviewCount)

	var promoted models.User
	require.NoError(t, env.db.First(&promoted, "id = ?", owner.ID).Error)
	assert.Equal(t, models.UserRoleAdmin, promoted.Role)

	// A second creation succeeds but does not re-promote.
	second, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: "Acme Two"})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	require.NoError(t, env.db.First(&promoted, "id = ?", owner.ID).Error)
	assert.Equal(t, models.UserRoleAdmin, promoted.Role)
}

func TestCreateCompanyRejectsBlankName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)

	_, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: "   "})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestListCompaniesOrderedByName(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)

	for _, name := range []string{"Zephyr", "Acme", "Midway"} {
		_, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: name})
		require.NoError(t, err)
	}

	list, err := env.directory.ListCompanies(env.db, owner.ID, nil)
	require.NoError(t, err)
	require.Equal(t, 3, list.Total)
	assert.Equal(t, "Acme", list.Companies[0].Name)
	assert.Equal(t, "Midway", list.Companies[1].Name)
	assert.Equal(t, "Zephyr", list.Companies[2].Name)
}

func TestListCompaniesStatusFilter(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)

	published, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	rejected, err := env.directory.CreateCompany(env.db, owner.ID, &dto.CreateCompanyRequest{Name: "Badco"})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.Company{}).Where("id = ?", rejected.ID).
		Update("status", models.CompanyStatusRejected).Error)

	list, err := env.directory.ListCompanies(env.db, owner.ID, &dto.ListCompaniesQuery{Status: "published"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, published.ID, list.Companies[0].ID)

	all, err := env.directory.ListCompanies(env.db, owner.ID, &dto.ListCompaniesQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)
}

func TestGetCompanyHidesOtherTenants(t *testing.T) {
	env := newTestEnv(t)
	ownerA := env.createUser(t, models.UserRoleUser)
	ownerB := env.createUser(t, models.UserRoleUser)

	company, err := env.directory.CreateCompany(env.db, ownerA.ID, &dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	// The owner can fetch it.
	got, err := env.directory.GetCompany(env.db, company.ID, ownerA.ID)
	require.NoError(t, err)
	assert.Equal(t, company.ID, got.ID)

	// Another tenant gets the same answer as for a nonexistent id.
	_, errOther := env.directory.GetCompany(env.db, company.ID, ownerB.ID)
	require.Error(t, errOther)
	otherApp, ok := apperrors.AsAppError(errOther)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, otherApp.Code)

	_, errMissing := env.directory.GetCompany(env.db, "no-such-id", ownerB.ID)
	require.Error(t, errMissing)
	missingApp, ok := apperrors.AsAppError(errMissing)
	require.True(t, ok)
	assert.Equal(t, otherApp.Code, missingApp.Code)
	assert.Equal(t, otherApp.HTTPCode, missingApp.HTTPCode)
}
