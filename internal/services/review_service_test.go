package services

import (
	"fmt"
	"testing"

	"reviewhub/internal/models"
	"reviewhub/internal/services/dto"
	"reviewhub/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (e *testEnv) createCompany(t *testing.T, ownerID, name string) *dto.CompanyResponse {
	t.Helper()
	company, err := e.directory.CreateCompany(e.db, ownerID, &dto.CreateCompanyRequest{Name: name})
	require.NoError(t, err)
	return company
}

func TestStubToReplyLifecycle(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	// Stub created by the token collaborator.
	stub, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{
		UID:         "tx123",
		ContactName: "Jamie",
	})
	require.NoError(t, err)
	assert.Equal(t, string(models.StateUnrated), stub.State)
	assert.Zero(t, stub.Rating)

	// Customer follows the link and rates.
	rated, err := env.reviews.SubmitRating(env.db, "tx123", &dto.SubmitRatingRequest{Rating: 4, Comment: "Great"})
	require.NoError(t, err)
	assert.Equal(t, 4, rated.Rating)
	assert.Equal(t, string(models.ReviewStatusPending), rated.Status)
	assert.Equal(t, string(models.StateRatedPendingReply), rated.State)
	require.NotNil(t, rated.Comment)
	assert.Equal(t, "Great", *rated.Comment)

	// Merchant replies.
	replied, err := env.reviews.Reply(env.db, stub.ID, owner.ID, &dto.ReplyRequest{Reply: "Thanks!"})
	require.NoError(t, err)
	assert.Equal(t, string(models.ReviewStatusReplied), replied.Status)
	require.NotNil(t, replied.RepliedAt)

	// A late resubmission is rejected and changes nothing.
	_, err = env.reviews.SubmitRating(env.db, "tx123", &dto.SubmitRatingRequest{Rating: 1})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeAlreadySubmitted, appErr.Code)

	current, err := env.reviews.GetByUID(env.db, "tx123")
	require.NoError(t, err)
	assert.Equal(t, 4, current.Rating)
	require.NotNil(t, current.Reply)
	assert.Equal(t, "Thanks!", *current.Reply)
}

func TestSubmitRatingOverwritesDraftBeforeReply(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	_, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx9"})
	require.NoError(t, err)

	_, err = env.reviews.SubmitRating(env.db, "tx9", &dto.SubmitRatingRequest{Rating: 2, Comment: "meh"})
	require.NoError(t, err)

	// Until a reply closes the draft the customer may resubmit.
	updated, err := env.reviews.SubmitRating(env.db, "tx9", &dto.SubmitRatingRequest{Rating: 5, Comment: "  actually great  "})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Rating)
	require.NotNil(t, updated.Comment)
	assert.Equal(t, "actually great", *updated.Comment)
}

func TestSubmitRatingEmptyCommentStoredAsNull(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	_, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx10"})
	require.NoError(t, err)

	rated, err := env.reviews.SubmitRating(env.db, "tx10", &dto.SubmitRatingRequest{Rating: 3, Comment: "   "})
	require.NoError(t, err)
	assert.Nil(t, rated.Comment)
}

func TestSubmitRatingValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	_, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx11"})
	require.NoError(t, err)

	for _, rating := range []int{0, 6, -1} {
		_, err := env.reviews.SubmitRating(env.db, "tx11", &dto.SubmitRatingRequest{Rating: rating})
		require.Error(t, err, "rating %d must be rejected", rating)
		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	}

	_, err = env.reviews.SubmitRating(env.db, "unknown-uid", &dto.SubmitRatingRequest{Rating: 3})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestCreateStubDuplicateToken(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	_, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx42"})
	require.NoError(t, err)

	// Duplicate redemption, e.g. a retried payment callback.
	_, err = env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx42"})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeDuplicateToken, appErr.Code)
}

func TestCreateStubIncrementsCounters(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	for i := 0; i < 3; i++ {
		_, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: fmt.Sprintf("tx-%d", i)})
		require.NoError(t, err)
	}

	stored, err := env.directory.GetCompany(env.db, company.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.ReviewCount)
	assert.Equal(t, 3, stored.FeedbackCount)
}

func TestReplyValidationAndEditing(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	stub, err := env.reviews.CreateStub(env.db, company.ID, &dto.CreateStubRequest{UID: "tx77"})
	require.NoError(t, err)
	_, err = env.reviews.SubmitRating(env.db, "tx77", &dto.SubmitRatingRequest{Rating: 4})
	require.NoError(t, err)

	_, err = env.reviews.Reply(env.db, stub.ID, owner.ID, &dto.ReplyRequest{Reply: "   "})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	first, err := env.reviews.Reply(env.db, stub.ID, owner.ID, &dto.ReplyRequest{Reply: "Thanks!"})
	require.NoError(t, err)
	require.NotNil(t, first.RepliedAt)

	// Merchant-side editing stays open after the transition.
	edited, err := env.reviews.Reply(env.db, stub.ID, owner.ID, &dto.ReplyRequest{Reply: "Thanks, come again!"})
	require.NoError(t, err)
	require.NotNil(t, edited.Reply)
	assert.Equal(t, "Thanks, come again!", *edited.Reply)
	assert.Equal(t, first.RepliedAt.Unix(), edited.RepliedAt.Unix())
}

func TestCreateDirectReview(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, models.UserRoleUser)
	other := env.createUser(t, models.UserRoleUser)
	company := env.createCompany(t, owner.ID, "Acme")

	review, err := env.reviews.CreateDirect(env.db, company.ID, owner.ID, &dto.CreateReviewRequest{
		ContactName: "Sam",
		Rating:      5,
		Comment:     "Walk-in feedback",
	})
	require.NoError(t, err)
	assert.Nil(t, review.UID)
	assert.Equal(t, string(models.StateRatedPendingReply), review.State)

	// Another tenant cannot write into this company.
	_, err = env.reviews.CreateDirect(env.db, company.ID, other.ID, &dto.CreateReviewRequest{Rating: 1})
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestListReviewsScopingAndPaging(t *testing.T) {
	env := newTestEnv(t)
	ownerA := env.createUser(t, models.UserRoleUser)
	ownerB := env.createUser(t, models.UserRoleUser)
	companyA := env.createCompany(t, ownerA.ID, "Acme")
	companyB := env.createCompany(t, ownerB.ID, "Globex")

	for i := 0; i < 12; i++ {
		uid := fmt.Sprintf("a-%d", i)
		stub, err := env.reviews.CreateStub(env.db, companyA.ID, &dto.CreateStubRequest{UID: uid})
		require.NoError(t, err)
		_, err = env.reviews.SubmitRating(env.db, uid, &dto.SubmitRatingRequest{Rating: 4})
		require.NoError(t, err)
		if i < 7 {
			_, err = env.reviews.Reply(env.db, stub.ID, ownerA.ID, &dto.ReplyRequest{Reply: "ok"})
			require.NoError(t, err)
		}
	}
	_, err := env.reviews.CreateStub(env.db, companyB.ID, &dto.CreateStubRequest{UID: "b-0"})
	require.NoError(t, err)

	query := &dto.ListReviewsQuery{CompanyID: companyA.ID, Status: string(models.ReviewStatusReplied)}
	page2, err := env.reviews.ListReviews(env.db, ownerA.ID, query, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(7), page2.Total)
	assert.Equal(t, 2, page2.TotalPages)
	assert.Len(t, page2.Reviews, 2)
	for _, r := range page2.Reviews {
		assert.Equal(t, string(models.ReviewStatusReplied), r.Status)
		assert.Equal(t, companyA.ID, r.CompanyID)
	}

	// Tenant B cannot list through tenant A's company filter.
	_, err = env.reviews.ListReviews(env.db, ownerB.ID, &dto.ListReviewsQuery{CompanyID: companyA.ID}, 1, 10)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	// Page size is clamped into [1,100]; out-of-range requests still answer.
	clamped, err := env.reviews.ListReviews(env.db, ownerA.ID, &dto.ListReviewsQuery{}, 1, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(12), clamped.Total)
}
