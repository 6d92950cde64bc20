package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"barterhub/internal/domain/entity"
	"barterhub/pkg/errors"
)

func newActivityFixture() (*ActivityUseCase, *fakeActivityRepo) {
	repo := newFakeActivityRepo()
	return NewActivityUseCase(repo), repo
}

func TestNotifySuppressesSelf(t *testing.T) {
	uc, repo := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProductLike, "u1", "noise", "p1"))
	require.NoError(t, uc.Notify(context.Background(), "", entity.ActivityProductLike, "u2", "noise", "p1"))

	count, err := repo.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotifyUpsertsOnTuple(t *testing.T) {
	uc, repo := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProductLike, "u2", "first", "p1"))

	key := entity.ActivityKey("u1", entity.ActivityProductLike, "u2", "p1")
	require.NoError(t, repo.MarkRead(context.Background(), key))

	// The repeat refreshes the same record and flips it back to unread
	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProductLike, "u2", "second", "p1"))

	activities, total, err := repo.ListByUser(context.Background(), "u1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, activities, 1)
	assert.Equal(t, "second", activities[0].Content)
	assert.False(t, activities[0].Read)
}

func TestRetract(t *testing.T) {
	uc, repo := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProductLike, "u2", "liked", "p1"))
	require.NoError(t, uc.Retract(context.Background(), "u1", entity.ActivityProductLike, "u2", "p1"))

	count, err := repo.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMarkReviewPromptDoneMissingIsNoError(t *testing.T) {
	uc, _ := newActivityFixture()

	assert.NoError(t, uc.MarkReviewPromptDone(context.Background(), "u1", "u2", "p1"))
}

func TestMarkReadOwnership(t *testing.T) {
	uc, repo := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityReview, "u2", "reviewed", "p1"))
	key := entity.ActivityKey("u1", entity.ActivityReview, "u2", "p1")

	err := uc.MarkRead(context.Background(), "intruder", key)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.MarkRead(context.Background(), "u1", key))

	activity, err := repo.GetByID(context.Background(), key)
	require.NoError(t, err)
	assert.True(t, activity.Read)
}

func TestDeleteOwnership(t *testing.T) {
	uc, _ := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityReview, "u2", "reviewed", "p1"))
	key := entity.ActivityKey("u1", entity.ActivityReview, "u2", "p1")

	err := uc.Delete(context.Background(), "intruder", key)
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	require.NoError(t, uc.Delete(context.Background(), "u1", key))

	err = uc.Delete(context.Background(), "u1", key)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestMarkAllReadAndUnreadCount(t *testing.T) {
	uc, _ := newActivityFixture()

	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProductLike, "u2", "a", "p1"))
	require.NoError(t, uc.Notify(context.Background(), "u1", entity.ActivityProfileLike, "u3", "b", ""))
	require.NoError(t, uc.Notify(context.Background(), "other", entity.ActivityReview, "u2", "c", "p2"))

	count, err := uc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, uc.MarkAllRead(context.Background(), "u1"))

	count, err = uc.UnreadCount(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other users' activities untouched
	count, err = uc.UnreadCount(context.Background(), "other")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
