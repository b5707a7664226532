package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"intellistudy_backend/internal/model"
	"intellistudy_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeQuizStore struct {
	calls   int
	latest  *model.QuizResult
	err     error
	created []*model.QuizResult
	sawDL   bool
}

func (f *fakeQuizStore) FindLatest(ctx context.Context, _, _ string) (*model.QuizResult, error) {
	f.calls++
	_, f.sawDL = ctx.Deadline()
	return f.latest, f.err
}

func (f *fakeQuizStore) Create(_ context.Context, r *model.QuizResult) error {
	f.created = append(f.created, r)
	return nil
}

func (f *fakeQuizStore) CountByCourseAndUser(_ context.Context, _, _ string) (int64, error) {
	return int64(len(f.created)), f.err
}

func TestQuizResultServiceValidatesIdentifiers(t *testing.T) {
	store := &fakeQuizStore{}
	svc := NewQuizResultService(store, time.Second)

	for _, ids := range [][2]string{{"", "u1"}, {"c1", ""}, {"  ", "u1"}, {"", ""}} {
		_, err := svc.GetLatestResult(context.Background(), ids[0], ids[1])
		assert.ErrorIs(t, err, util.ErrMissingIdentifiers)
	}
	assert.Zero(t, store.calls)
}

func TestQuizResultServiceNoAttemptIsNotAnError(t *testing.T) {
	store := &fakeQuizStore{err: gorm.ErrRecordNotFound}
	svc := NewQuizResultService(store, time.Second)

	result, err := svc.GetLatestResult(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.True(t, store.sawDL)
}

func TestQuizResultServiceStorageFailure(t *testing.T) {
	storageErr := errors.New("dial tcp: connection refused")
	svc := NewQuizResultService(&fakeQuizStore{err: storageErr}, time.Second)

	_, err := svc.GetLatestResult(context.Background(), "c1", "u1")
	assert.ErrorIs(t, err, storageErr)
	assert.NotErrorIs(t, err, util.ErrMissingIdentifiers)
}

func TestQuizResultServiceReturnsLatest(t *testing.T) {
	latest := &model.QuizResult{ID: 7, CourseID: "c1", UserID: "u1", Score: 9, Total: 10}
	svc := NewQuizResultService(&fakeQuizStore{latest: latest}, 0)

	result, err := svc.GetLatestResult(context.Background(), " c1 ", "u1")
	require.NoError(t, err)
	assert.Same(t, latest, result)
}

func TestQuizResultServiceRecordResult(t *testing.T) {
	store := &fakeQuizStore{}
	svc := NewQuizResultService(store, time.Second)

	assert.ErrorIs(t, svc.RecordResult(context.Background(), &model.QuizResult{UserID: "u1"}), util.ErrMissingIdentifiers)

	r := &model.QuizResult{CourseID: "c1", UserID: "u1", Score: 3, Total: 5}
	require.NoError(t, svc.RecordResult(context.Background(), r))
	require.Len(t, store.created, 1)
	assert.False(t, r.CompletedAt.IsZero())
}

func TestQuizResultServiceAttemptCount(t *testing.T) {
	store := &fakeQuizStore{}
	svc := NewQuizResultService(store, time.Second)
	ctx := context.Background()

	require.NoError(t, svc.RecordResult(ctx, &model.QuizResult{CourseID: "c1", UserID: "u1", Score: 3, Total: 5}))
	require.NoError(t, svc.RecordResult(ctx, &model.QuizResult{CourseID: "c1", UserID: "u1", Score: 4, Total: 5}))

	count, err := svc.AttemptCount(ctx, " c1 ", "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	_, err = svc.AttemptCount(ctx, "", "u1")
	assert.ErrorIs(t, err, util.ErrMissingIdentifiers)
}
