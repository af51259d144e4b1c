package app_test

import (
	"context"
	"testing"
	"time"

	"kittyfit/internal/adapter/memory"
	"kittyfit/internal/app"
	"kittyfit/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var benchResults = []domain.ExerciseResult{
	{ExerciseName: "Bench Press", Sets: []domain.SetEntry{{Reps: 8, Weight: 60}, {Reps: 6, Weight: 65}}},
	{ExerciseName: "Push Up", Sets: []domain.SetEntry{{Reps: 20}}},
}

func newLogFixture() (*app.WorkoutLogService, *memory.Store) {
	store := memory.NewStore()
	return app.NewWorkoutLogService(store, store.Plans()), store
}

func TestCreateLog(t *testing.T) {
	svc, _ := newLogFixture()

	l, err := svc.Create(context.Background(), "u1", "push-day", time.Time{}, benchResults)
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, "u1", l.UserID)
	assert.False(t, l.Date.IsZero(), "zero date defaults to now")
	assert.Len(t, l.Results, 2)
}

func TestCreateLogRejectsEmptyResults(t *testing.T) {
	svc, _ := newLogFixture()

	_, err := svc.Create(context.Background(), "u1", "push-day", time.Now(), nil)
	assert.ErrorIs(t, err, app.ErrEmptyWorkout)
}

func TestGetLogOwnership(t *testing.T) {
	svc, _ := newLogFixture()
	mine, err := svc.Create(context.Background(), "u1", "push-day", time.Now(), benchResults)
	require.NoError(t, err)
	theirs, err := svc.Create(context.Background(), "u2", "leg-day", time.Now(), benchResults)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), "u1", mine.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, got.ID)

	_, err = svc.Get(context.Background(), "u1", theirs.ID)
	assert.ErrorIs(t, err, app.ErrLogNotFound)

	_, err = svc.Get(context.Background(), "u1", "no-such-id")
	assert.ErrorIs(t, err, app.ErrLogNotFound)
}

func TestLegacyUnownedLogsVisibleToEveryone(t *testing.T) {
	svc, store := newLogFixture()

	legacy := &domain.WorkoutLog{ID: "legacy-1", WorkoutID: "old-plan", Date: time.Now(), Results: benchResults}
	require.NoError(t, store.Add(context.Background(), legacy))

	for _, user := range []string{"u1", "u2"} {
		got, err := svc.Get(context.Background(), user, "legacy-1")
		require.NoError(t, err, "user %s", user)
		assert.Equal(t, "legacy-1", got.ID)

		list, err := svc.List(context.Background(), user)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	}
}

func TestUpdateLogReplacesWholesale(t *testing.T) {
	svc, _ := newLogFixture()
	l, err := svc.Create(context.Background(), "u1", "push-day", time.Now(), benchResults)
	require.NoError(t, err)

	newResults := []domain.ExerciseResult{{ExerciseName: "Squat", Sets: []domain.SetEntry{{Reps: 5, Weight: 100}}}}
	updated, err := svc.Update(context.Background(), "u1", l.ID, "leg-day", time.Time{}, newResults)
	require.NoError(t, err)

	assert.Equal(t, "leg-day", updated.WorkoutID)
	assert.Equal(t, l.Date, updated.Date, "zero date keeps the original")
	require.Len(t, updated.Results, 1)
	assert.Equal(t, "Squat", updated.Results[0].ExerciseName)
	assert.Equal(t, "u1", updated.UserID, "ownership never changes on edit")
}

func TestUpdateLogOwnerChecked(t *testing.T) {
	svc, _ := newLogFixture()
	theirs, err := svc.Create(context.Background(), "u2", "leg-day", time.Now(), benchResults)
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), "u1", theirs.ID, "x", time.Now(), benchResults)
	assert.ErrorIs(t, err, app.ErrLogNotFound)
}

func TestDeleteLog(t *testing.T) {
	svc, _ := newLogFixture()
	l, err := svc.Create(context.Background(), "u1", "push-day", time.Now(), benchResults)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "u1", l.ID))

	_, err = svc.Get(context.Background(), "u1", l.ID)
	assert.ErrorIs(t, err, app.ErrLogNotFound)
}

func TestDeleteLogOwnerChecked(t *testing.T) {
	svc, _ := newLogFixture()
	theirs, err := svc.Create(context.Background(), "u2", "leg-day", time.Now(), benchResults)
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "u1", theirs.ID)
	assert.ErrorIs(t, err, app.ErrLogNotFound)

	// Still there for its owner.
	_, err = svc.Get(context.Background(), "u2", theirs.ID)
	assert.NoError(t, err)
}

func TestListNewestFirst(t *testing.T) {
	svc, _ := newLogFixture()
	older, err := svc.Create(context.Background(), "u1", "a", time.Now().AddDate(0, 0, -2), benchResults)
	require.NoError(t, err)
	newer, err := svc.Create(context.Background(), "u1", "b", time.Now(), benchResults)
	require.NoError(t, err)

	list, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
}

func TestPlanLifecycle(t *testing.T) {
	svc, _ := newLogFixture()

	p, err := svc.CreatePlan(context.Background(), "u1", "Push Day", []string{"Bench Press", "Push Up"})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)

	_, err = svc.CreatePlan(context.Background(), "u1", "", nil)
	assert.Error(t, err)

	plans, err := svc.ListPlans(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, plans, 1)

	err = svc.DeletePlan(context.Background(), "u2", p.ID)
	assert.ErrorIs(t, err, app.ErrPlanNotFound)

	require.NoError(t, svc.DeletePlan(context.Background(), "u1", p.ID))
	plans, err = svc.ListPlans(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, plans)
}
