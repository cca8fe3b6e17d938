package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressRepo_StartedLessons(t *testing.T) {
	database := testutil.NewTestDB(t)
	courses := repository.NewSQLiteCourseRepo(database)
	progress := repository.NewSQLiteProgressRepo(database)
	ctx := context.Background()

	require.NoError(t, courses.Upsert(ctx, testutil.NewTestCourse("c1", "One", testutil.WithModule("M", 20, 20, 20))))
	require.NoError(t, courses.Upsert(ctx, testutil.NewTestCourse("c2", "Two", testutil.WithModule("M", 20))))

	require.NoError(t, progress.Record(ctx, "u1", "c1-m1-l1", 40))
	require.NoError(t, progress.Record(ctx, "u1", "c1-m1-l2", 0))
	require.NoError(t, progress.Record(ctx, "u1", "c2-m1-l1", 100))
	require.NoError(t, progress.Record(ctx, "u2", "c1-m1-l3", 10))

	started, err := progress.StartedLessons(ctx, "u1", []string{"c1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c1-m1-l1": true}, started)
}

func TestProgressRepo_RecordOverwrites(t *testing.T) {
	database := testutil.NewTestDB(t)
	courses := repository.NewSQLiteCourseRepo(database)
	progress := repository.NewSQLiteProgressRepo(database)
	ctx := context.Background()
	require.NoError(t, courses.Upsert(ctx, testutil.NewTestCourse("c1", "One", testutil.WithModule("M", 20))))

	require.NoError(t, progress.Record(ctx, "u1", "c1-m1-l1", 50))
	require.NoError(t, progress.Record(ctx, "u1", "c1-m1-l1", 0))

	started, err := progress.StartedLessons(ctx, "u1", []string{"c1"})
	require.NoError(t, err)
	assert.Empty(t, started)
}

func TestProgressRepo_RejectsOutOfRange(t *testing.T) {
	progress := repository.NewSQLiteProgressRepo(testutil.NewTestDB(t))
	assert.Error(t, progress.Record(context.Background(), "u1", "l1", 120))
}

func TestProgressRepo_NoCourses(t *testing.T) {
	progress := repository.NewSQLiteProgressRepo(testutil.NewTestDB(t))
	started, err := progress.StartedLessons(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Empty(t, started)
}
