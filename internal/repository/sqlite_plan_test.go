package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/studyplanner/internal/domain"
	"github.com/alexanderramin/studyplanner/internal/repository"
	"github.com/alexanderramin/studyplanner/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_CreateAndGetByID(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	generated := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	plan := testutil.NewTestPlan("u1", "Spring",
		testutil.WithMode(domain.ModeAIGenerated),
		testutil.WithEndDate(end),
		testutil.WithAIMeta(domain.AIMetadata{
			AlgorithmVersion: "1.0.0",
			GeneratedAt:      generated,
			Scores:           domain.Scores{Retention: 80, Completion: 70, Balance: 75},
			Techniques:       []string{"load_balancing"},
			Reasoning:        "steady pace",
		}),
	)
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Spring", got.Name)
	assert.Equal(t, domain.ModeAIGenerated, got.Mode)
	assert.Equal(t, domain.SessionMedium, got.SessionType)
	assert.True(t, got.StartDate.Equal(plan.StartDate))
	require.NotNil(t, got.EndDate)
	assert.True(t, got.EndDate.Equal(end))
	assert.True(t, got.IsActive)
	require.NotNil(t, got.AIMeta)
	assert.Equal(t, 80, got.AIMeta.Scores.Retention)
	assert.True(t, got.AIMeta.GeneratedAt.Equal(generated))
	assert.Equal(t, []string{"load_balancing"}, got.AIMeta.Techniques)
}

func TestPlanRepo_ManualPlanHasNoAIMeta(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	plan := testutil.NewTestPlan("u1", "Manual")
	require.NoError(t, repo.Create(ctx, plan))

	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Nil(t, got.AIMeta)
	assert.Nil(t, got.EndDate)
}

func TestPlanRepo_GetByID_NotFound(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanRepo_ListByOwner(t *testing.T) {
	repo := repository.NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	older := testutil.NewTestPlan("u1", "Older")
	older.CreatedAt = older.CreatedAt.Add(-time.Hour)
	newer := testutil.NewTestPlan("u1", "Newer")
	other := testutil.NewTestPlan("u2", "Other")
	for _, p := range []*domain.StudyPlan{older, newer, other} {
		require.NoError(t, repo.Create(ctx, p))
	}

	plans, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "Newer", plans[0].Name)
	assert.Equal(t, "Older", plans[1].Name)
}
