package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func TestStudyRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	study := testutil.NewTestStudy("ONC-2024", "Oncology Phase II")
	require.NoError(t, repo.Create(ctx, study))
	assert.False(t, study.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, "ONC-2024", got.ProtocolCode)
	assert.Equal(t, "Oncology Phase II", got.Name)

	byCode, err := repo.GetByProtocol(ctx, "ONC-2024")
	require.NoError(t, err)
	assert.Equal(t, study.ID, byCode.ID)
}

func TestStudyRepo_CreateAssignsID(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))

	study := testutil.NewTestStudy("CARD-1", "Cardiology")
	study.ID = ""
	require.NoError(t, repo.Create(context.Background(), study))
	assert.NotEmpty(t, study.ID)
}

func TestStudyRepo_ProtocolCodeUnique(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStudy("DUP-1", "First")))
	err := repo.Create(ctx, testutil.NewTestStudy("DUP-1", "Second"))
	assert.Error(t, err)
}

func TestStudyRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudyRepo_ListOrdersByName(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestStudy("B-1", "Beta")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestStudy("A-1", "Alpha")))

	studies, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, studies, 2)
	assert.Equal(t, "Alpha", studies[0].Name)
	assert.Equal(t, "Beta", studies[1].Name)
}

func TestStudyRepo_Rename(t *testing.T) {
	repo := NewSQLiteStudyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	study := testutil.NewTestStudy("REN-1", "Before")
	require.NoError(t, repo.Create(ctx, study))
	require.NoError(t, repo.Rename(ctx, study.ID, "After"))

	got, err := repo.GetByID(ctx, study.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)

	assert.ErrorIs(t, repo.Rename(ctx, "missing", "X"), ErrNotFound)
}

func TestStudyRepo_DeleteCascadesToForms(t *testing.T) {
	database := testutil.NewTestDB(t)
	studies := NewSQLiteStudyRepo(database)
	forms := NewSQLiteFormRepo(database)
	ctx := context.Background()

	study := testutil.NewTestStudy("DEL-1", "Doomed")
	require.NoError(t, studies.Create(ctx, study))

	visit := asDraft(testutil.NewTestVisit("V", testutil.NewTestSection("S")))
	_, err := forms.SaveVisit(ctx, study.ID, encodeForTest(visit))
	require.NoError(t, err)

	require.NoError(t, studies.Delete(ctx, study.ID))

	remaining, err := forms.ListVisits(ctx, study.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
