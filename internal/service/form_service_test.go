package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/repository"
	"github.com/tbeaumont/crfstudio/internal/save"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func setupServices(t *testing.T) (StudyService, FormService) {
	t.Helper()
	database := testutil.NewTestDB(t)
	studies := NewStudyService(repository.NewSQLiteStudyRepo(database))
	forms := NewFormService(repository.NewSQLiteFormRepo(database), testutil.NewTestUoW(database))
	return studies, forms
}

func draftVisit(title string, fieldNames ...string) domain.Visit {
	fields := make([]domain.Field, len(fieldNames))
	for i, n := range fieldNames {
		f := testutil.NewTestField(domain.FieldText, n)
		f.ID = domain.NewDraftID()
		fields[i] = f
	}
	rows := make([]domain.Row, len(fields))
	for i, f := range fields {
		rows[i] = testutil.NewTestRow(1, f)
	}
	sec := testutil.NewTestSection("S", rows...)
	sec.ID = domain.NewDraftID()
	v := testutil.NewTestVisit(title, sec)
	v.ID = domain.NewDraftID()
	return v
}

func TestFormService_SaveAndLoadRoundTrip(t *testing.T) {
	studies, forms := setupServices(t)
	ctx := context.Background()

	study, err := studies.Create(ctx, "rnd-01", "Round Trip")
	require.NoError(t, err)
	assert.Equal(t, "RND-01", study.ProtocolCode, "protocol codes are uppercased")

	visits := []domain.Visit{
		draftVisit("Screening", "consent given"),
		draftVisit("Baseline", "weight", "height"),
	}

	require.NoError(t, forms.SaveStudy(ctx, study.ID, visits, nil))

	loaded, err := forms.LoadStudy(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	assert.Equal(t, "Screening", loaded[0].Title)
	assert.False(t, domain.IsDraftID(loaded[0].ID), "store assigned real ids")

	baseline := loaded[1]
	require.Len(t, baseline.Sections, 1)
	names := []string{}
	for _, row := range baseline.Sections[0].Rows {
		for _, f := range row.Fields {
			names = append(names, f.Name)
		}
	}
	assert.Equal(t, []string{"WEIGHT", "HEIGHT"}, names,
		"names come back normalized after a save/load cycle")
}

func TestFormService_DuplicateNameRollsBackWholeSave(t *testing.T) {
	studies, forms := setupServices(t)
	ctx := context.Background()

	study, err := studies.Create(ctx, "DUP-01", "Duplicates")
	require.NoError(t, err)

	visits := []domain.Visit{
		draftVisit("Clean", "ALPHA"),
		draftVisit("Broken", "X", "X"),
	}

	err = forms.SaveStudy(ctx, study.ID, visits, nil)
	var dup *save.DuplicateNameError
	require.ErrorAs(t, err, &dup)

	loaded, err := forms.LoadStudy(ctx, study.ID)
	require.NoError(t, err)
	assert.Empty(t, loaded, "nothing persisted when any visit fails validation")
}

func TestFormService_SaveRemovesDeletedVisits(t *testing.T) {
	studies, forms := setupServices(t)
	ctx := context.Background()

	study, err := studies.Create(ctx, "REM-01", "Removals")
	require.NoError(t, err)

	require.NoError(t, forms.SaveStudy(ctx, study.ID, []domain.Visit{
		draftVisit("Keep", "A"),
		draftVisit("Drop", "B"),
	}, nil))

	loaded, err := forms.LoadStudy(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	var keep domain.Visit
	var dropID string
	for _, v := range loaded {
		if v.Title == "Keep" {
			keep = v
		} else {
			dropID = v.ID
		}
	}

	require.NoError(t, forms.SaveStudy(ctx, study.ID, []domain.Visit{keep}, []string{dropID}))

	final, err := forms.LoadStudy(ctx, study.ID)
	require.NoError(t, err)
	require.Len(t, final, 1)
	assert.Equal(t, "Keep", final[0].Title)
}

func TestStudyService_ValidatesProtocolCode(t *testing.T) {
	studies, _ := setupServices(t)
	ctx := context.Background()

	_, err := studies.Create(ctx, "x", "Too short")
	assert.Error(t, err)

	_, err = studies.Create(ctx, "1BAD", "Starts with digit")
	assert.Error(t, err)

	_, err = studies.Create(ctx, "GOOD-1", "")
	assert.Error(t, err, "name is required")

	study, err := studies.Create(ctx, " onc-2024 ", "  Trimmed  ")
	require.NoError(t, err)
	assert.Equal(t, "ONC-2024", study.ProtocolCode)
	assert.Equal(t, "Trimmed", study.Name)
}

func TestStudyService_GetByProtocolIsCaseInsensitive(t *testing.T) {
	studies, _ := setupServices(t)
	ctx := context.Background()

	created, err := studies.Create(ctx, "CASE-1", "Case Study")
	require.NoError(t, err)

	got, err := studies.GetByProtocol(ctx, "case-1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
