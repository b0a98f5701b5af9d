package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/layout"
	"github.com/tbeaumont/crfstudio/internal/testutil"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

func encodeForTest(v domain.Visit) wire.Form {
	return layout.EncodeVisit(v)
}

// asDraft strips the fixture's persisted-looking ids so the visit saves
// through the insert path, the way a freshly built editor tree would.
func asDraft(v domain.Visit) domain.Visit {
	v.ID = domain.NewDraftID()
	for si := range v.Sections {
		v.Sections[si].ID = domain.NewDraftID()
		for ri := range v.Sections[si].Rows {
			for fi := range v.Sections[si].Rows[ri].Fields {
				v.Sections[si].Rows[ri].Fields[fi].ID = domain.NewDraftID()
			}
		}
	}
	return v
}

func setupFormRepo(t *testing.T) (*SQLiteFormRepo, string) {
	t.Helper()
	database := testutil.NewTestDB(t)
	studies := NewSQLiteStudyRepo(database)
	study := testutil.NewTestStudy("FRM-1", "Forms")
	require.NoError(t, studies.Create(context.Background(), study))
	return NewSQLiteFormRepo(database), study.ID
}

func TestFormRepo_SaveAssignsIDsForDrafts(t *testing.T) {
	repo, studyID := setupFormRepo(t)
	ctx := context.Background()

	visit := domain.Visit{
		ID:    domain.NewDraftID(),
		Title: "Baseline",
		Sections: []domain.Section{{
			ID:    domain.NewDraftID(),
			Title: "Vitals",
			Rows: []domain.Row{{
				Columns: 1,
				Fields: []domain.Field{{
					ID:       domain.NewDraftID(),
					Type:     domain.FieldNumber,
					Name:     "PULSE",
					Settings: domain.DefaultSettings(domain.FieldNumber),
				}},
			}},
		}},
	}

	visitID, err := repo.SaveVisit(ctx, studyID, encodeForTest(visit))
	require.NoError(t, err)
	assert.NotEmpty(t, visitID)
	assert.False(t, domain.IsDraftID(visitID))

	forms, err := repo.ListVisits(ctx, studyID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, visitID, *forms[0].ID)
	require.Len(t, forms[0].Sections, 1)
	assert.NotNil(t, forms[0].Sections[0].ID)
	require.Len(t, forms[0].Sections[0].Fields, 1)
	assert.NotNil(t, forms[0].Sections[0].Fields[0].ID)
}

func TestFormRepo_RoundTripPreservesLayout(t *testing.T) {
	repo, studyID := setupFormRepo(t)
	ctx := context.Background()

	visit := asDraft(testutil.NewTestVisit("V",
		testutil.NewTestSection("Grid",
			testutil.NewTestRow(2,
				testutil.NewTestField(domain.FieldText, "LEFT"),
				testutil.NewTestField(domain.FieldText, "RIGHT"),
			),
			testutil.NewTestRow(1,
				testutil.NewTestField(domain.FieldRadio, "CHOICE",
					testutil.WithRequired(),
					testutil.WithOptions(domain.Option{Label: "Yes", Value: "YES"}),
				),
			),
		),
	))

	_, err := repo.SaveVisit(ctx, studyID, encodeForTest(visit))
	require.NoError(t, err)

	forms, err := repo.ListVisits(ctx, studyID)
	require.NoError(t, err)
	require.Len(t, forms, 1)

	decoded := layout.DecodeVisit(forms[0])
	require.Len(t, decoded.Sections, 1)
	rows := decoded.Sections[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].Columns)
	assert.Equal(t, "LEFT", rows[0].Fields[0].Name)
	assert.Equal(t, "RIGHT", rows[0].Fields[1].Name)

	choice := rows[1].Fields[0]
	assert.True(t, choice.Required)
	require.Len(t, choice.Settings.Options, 1)
	assert.Equal(t, "YES", choice.Settings.Options[0].Value)
}

func TestFormRepo_UpdateReplacesChildren(t *testing.T) {
	repo, studyID := setupFormRepo(t)
	ctx := context.Background()

	first := asDraft(testutil.NewTestVisit("V",
		testutil.NewTestSection("Old Section",
			testutil.NewTestRow(1, testutil.NewTestField(domain.FieldText, "OLD")),
		),
	))
	visitID, err := repo.SaveVisit(ctx, studyID, encodeForTest(first))
	require.NoError(t, err)

	second := testutil.NewTestVisit("V renamed",
		testutil.NewTestSection("New Section",
			testutil.NewTestRow(1, testutil.NewTestField(domain.FieldText, "NEW")),
		),
	)
	second.ID = visitID

	sameID, err := repo.SaveVisit(ctx, studyID, encodeForTest(second))
	require.NoError(t, err)
	assert.Equal(t, visitID, sameID)

	forms, err := repo.ListVisits(ctx, studyID)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "V renamed", forms[0].Title)
	require.Len(t, forms[0].Sections, 1)
	assert.Equal(t, "New Section", forms[0].Sections[0].Title)
	require.Len(t, forms[0].Sections[0].Fields, 1)
	assert.Equal(t, "NEW", forms[0].Sections[0].Fields[0].Name)
}

func TestFormRepo_UpdateMissingVisit(t *testing.T) {
	repo, studyID := setupFormRepo(t)

	visit := testutil.NewTestVisit("Ghost")
	_, err := repo.SaveVisit(context.Background(), studyID, encodeForTest(visit))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFormRepo_DeleteVisit(t *testing.T) {
	repo, studyID := setupFormRepo(t)
	ctx := context.Background()

	visit := asDraft(testutil.NewTestVisit("V", testutil.NewTestSection("S")))
	visitID, err := repo.SaveVisit(ctx, studyID, encodeForTest(visit))
	require.NoError(t, err)

	require.NoError(t, repo.DeleteVisit(ctx, visitID))

	forms, err := repo.ListVisits(ctx, studyID)
	require.NoError(t, err)
	assert.Empty(t, forms)
}

func TestFormRepo_ListOrdersVisits(t *testing.T) {
	repo, studyID := setupFormRepo(t)
	ctx := context.Background()

	for i, title := range []string{"Third", "First", "Second"} {
		v := domain.Visit{ID: domain.NewDraftID(), Title: title}
		switch i {
		case 0:
			v.Order = 2
		case 1:
			v.Order = 0
		case 2:
			v.Order = 1
		}
		_, err := repo.SaveVisit(ctx, studyID, encodeForTest(v))
		require.NoError(t, err)
	}

	forms, err := repo.ListVisits(ctx, studyID)
	require.NoError(t, err)
	require.Len(t, forms, 3)
	assert.Equal(t, "First", forms[0].Title)
	assert.Equal(t, "Second", forms[1].Title)
	assert.Equal(t, "Third", forms[2].Title)
}

func TestFormRepo_CorruptSettingsRepairedOnLoad(t *testing.T) {
	database := testutil.NewTestDB(t)
	studies := NewSQLiteStudyRepo(database)
	repo := NewSQLiteFormRepo(database)
	ctx := context.Background()

	study := testutil.NewTestStudy("COR-1", "Corrupt")
	require.NoError(t, studies.Create(ctx, study))

	visit := asDraft(testutil.NewTestVisit("V",
		testutil.NewTestSection("S",
			testutil.NewTestRow(1, testutil.NewTestField(domain.FieldText, "F")),
		),
	))
	_, err := repo.SaveVisit(ctx, study.ID, encodeForTest(visit))
	require.NoError(t, err)

	_, err = database.Exec(`UPDATE fields SET settings = 'not json'`)
	require.NoError(t, err)

	forms, err := repo.ListVisits(ctx, study.ID)
	require.NoError(t, err, "corrupt settings must not fail the load")
	f := forms[0].Sections[0].Fields[0]
	assert.Nil(t, f.Settings.TextType)

	decoded := layout.DecodeField(f)
	assert.Equal(t, domain.TextSingleLine, decoded.Settings.TextType,
		"decoder falls back to type defaults")
}
