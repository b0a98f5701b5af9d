package save

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/testutil"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// fakeStore records calls; it fails on demand to test error mapping.
type fakeStore struct {
	saved    []wire.Form
	deleted  []string
	saveErr  error
	assignID string
}

func (s *fakeStore) SaveVisit(ctx context.Context, studyID string, form wire.Form) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.saved = append(s.saved, form)
	if form.ID != nil {
		return *form.ID, nil
	}
	return s.assignID, nil
}

func (s *fakeStore) DeleteVisit(ctx context.Context, visitID string) error {
	s.deleted = append(s.deleted, visitID)
	return nil
}

func visitWithFields(title string, names ...string) domain.Visit {
	fields := make([]domain.Field, len(names))
	for i, n := range names {
		fields[i] = testutil.NewTestField(domain.FieldText, n)
	}
	rows := make([]domain.Row, len(fields))
	for i, f := range fields {
		rows[i] = testutil.NewTestRow(1, f)
	}
	return testutil.NewTestVisit(title, testutil.NewTestSection("S", rows...))
}

func TestStudy_SavesEveryVisit(t *testing.T) {
	store := &fakeStore{}
	visits := []domain.Visit{
		visitWithFields("V1", "alpha"),
		visitWithFields("V2", "beta"),
	}

	err := Study(context.Background(), store, "study-1", visits, nil)
	require.NoError(t, err)
	assert.Len(t, store.saved, 2)
}

func TestStudy_DuplicateNameBlocksAllStoreCalls(t *testing.T) {
	store := &fakeStore{}
	visits := []domain.Visit{
		visitWithFields("Clean", "A"),
		visitWithFields("Broken", "DUP", "DUP"),
	}

	err := Study(context.Background(), store, "study-1", visits, []string{"old-visit"})

	var dup *DuplicateNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "DUP", dup.Name)
	assert.Empty(t, store.saved, "no visit persisted, not even the clean one")
	assert.Empty(t, store.deleted, "no deletion either")
}

func TestStudy_DuplicateCheckIsPerVisit(t *testing.T) {
	store := &fakeStore{}
	// The same name in two different visits is fine.
	visits := []domain.Visit{
		visitWithFields("V1", "WEIGHT"),
		visitWithFields("V2", "WEIGHT"),
	}

	require.NoError(t, Study(context.Background(), store, "s", visits, nil))
	assert.Len(t, store.saved, 2)
}

func TestStudy_DeletesRemovedPersistedVisits(t *testing.T) {
	store := &fakeStore{}

	err := Study(context.Background(), store, "s", nil,
		[]string{"persisted-1", domain.NewDraftID(), "persisted-2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"persisted-1", "persisted-2"}, store.deleted,
		"draft ids are never sent for deletion")
}

func TestEncode_NormalizesNamesOnPayloadOnly(t *testing.T) {
	visit := visitWithFields("V", "systolic bp")

	w := Encode(visit)
	require.Len(t, w.Sections, 1)
	require.Len(t, w.Sections[0].Fields, 1)
	assert.Equal(t, "SYSTOLIC_BP", w.Sections[0].Fields[0].Name)

	// The editor tree keeps the name as typed.
	assert.Equal(t, "systolic bp", visit.Sections[0].Rows[0].Fields[0].Name)
}

func TestEncode_DraftIDsBecomeNull(t *testing.T) {
	visit := domain.Visit{
		ID:    domain.NewDraftID(),
		Title: "New",
		Sections: []domain.Section{{
			ID:    domain.NewDraftID(),
			Title: "S",
			Rows: []domain.Row{{
				Columns: 1,
				Fields:  []domain.Field{{ID: "", Type: domain.FieldText, Name: "F", Settings: domain.DefaultSettings(domain.FieldText)}},
			}},
		}},
	}

	w := Encode(visit)
	assert.Nil(t, w.ID)
	assert.Nil(t, w.Sections[0].ID)
	assert.Nil(t, w.Sections[0].Fields[0].ID)
}

func TestStudy_StoreFailureWrapsVisitTitle(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("disk full")}
	visits := []domain.Visit{visitWithFields("Baseline", "A")}

	err := Study(context.Background(), store, "s", visits, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Baseline")
}

func TestUserMessage(t *testing.T) {
	dup := &DuplicateNameError{Name: "WEIGHT"}
	assert.Contains(t, UserMessage(dup), "WEIGHT")

	fieldErr := wire.FieldError{Field: "DOSE", Message: "out of range"}
	wrapped := errors.Join(errors.New("saving visit"), fieldErr)
	assert.Contains(t, UserMessage(wrapped), "DOSE")

	generic := errors.New("connection refused")
	msg := UserMessage(generic)
	assert.Contains(t, msg, "your edits are unchanged")
	assert.Contains(t, msg, "connection refused")
}
