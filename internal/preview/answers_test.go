package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func TestAnswered_TextRequiresNonEmpty(t *testing.T) {
	f := testutil.NewTestField(domain.FieldText, "T")
	a := Answers{}

	assert.False(t, a.Answered(f))

	a.SetText(f.ID, "   ")
	assert.False(t, a.Answered(f), "whitespace-only does not count")

	a.SetText(f.ID, "hello")
	assert.True(t, a.Answered(f))
}

func TestAnswered_SelectionCountsOnKeyPresence(t *testing.T) {
	f := testutil.NewTestField(domain.FieldCheckbox, "CB",
		testutil.WithOptions(domain.Option{Label: "A", Value: "A"}))
	a := Answers{}

	assert.False(t, a.Answered(f))

	a.Toggle(f.ID, "A")
	assert.True(t, a.Answered(f))

	// Removing the last selection keeps the key: still answered.
	a.Toggle(f.ID, "A")
	assert.True(t, a.Answered(f), "touched selection counts even with nothing picked")
}

func TestAnswered_PartialDateAnyComponent(t *testing.T) {
	f := testutil.NewTestField(domain.FieldDate, "D",
		testutil.WithSettings(func(s *domain.FieldSettings) {
			s.DateFormat = domain.DateFormatPartial
		}),
	)
	a := Answers{}

	a.SetPartial(f.ID, PartialDate{})
	assert.False(t, a.Answered(f))

	a.SetPartial(f.ID, PartialDate{Month: "06"})
	assert.True(t, a.Answered(f), "a single component answers the field")
}

func TestToggle_MultiSelectAccumulates(t *testing.T) {
	a := Answers{}
	a.Toggle("f", "A")
	a.Toggle("f", "B")

	assert.True(t, a.Checked("f", "A"))
	assert.True(t, a.Checked("f", "B"))

	a.Toggle("f", "A")
	assert.False(t, a.Checked("f", "A"))
	assert.True(t, a.Checked("f", "B"))
}

func TestSelect_SingleChoiceReplaces(t *testing.T) {
	a := Answers{}
	a.Select("f", "FIRST")
	a.Select("f", "SECOND")

	assert.False(t, a.Checked("f", "FIRST"))
	assert.True(t, a.Checked("f", "SECOND"))
}

func TestPartialDate_Empty(t *testing.T) {
	assert.True(t, PartialDate{}.Empty())
	assert.False(t, PartialDate{Day: "15"}.Empty())
}
