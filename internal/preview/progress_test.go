package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func sectionWithFields(names ...string) domain.Section {
	fields := make([]domain.Field, len(names))
	for i, n := range names {
		fields[i] = testutil.NewTestField(domain.FieldText, n)
	}
	rows := make([]domain.Row, len(fields))
	for i, f := range fields {
		rows[i] = testutil.NewTestRow(1, f)
	}
	return testutil.NewTestSection("S", rows...)
}

func answerFields(sec domain.Section, n int) Answers {
	a := Answers{}
	for i, f := range domain.SectionFields(sec) {
		if i >= n {
			break
		}
		a.SetText(f.ID, "answered")
	}
	return a
}

func TestSectionProgress_Rounding(t *testing.T) {
	sec := sectionWithFields("A", "B", "C")

	assert.Equal(t, 0, SectionProgress(sec, Answers{}))
	assert.Equal(t, 33, SectionProgress(sec, answerFields(sec, 1)))
	assert.Equal(t, 67, SectionProgress(sec, answerFields(sec, 2)))
	assert.Equal(t, 100, SectionProgress(sec, answerFields(sec, 3)))
}

func TestSectionProgress_EmptySectionIsZero(t *testing.T) {
	assert.Equal(t, 0, SectionProgress(testutil.NewTestSection("Empty"), Answers{}))
}

func TestVisitProgress_MeanOfSections(t *testing.T) {
	full := sectionWithFields("A")
	empty := sectionWithFields("B")
	v := testutil.NewTestVisit("V", full, empty)

	a := answerFields(full, 1)
	// 100% and 0% average to 50.
	assert.Equal(t, 50, VisitProgress(v, a))
}

func TestVisitProgress_MeanOfMeansNotOfFields(t *testing.T) {
	// One field answered of one vs zero of three: section means 100 and 0
	// average to 50, even though only 1 of 4 fields holds an answer.
	small := sectionWithFields("A")
	large := sectionWithFields("B", "C", "D")
	v := testutil.NewTestVisit("V", small, large)

	a := answerFields(small, 1)
	assert.Equal(t, 50, VisitProgress(v, a))
}

func TestVisitProgress_NoSectionsIsZero(t *testing.T) {
	assert.Equal(t, 0, VisitProgress(testutil.NewTestVisit("V"), Answers{}))
}

func TestGlobalProgress_IncludesHiddenVisits(t *testing.T) {
	visible := testutil.NewTestVisit("Visible", sectionWithFields("A"))
	hidden := testutil.NewTestVisit("Hidden", sectionWithFields("B"))
	hidden.Hidden = true

	a := answerFields(visible.Sections[0], 1)
	assert.Equal(t, 50, GlobalProgress([]domain.Visit{visible, hidden}, a),
		"hidden visits still count toward completion")
}

func TestGlobalProgress_EmptyStudyIsZero(t *testing.T) {
	assert.Equal(t, 0, GlobalProgress(nil, Answers{}))
}
