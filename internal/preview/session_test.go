package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func sessionVisits() []domain.Visit {
	return []domain.Visit{
		testutil.NewTestVisit("V1",
			testutil.NewTestSection("V1S1"),
			testutil.NewTestSection("V1S2"),
		),
		testutil.NewTestVisit("V2",
			testutil.NewTestSection("V2S1"),
		),
	}
}

func TestNewSession_StartsOnFirstSection(t *testing.T) {
	visits := sessionVisits()
	s := NewSession(visits)

	_, sec, ok := s.Section()
	require.True(t, ok)
	assert.Equal(t, "V1S1", sec.Title)
}

func TestNewSession_EmptyStudy(t *testing.T) {
	s := NewSession(nil)
	_, _, ok := s.Section()
	assert.False(t, ok)
	assert.False(t, s.Next())
}

func TestSession_NextCrossesVisitBoundary(t *testing.T) {
	s := NewSession(sessionVisits())

	require.True(t, s.Next())
	_, sec, _ := s.Section()
	assert.Equal(t, "V1S2", sec.Title)

	require.True(t, s.Next())
	visit, sec, _ := s.Section()
	assert.Equal(t, "V2", visit.Title)
	assert.Equal(t, "V2S1", sec.Title)

	assert.False(t, s.Next(), "no section after the last")
}

func TestSession_PreviousStopsAtStart(t *testing.T) {
	s := NewSession(sessionVisits())
	assert.False(t, s.Previous())

	s.Next()
	require.True(t, s.Previous())
	_, sec, _ := s.Section()
	assert.Equal(t, "V1S1", sec.Title)
}

func TestSession_JumpTo(t *testing.T) {
	visits := sessionVisits()
	s := NewSession(visits)

	target := visits[1].Sections[0].ID
	require.True(t, s.JumpTo(target))
	assert.Equal(t, target, s.SectionID())

	assert.False(t, s.JumpTo("nope"), "unknown section leaves position unchanged")
	assert.Equal(t, target, s.SectionID())
}

func TestSession_JumpToField(t *testing.T) {
	f := testutil.NewTestField(domain.FieldText, "TARGET")
	visits := []domain.Visit{
		testutil.NewTestVisit("V1", testutil.NewTestSection("S1")),
		testutil.NewTestVisit("V2",
			testutil.NewTestSection("S2", testutil.NewTestRow(1, f)),
		),
	}
	s := NewSession(visits)

	fieldID, ok := s.JumpToField(f.ID)
	require.True(t, ok)
	assert.Equal(t, f.ID, fieldID, "field id returned for the view to scroll to")
	_, sec, _ := s.Section()
	assert.Equal(t, "S2", sec.Title)

	_, ok = s.JumpToField("missing")
	assert.False(t, ok)
}
