package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/testutil"
)

func TestApplySettings_ReplacesWholesale(t *testing.T) {
	f := testutil.NewTestField(domain.FieldNumber, "DOSE",
		testutil.WithSettings(func(s *domain.FieldSettings) {
			s.AllowDecimals = true
			s.DecimalPlaces = 3
			s.Unit = "mg"
		}),
	)
	visits := []domain.Visit{
		testutil.NewTestVisit("V", testutil.NewTestSection("S", testutil.NewTestRow(1, f))),
	}

	// Panel edits one key; untouched keys ride along in the snapshot.
	snap := TakeSnapshot(f)
	snap.Settings.Unit = "ml"
	snap.Required = true

	out := ApplySettings(visits, 0, 0, 0, 0, snap)
	got := out[0].Sections[0].Rows[0].Fields[0]

	assert.Equal(t, "ml", got.Settings.Unit)
	assert.True(t, got.Settings.AllowDecimals, "untouched keys preserved")
	assert.Equal(t, 3, got.Settings.DecimalPlaces)
	assert.True(t, got.Required)
}

func TestTakeSnapshot_IsIndependentCopy(t *testing.T) {
	f := testutil.NewTestField(domain.FieldRadio, "R",
		testutil.WithOptions(domain.Option{Label: "Yes", Value: "YES"}))

	snap := TakeSnapshot(f)
	snap.Settings.Options[0].Value = "EDITED"

	assert.Equal(t, "YES", f.Settings.Options[0].Value)
}

func TestSetTextType_ClampsOneWay(t *testing.T) {
	f := testutil.NewTestField(domain.FieldTextarea, "NOTES",
		testutil.WithSettings(func(s *domain.FieldSettings) {
			s.MaxLength = 1800
		}),
	)
	snap := TakeSnapshot(f)

	snap.SetTextType(domain.TextSingleLine)
	assert.Equal(t, domain.MaxTextLength, snap.Settings.MaxLength)

	snap.SetTextType(domain.TextMultiLine)
	assert.Equal(t, domain.MaxTextLength, snap.Settings.MaxLength,
		"previous larger limit is not restored")
}

func TestSetAllowDecimals_KeepsPlacesAndBounds(t *testing.T) {
	f := testutil.NewTestField(domain.FieldNumber, "N",
		testutil.WithSettings(func(s *domain.FieldSettings) {
			s.DecimalPlaces = 4
			s.MinValue = "0"
			s.MaxValue = "10"
		}),
	)
	snap := TakeSnapshot(f)

	snap.SetAllowDecimals(true)
	assert.Equal(t, 4, snap.Settings.DecimalPlaces)
	assert.Equal(t, "0", snap.Settings.MinValue)
	assert.Equal(t, "10", snap.Settings.MaxValue)

	snap.SetAllowDecimals(false)
	assert.Equal(t, 4, snap.Settings.DecimalPlaces, "places survive toggling off")
}

func TestNormalizeOptionValues(t *testing.T) {
	f := testutil.NewTestField(domain.FieldSelect, "SEL",
		testutil.WithOptions(
			domain.Option{Label: "Mild pain", Value: "mild pain"},
			domain.Option{Label: "No value"},
			domain.Option{Label: "Severe", Value: "Severe-Case"},
		),
	)
	snap := TakeSnapshot(f)
	snap.NormalizeOptionValues()

	require.Len(t, snap.Settings.Options, 3)
	assert.Equal(t, "MILD_PAIN", snap.Settings.Options[0].Value)
	assert.Equal(t, "", snap.Settings.Options[1].Value)
	assert.Equal(t, "SEVERE_CASE", snap.Settings.Options[2].Value)
}

func TestEditFieldMeta(t *testing.T) {
	f := testutil.NewTestField(domain.FieldText, "OLD")
	visits := []domain.Visit{
		testutil.NewTestVisit("V", testutil.NewTestSection("S", testutil.NewTestRow(1, f))),
	}

	out := EditFieldMeta(visits, 0, 0, 0, 0, "new name", "New Label")
	got := out[0].Sections[0].Rows[0].Fields[0]
	assert.Equal(t, "new name", got.Name, "name normalization happens at save, not on edit")
	assert.Equal(t, "New Label", got.Label)
}
