package editor

import "github.com/tbeaumont/crfstudio/internal/domain"

// Snapshot is the update a settings panel emits: the FULL settings
// record (untouched keys carried forward alongside the changed one) plus
// the field attributes mirrored outside the settings object. The host
// replaces the field's settings wholesale; merging a single changed key
// would let the mirrored copies drift apart.
type Snapshot struct {
	Settings    domain.FieldSettings
	Required    bool
	Description string
}

// TakeSnapshot seeds a panel's working copy from the current field.
func TakeSnapshot(f domain.Field) Snapshot {
	return Snapshot{
		Settings:    f.Settings.Clone(),
		Required:    f.Required,
		Description: f.Description,
	}
}

// ApplySettings replaces the addressed field's settings and mirrored
// attributes with the snapshot.
func ApplySettings(visits []domain.Visit, vi, si, ri, fi int, snap Snapshot) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	row := &out[vi].Sections[si].Rows[ri]
	if fi < 0 || fi >= len(row.Fields) {
		return visits
	}
	f := &row.Fields[fi]
	f.Settings = snap.Settings.Clone()
	f.Required = snap.Required
	f.Description = snap.Description
	return out
}

// EditFieldMeta updates the field's name and label.
func EditFieldMeta(visits []domain.Visit, vi, si, ri, fi int, name, label string) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	row := &out[vi].Sections[si].Rows[ri]
	if fi < 0 || fi >= len(row.Fields) {
		return visits
	}
	row.Fields[fi].Name = name
	row.Fields[fi].Label = label
	return out
}

// SetTextType switches a textual field between single and multi line,
// clamping MaxLength down to the new ceiling. A previously larger limit
// is not restored on switching back.
func (s *Snapshot) SetTextType(t domain.TextType) {
	s.Settings.TextType = t
	s.Settings.ClampMaxLength()
}

// SetAllowDecimals toggles decimal entry, keeping DecimalPlaces at its
// existing value (or the default) and leaving bounds and unit untouched.
func (s *Snapshot) SetAllowDecimals(allow bool) {
	s.Settings.AllowDecimals = allow
	s.Settings.ClampDecimalPlaces()
}

// NormalizeOptionValues rewrites each option value to upper-snake-case,
// the normalization applied on edit. Blank options are kept: the editor
// tolerates them, only the renderer filters.
func (s *Snapshot) NormalizeOptionValues() {
	for i := range s.Settings.Options {
		s.Settings.Options[i].Value = domain.UpperSnake(s.Settings.Options[i].Value)
	}
}
