package domain

// Length ceilings for textual fields. Switching a field's TextType clamps
// an existing MaxLength down to the new ceiling; it never restores a
// previously larger value.
const (
	MaxTextLength     = 255
	MaxTextareaLength = 2000
)

// Decimal place bounds for number fields.
const (
	MinDecimalPlaces = 1
	MaxDecimalPlaces = 10
)

// FieldSettings is the canonical per-field configuration record.
// Historically this data was duplicated between root-level keys and a
// nested settings object so two reader generations stayed compatible;
// internally there is exactly one copy and the duplication is produced
// only at the wire boundary (see the layout codec).
type FieldSettings struct {
	// text / textarea
	TextType  TextType
	MinLength int
	MaxLength int
	Sensitive bool

	// number
	AllowDecimals bool
	DecimalPlaces int
	Unit          string
	// Min/max bounds are strings so "unset" stays distinguishable from zero.
	MinValue string
	MaxValue string

	// date / time
	DateFormat       DateFormat
	DisablePastDates bool

	// select / radio / checkbox
	Options []Option
	Layout  OptionLayout

	// Row column count, 1-3. The wire format has no row entity, so every
	// field of a row carries its row's column count.
	RowLayoutCols int
}

// DefaultSettings returns the hard-coded defaults for a field type.
func DefaultSettings(t FieldType) FieldSettings {
	s := FieldSettings{
		RowLayoutCols: 1,
		DecimalPlaces: 2,
		Layout:        LayoutVertical,
		DateFormat:    DateFormatDate,
	}
	switch t {
	case FieldText:
		s.TextType = TextSingleLine
		s.MaxLength = MaxTextLength
	case FieldTextarea:
		s.TextType = TextMultiLine
		s.MaxLength = MaxTextareaLength
	case FieldTime:
		s.DateFormat = DateFormatTime
	}
	return s
}

// TextLengthCeiling returns the hard MaxLength ceiling for a text type.
func TextLengthCeiling(t TextType) int {
	if t == TextMultiLine {
		return MaxTextareaLength
	}
	return MaxTextLength
}

// ClampMaxLength applies the ceiling for the settings' current TextType.
// A zero MaxLength means "use the ceiling".
func (s *FieldSettings) ClampMaxLength() {
	ceiling := TextLengthCeiling(s.TextType)
	if s.MaxLength == 0 || s.MaxLength > ceiling {
		s.MaxLength = ceiling
	}
}

// ClampDecimalPlaces keeps DecimalPlaces within the supported range.
func (s *FieldSettings) ClampDecimalPlaces() {
	if s.DecimalPlaces < MinDecimalPlaces {
		s.DecimalPlaces = MinDecimalPlaces
	}
	if s.DecimalPlaces > MaxDecimalPlaces {
		s.DecimalPlaces = MaxDecimalPlaces
	}
}

// Clone returns a deep copy of the settings (options included), used when
// duplicating a field so the clone edits independently.
func (s FieldSettings) Clone() FieldSettings {
	out := s
	if s.Options != nil {
		out.Options = make([]Option, len(s.Options))
		copy(out.Options, s.Options)
	}
	return out
}
