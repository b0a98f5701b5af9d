// Package wire defines the flat payload exchanged with the persistence
// layer. The same shapes serve both directions: the save request carries
// null ids for entities the store has not assigned yet, and the load
// response mirrors the save shape with ids filled in.
//
// Field settings appear twice by design: once under the nested settings
// object and once as root-level keys (is_required, description, options).
// Two reader generations consume different locations; both copies are
// produced at this boundary from the single canonical in-memory record.
package wire

// Form is one visit's flat representation. Order and IsHidden position
// the visit within its study.
type Form struct {
	ID       *string   `json:"id"`
	Title    string    `json:"title"`
	Order    int       `json:"order"`
	IsHidden bool      `json:"is_hidden"`
	Sections []Section `json:"sections"`
}

// Section groups an ordered flat field list. The row structure of the
// editor grid is recovered from each field's order number and
// row_layout_cols setting; no row entity exists on the wire.
type Section struct {
	ID     *string `json:"id"`
	Title  string  `json:"title"`
	Order  int     `json:"order"`
	Fields []Field `json:"fields"`
}

// Field is the wire form of a single input. Order encodes the grid
// position as rowNumber + columnNumber/100.
type Field struct {
	ID         *string   `json:"id"`
	Name       string    `json:"name"`
	Label      string    `json:"label"`
	FieldType  string    `json:"field_type"`
	Order      float64   `json:"order"`
	IsRequired *FlexBool `json:"is_required"`

	// Root-level mirrors of nested settings keys, kept for legacy readers.
	Description *string  `json:"description,omitempty"`
	Options     []Option `json:"options,omitempty"`

	HelpText  string `json:"help_text,omitempty"`
	HelpImage string `json:"help_image,omitempty"`

	Settings FieldSettings `json:"settings"`
}

// Option is a selection choice. Value may be empty; answer matching then
// falls back to a deterministic per-index identity in the renderer.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// FieldSettings is the nested settings object. All keys are pointers so
// an absent key is distinguishable from a zero value when loading;
// row_layout_cols and options are always emitted, even at their defaults.
type FieldSettings struct {
	TextType  *string `json:"text_type,omitempty"`
	MinLength *int    `json:"min_length,omitempty"`
	MaxLength *int    `json:"max_length,omitempty"`
	Sensitive *bool   `json:"sensitive,omitempty"`

	AllowDecimals *bool   `json:"allow_decimals,omitempty"`
	DecimalPlaces *int    `json:"decimal_places,omitempty"`
	Unit          *string `json:"unit,omitempty"`
	MinValue      *string `json:"min_value,omitempty"`
	MaxValue      *string `json:"max_value,omitempty"`

	DateFormat       *string `json:"date_format,omitempty"`
	DisablePastDates *bool   `json:"disable_past_dates,omitempty"`

	Layout        *string  `json:"layout,omitempty"`
	RowLayoutCols *int     `json:"row_layout_cols"`
	Options       []Option `json:"options"`

	// Mirrors of the root-level field keys.
	Required    *bool   `json:"required,omitempty"`
	Description *string `json:"description,omitempty"`
}

// FieldError is a field-level validation failure reported by the store.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}
