package domain

import "time"

// Study is the top-level container for a set of visit forms.
// Richer study metadata (centers, arms, staff) lives in the surrounding
// record-management tooling; the builder only needs the identifier and
// protocol code.
type Study struct {
	ID           string
	ProtocolCode string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Visit is a top-level form grouping within a study (also called "Form").
// Order is a dense zero-based index reassigned on every structural edit.
// Hidden visits stay editable and still count toward completion math;
// hiding is a builder-time display concern only.
type Visit struct {
	ID       string
	Title    string
	Order    int
	Hidden   bool
	Sections []Section
}

// Section is a titled group of layout rows within a visit.
type Section struct {
	ID    string
	Title string
	Order int
	Rows  []Row
}

// MaxRowColumns is the widest layout a row supports.
const MaxRowColumns = 3

// Row is the sole unit of visual layout: 1-3 columns of fields.
// Invariant: len(Fields) <= Columns. Key is a synthetic UI-only identity
// (stable list key); it is never persisted.
type Row struct {
	Key     string
	Columns int
	Fields  []Field
}

// Field is a single typed input. Order is only meaningful on the wire,
// where it encodes row and column as rowIndex + columnIndex/100; inside
// the editor position is given by row membership and index.
type Field struct {
	ID          string
	Type        FieldType
	Name        string
	Label       string
	Required    bool
	Description string
	HelpText    string
	HelpImage   string
	Order       float64
	Settings    FieldSettings
}

// Option is a single choice of a select/radio/checkbox field.
// Value is normalized to upper-snake-case on edit. An option with both
// parts empty is filtered by the renderer but may exist in the editor.
type Option struct {
	Label string
	Value string
}

// IsBlank reports whether the option has neither a label nor a value.
func (o Option) IsBlank() bool {
	return o.Label == "" && o.Value == ""
}

// FieldByID walks the visit tree for a field with the given id.
// Returns the owning section id alongside the field.
func FieldByID(visits []Visit, fieldID string) (*Field, string, bool) {
	for vi := range visits {
		for si := range visits[vi].Sections {
			sec := &visits[vi].Sections[si]
			for ri := range sec.Rows {
				for fi := range sec.Rows[ri].Fields {
					f := &sec.Rows[ri].Fields[fi]
					if f.ID == fieldID {
						return f, sec.ID, true
					}
				}
			}
		}
	}
	return nil, "", false
}

// SectionFields returns the section's fields in display order,
// flattened across rows.
func SectionFields(sec Section) []Field {
	var fields []Field
	for _, row := range sec.Rows {
		fields = append(fields, row.Fields...)
	}
	return fields
}
