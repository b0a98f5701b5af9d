package testutil

import (
	"github.com/google/uuid"
	"github.com/tbeaumont/crfstudio/internal/domain"
)

// FieldOption customizes a fixture field.
type FieldOption func(*domain.Field)

func WithRequired() FieldOption {
	return func(f *domain.Field) {
		f.Required = true
	}
}

func WithLabel(label string) FieldOption {
	return func(f *domain.Field) {
		f.Label = label
	}
}

func WithOptions(opts ...domain.Option) FieldOption {
	return func(f *domain.Field) {
		f.Settings.Options = opts
	}
}

func WithSettings(mutate func(*domain.FieldSettings)) FieldOption {
	return func(f *domain.Field) {
		mutate(&f.Settings)
	}
}

// NewTestField builds a persisted-looking field with type defaults.
func NewTestField(ftype domain.FieldType, name string, opts ...FieldOption) domain.Field {
	f := domain.Field{
		ID:       uuid.New().String(),
		Type:     ftype,
		Name:     name,
		Label:    name,
		Settings: domain.DefaultSettings(ftype),
	}
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// NewTestRow wraps fields into a row sized to hold them.
func NewTestRow(columns int, fields ...domain.Field) domain.Row {
	if columns < len(fields) {
		columns = len(fields)
	}
	return domain.Row{
		Key:     uuid.New().String(),
		Columns: columns,
		Fields:  fields,
	}
}

// NewTestSection builds a section from rows.
func NewTestSection(title string, rows ...domain.Row) domain.Section {
	return domain.Section{
		ID:    uuid.New().String(),
		Title: title,
		Rows:  rows,
	}
}

// NewTestVisit builds a visit from sections.
func NewTestVisit(title string, sections ...domain.Section) domain.Visit {
	return domain.Visit{
		ID:       uuid.New().String(),
		Title:    title,
		Sections: sections,
	}
}

// NewTestStudy builds a study record with a generated id.
func NewTestStudy(protocolCode, name string) *domain.Study {
	return &domain.Study{
		ID:           uuid.New().String(),
		ProtocolCode: protocolCode,
		Name:         name,
	}
}
