// Package layout implements the bidirectional transform between the
// persisted flat field list and the editor's row/column grid.
//
// On the wire a field's order number encodes its grid position:
// the integer part groups fields into rows, the fractional part orders
// them left to right (order = rowNumber + columnNumber/100). The row's
// column count travels as the row_layout_cols setting stamped onto every
// field of the row, because the wire format has no row entity.
package layout

import (
	"fmt"
	"math"
	"sort"

	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// DecodeVisit turns a loaded wire form into the editor tree.
func DecodeVisit(w wire.Form) domain.Visit {
	v := domain.Visit{
		Title:  w.Title,
		Order:  w.Order,
		Hidden: w.IsHidden,
	}
	if w.ID != nil {
		v.ID = *w.ID
	}
	secs := make([]wire.Section, len(w.Sections))
	copy(secs, w.Sections)
	sort.SliceStable(secs, func(i, j int) bool { return secs[i].Order < secs[j].Order })
	for i, ws := range secs {
		sec := domain.Section{Title: ws.Title, Order: i}
		if ws.ID != nil {
			sec.ID = *ws.ID
		}
		sec.Rows = DecodeRows(sec.ID, ws.Fields)
		v.Sections = append(v.Sections, sec)
	}
	return v
}

// DecodeRows groups a section's flat fields into layout rows.
//
// Fields sharing the integer part of their order number form one row,
// ordered by the fractional part. The row's column count is read from the
// first field's row_layout_cols; when fields of one row disagree (a
// corrupt state) the first field's value wins silently. A row holding
// more fields than three is split rather than rejected: the editor must
// never trap the user in an unloadable form.
func DecodeRows(sectionID string, fields []wire.Field) []domain.Row {
	if len(fields) == 0 {
		return nil
	}

	sorted := make([]wire.Field, len(fields))
	copy(sorted, fields)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	var groups [][]wire.Field
	byRow := make(map[int]int)
	for _, f := range sorted {
		rowKey := int(math.Floor(f.Order))
		idx, ok := byRow[rowKey]
		if !ok {
			idx = len(groups)
			byRow[rowKey] = idx
			groups = append(groups, nil)
		}
		groups[idx] = append(groups[idx], f)
	}

	var rows []domain.Row
	for _, group := range groups {
		cols := rowColumns(group)
		for start := 0; start < len(group); start += cols {
			end := start + cols
			if end > len(group) {
				end = len(group)
			}
			row := domain.Row{
				Key:     fmt.Sprintf("%s-row-%d", sectionID, len(rows)),
				Columns: cols,
			}
			for _, wf := range group[start:end] {
				row.Fields = append(row.Fields, DecodeField(wf))
			}
			rows = append(rows, row)
		}
	}
	return rows
}

// rowColumns resolves a group's column count from its first field,
// defaulting to 1 and growing to fit overloaded rows up to the maximum.
func rowColumns(group []wire.Field) int {
	cols := 1
	if len(group) > 0 && group[0].Settings.RowLayoutCols != nil {
		cols = *group[0].Settings.RowLayoutCols
	}
	if cols < 1 {
		cols = 1
	}
	if cols < len(group) {
		cols = len(group)
	}
	if cols > domain.MaxRowColumns {
		cols = domain.MaxRowColumns
	}
	return cols
}

// DecodeField maps a wire field onto the canonical in-memory record.
// Each setting is read with priority: root key, then nested settings key,
// then the type default.
func DecodeField(wf wire.Field) domain.Field {
	ftype := domain.FieldType(wf.FieldType)
	def := domain.DefaultSettings(ftype)
	ws := wf.Settings

	required := domain.BoolFromPtrWithDefault(false, ws.Required)
	if wf.IsRequired != nil {
		required = bool(*wf.IsRequired)
	}

	f := domain.Field{
		Name:        wf.Name,
		Label:       wf.Label,
		Type:        ftype,
		Required:    required,
		Description: domain.StrFromPtrWithDefault("", wf.Description, ws.Description),
		HelpText:    wf.HelpText,
		HelpImage:   wf.HelpImage,
		Order:       wf.Order,
	}
	if wf.ID != nil {
		f.ID = *wf.ID
	}

	s := domain.FieldSettings{
		TextType:         domain.TextType(domain.StrFromPtrWithDefault(string(def.TextType), ws.TextType)),
		MinLength:        domain.IntFromPtrWithDefault(def.MinLength, ws.MinLength),
		MaxLength:        domain.IntFromPtrWithDefault(def.MaxLength, ws.MaxLength),
		Sensitive:        domain.BoolFromPtrWithDefault(def.Sensitive, ws.Sensitive),
		AllowDecimals:    domain.BoolFromPtrWithDefault(def.AllowDecimals, ws.AllowDecimals),
		DecimalPlaces:    domain.IntFromPtrWithDefault(def.DecimalPlaces, ws.DecimalPlaces),
		Unit:             domain.StrFromPtrWithDefault(def.Unit, ws.Unit),
		MinValue:         domain.StrFromPtrWithDefault(def.MinValue, ws.MinValue),
		MaxValue:         domain.StrFromPtrWithDefault(def.MaxValue, ws.MaxValue),
		DateFormat:       domain.DateFormat(domain.StrFromPtrWithDefault(string(def.DateFormat), ws.DateFormat)),
		DisablePastDates: domain.BoolFromPtrWithDefault(def.DisablePastDates, ws.DisablePastDates),
		Layout:           domain.OptionLayout(domain.StrFromPtrWithDefault(string(def.Layout), ws.Layout)),
		RowLayoutCols:    domain.IntFromPtrWithDefault(def.RowLayoutCols, ws.RowLayoutCols),
	}
	if ftype.IsTextual() {
		s.ClampMaxLength()
	}
	s.ClampDecimalPlaces()

	// Options: root copy wins over the nested one.
	opts := wf.Options
	if opts == nil {
		opts = ws.Options
	}
	for _, o := range opts {
		s.Options = append(s.Options, domain.Option{Label: o.Label, Value: o.Value})
	}

	f.Settings = s
	return f
}

// EncodeVisit serializes the editor tree back to the flat wire form.
func EncodeVisit(v domain.Visit) wire.Form {
	w := wire.Form{
		Title:    v.Title,
		Order:    v.Order,
		IsHidden: v.Hidden,
		Sections: []wire.Section{},
	}
	if !domain.IsDraftID(v.ID) {
		id := v.ID
		w.ID = &id
	}
	for i, sec := range v.Sections {
		ws := wire.Section{
			Title:  sec.Title,
			Order:  i,
			Fields: EncodeRows(sec.Rows),
		}
		if !domain.IsDraftID(sec.ID) {
			id := sec.ID
			ws.ID = &id
		}
		w.Sections = append(w.Sections, ws)
	}
	return w
}

// EncodeRows flattens grid rows to wire fields.
//
// Row and column numbers are 1-based on the wire:
// order = (rowIndex+1) + (columnIndex+1)/100, so rows sort by the integer
// part and columns by the fraction. Every field of a row carries the
// row's column count in its settings.
func EncodeRows(rows []domain.Row) []wire.Field {
	fields := []wire.Field{}
	for rIdx, row := range rows {
		for fIdx, f := range row.Fields {
			wf := EncodeField(f, row.Columns)
			wf.Order = float64(rIdx+1) + float64(fIdx+1)/100
			fields = append(fields, wf)
		}
	}
	return fields
}

// EncodeField emits the wire form of one field, producing both the
// nested settings object and the root-level mirror keys.
func EncodeField(f domain.Field, rowCols int) wire.Field {
	s := f.Settings

	isRequired := wire.FlexBool(f.Required)
	wf := wire.Field{
		Name:       f.Name,
		Label:      f.Label,
		FieldType:  string(f.Type),
		IsRequired: &isRequired,
		HelpText:   f.HelpText,
		HelpImage:  f.HelpImage,
		Order:      f.Order,
	}
	if !domain.IsDraftID(f.ID) {
		id := f.ID
		wf.ID = &id
	}

	opts := []wire.Option{}
	for _, o := range s.Options {
		opts = append(opts, wire.Option{Label: o.Label, Value: o.Value})
	}

	cols := rowCols
	if cols < 1 {
		cols = 1
	}
	required := f.Required
	description := f.Description
	ws := wire.FieldSettings{
		RowLayoutCols: &cols,
		Options:       opts,
		Required:      &required,
		Description:   &description,
	}

	switch {
	case f.Type.IsTextual():
		tt := string(s.TextType)
		minLen, maxLen := s.MinLength, s.MaxLength
		sensitive := s.Sensitive
		ws.TextType = &tt
		ws.MinLength = &minLen
		ws.MaxLength = &maxLen
		ws.Sensitive = &sensitive
	case f.Type == domain.FieldNumber:
		allow := s.AllowDecimals
		places := s.DecimalPlaces
		unit, minV, maxV := s.Unit, s.MinValue, s.MaxValue
		ws.AllowDecimals = &allow
		ws.DecimalPlaces = &places
		ws.Unit = &unit
		ws.MinValue = &minV
		ws.MaxValue = &maxV
	case f.Type.IsTemporal():
		df := string(s.DateFormat)
		past := s.DisablePastDates
		ws.DateFormat = &df
		ws.DisablePastDates = &past
	case f.Type.IsSelection():
		lay := string(s.Layout)
		ws.Layout = &lay
	}

	if f.Type.IsSelection() {
		wf.Options = opts
	}
	if f.Description != "" {
		d := f.Description
		wf.Description = &d
	}

	wf.Settings = ws
	return wf
}
