package editor

import (
	"fmt"
	"math/rand/v2"

	"github.com/tbeaumont/crfstudio/internal/domain"
)

// NewField constructs a draft field of the given type with type defaults.
func NewField(ftype domain.FieldType, name, label string) domain.Field {
	return domain.Field{
		ID:       domain.NewDraftID(),
		Type:     ftype,
		Name:     name,
		Label:    label,
		Settings: domain.DefaultSettings(ftype),
	}
}

// AddRow appends an empty row with the given column count to the section.
func AddRow(visits []domain.Visit, vi, si, columns int) []domain.Visit {
	if !sectionInRange(visits, vi, si) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Sections[si].Rows = append(out[vi].Sections[si].Rows, newRow(columns))
	return out
}

// RemoveRow deletes the row and every field in it.
func RemoveRow(visits []domain.Visit, vi, si, ri int) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	rows := out[vi].Sections[si].Rows
	out[vi].Sections[si].Rows = append(rows[:ri], rows[ri+1:]...)
	return out
}

// MoveRow relocates a row within its section.
func MoveRow(visits []domain.Visit, vi, si, from, to int) []domain.Visit {
	if !sectionInRange(visits, vi, si) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Sections[si].Rows = arrayMove(out[vi].Sections[si].Rows, from, to)
	return out
}

// SetRowColumns changes a row's column count. Fields beyond the new
// count are dropped and are not recoverable; the caller shows no
// confirmation (observed behavior, flagged for product review).
func SetRowColumns(visits []domain.Visit, vi, si, ri, columns int) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	if columns < 1 {
		columns = 1
	}
	if columns > domain.MaxRowColumns {
		columns = domain.MaxRowColumns
	}
	out := cloneVisits(visits)
	row := &out[vi].Sections[si].Rows[ri]
	row.Columns = columns
	if len(row.Fields) > columns {
		row.Fields = row.Fields[:columns]
	}
	return out
}

// InsertField places a field into row ri. When the row is at capacity a
// new row with the same column count is inserted immediately after and
// the field goes there. A negative ri appends a fresh row at the end.
func InsertField(visits []domain.Visit, vi, si, ri int, f domain.Field) []domain.Visit {
	if !sectionInRange(visits, vi, si) {
		return visits
	}
	out := cloneVisits(visits)
	sec := &out[vi].Sections[si]

	if ri < 0 || ri >= len(sec.Rows) {
		row := newRow(1)
		row.Fields = append(row.Fields, f)
		sec.Rows = append(sec.Rows, row)
		return out
	}

	row := &sec.Rows[ri]
	if len(row.Fields) < row.Columns {
		row.Fields = append(row.Fields, f)
		return out
	}

	next := newRow(row.Columns)
	next.Fields = append(next.Fields, f)
	sec.Rows = append(sec.Rows[:ri+1], append([]domain.Row{next}, sec.Rows[ri+1:]...)...)
	return out
}

// RemoveField deletes the field at (ri, fi).
func RemoveField(visits []domain.Visit, vi, si, ri, fi int) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	row := &out[vi].Sections[si].Rows[ri]
	if fi < 0 || fi >= len(row.Fields) {
		return visits
	}
	row.Fields = append(row.Fields[:fi], row.Fields[fi+1:]...)
	return out
}

// MoveFieldInRow swaps the field at fi with its neighbor at fi+delta.
func MoveFieldInRow(visits []domain.Visit, vi, si, ri, fi, delta int) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	row := &out[vi].Sections[si].Rows[ri]
	ti := fi + delta
	if fi < 0 || fi >= len(row.Fields) || ti < 0 || ti >= len(row.Fields) {
		return visits
	}
	row.Fields[fi], row.Fields[ti] = row.Fields[ti], row.Fields[fi]
	return out
}

// MoveFieldToRow transfers a field to another row in the same section.
// The move is refused (no-op) when the target row is at capacity.
func MoveFieldToRow(visits []domain.Visit, vi, si, fromRow, fi, toRow int) []domain.Visit {
	if !rowInRange(visits, vi, si, fromRow) || !rowInRange(visits, vi, si, toRow) || fromRow == toRow {
		return visits
	}
	out := cloneVisits(visits)
	src := &out[vi].Sections[si].Rows[fromRow]
	dst := &out[vi].Sections[si].Rows[toRow]
	if fi < 0 || fi >= len(src.Fields) || len(dst.Fields) >= dst.Columns {
		return visits
	}
	f := src.Fields[fi]
	src.Fields = append(src.Fields[:fi], src.Fields[fi+1:]...)
	dst.Fields = append(dst.Fields, f)
	return out
}

// DuplicateField clones the field at (ri, fi) with a fresh draft id and
// a random 4-digit name disambiguator. The clone lands in the same row
// when capacity remains, otherwise in a new row immediately after.
func DuplicateField(visits []domain.Visit, vi, si, ri, fi int) []domain.Visit {
	if !rowInRange(visits, vi, si, ri) {
		return visits
	}
	out := cloneVisits(visits)
	sec := &out[vi].Sections[si]
	row := &sec.Rows[ri]
	if fi < 0 || fi >= len(row.Fields) {
		return visits
	}

	clone := row.Fields[fi]
	clone.ID = domain.NewDraftID()
	clone.Settings = clone.Settings.Clone()
	clone.Name = fmt.Sprintf("%s_%04d", clone.Name, rand.IntN(10000))

	if len(row.Fields) < row.Columns {
		row.Fields = append(row.Fields, clone)
		return out
	}

	next := newRow(row.Columns)
	next.Fields = append(next.Fields, clone)
	sec.Rows = append(sec.Rows[:ri+1], append([]domain.Row{next}, sec.Rows[ri+1:]...)...)
	return out
}

func newRow(columns int) domain.Row {
	if columns < 1 {
		columns = 1
	}
	if columns > domain.MaxRowColumns {
		columns = domain.MaxRowColumns
	}
	return domain.Row{Key: domain.NewDraftID(), Columns: columns}
}
