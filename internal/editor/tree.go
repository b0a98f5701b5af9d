// Package editor implements the structure-edit operations of the form
// builder. Every operation is a pure function (tree, op) -> tree': the
// input slice is never mutated, indexes out of range make the operation
// a no-op, and nothing here touches the store; persistence happens only
// through the explicit save transaction.
package editor

import "github.com/tbeaumont/crfstudio/internal/domain"

// cloneVisits deep-copies the visit tree so operations stay pure.
func cloneVisits(visits []domain.Visit) []domain.Visit {
	out := make([]domain.Visit, len(visits))
	for i, v := range visits {
		out[i] = v
		out[i].Sections = cloneSections(v.Sections)
	}
	return out
}

func cloneSections(secs []domain.Section) []domain.Section {
	out := make([]domain.Section, len(secs))
	for i, s := range secs {
		out[i] = s
		out[i].Rows = cloneRows(s.Rows)
	}
	return out
}

func cloneRows(rows []domain.Row) []domain.Row {
	out := make([]domain.Row, len(rows))
	for i, r := range rows {
		out[i] = r
		out[i].Fields = make([]domain.Field, len(r.Fields))
		for j, f := range r.Fields {
			out[i].Fields[j] = f
			out[i].Fields[j].Settings = f.Settings.Clone()
		}
	}
	return out
}

// renumber reassigns dense zero-based order values to visits and their
// sections. Called after every structural edit.
func renumber(visits []domain.Visit) []domain.Visit {
	for i := range visits {
		visits[i].Order = i
		for j := range visits[i].Sections {
			visits[i].Sections[j].Order = j
		}
	}
	return visits
}

// arrayMove relocates the element at from to position to, shifting the
// slice in between. This is the drag-and-drop primitive.
func arrayMove[T any](s []T, from, to int) []T {
	if from < 0 || from >= len(s) || to < 0 || to >= len(s) || from == to {
		return s
	}
	el := s[from]
	s = append(s[:from], s[from+1:]...)
	s = append(s[:to], append([]T{el}, s[to:]...)...)
	return s
}

func visitInRange(visits []domain.Visit, vi int) bool {
	return vi >= 0 && vi < len(visits)
}

func sectionInRange(visits []domain.Visit, vi, si int) bool {
	return visitInRange(visits, vi) && si >= 0 && si < len(visits[vi].Sections)
}

func rowInRange(visits []domain.Visit, vi, si, ri int) bool {
	return sectionInRange(visits, vi, si) && ri >= 0 && ri < len(visits[vi].Sections[si].Rows)
}
