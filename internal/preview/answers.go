// Package preview implements the form rendering engine: it accumulates
// answers against a visit tree, decides per-field answered state, and
// computes hierarchical completion percentages.
package preview

import (
	"strings"

	"github.com/tbeaumont/crfstudio/internal/domain"
)

// PartialDate is the answer shape of a date field in partial mode:
// three independently optional numeric components, kept as strings so an
// unset component stays distinguishable from zero.
type PartialDate struct {
	Year  string
	Month string
	Day   string
}

// Empty reports whether no component has been entered.
func (p PartialDate) Empty() bool {
	return p.Year == "" && p.Month == "" && p.Day == ""
}

// Answers maps field id to the entered value. Values are strings for
// scalar inputs, []string for checkbox selections, and PartialDate for
// partial-mode date fields.
type Answers map[string]any

// SetText records a scalar answer.
func (a Answers) SetText(fieldID, value string) {
	a[fieldID] = value
}

// Text returns the scalar answer for the field, or "".
func (a Answers) Text(fieldID string) string {
	if v, ok := a[fieldID].(string); ok {
		return v
	}
	return ""
}

// Select records a single-choice answer by option identity.
func (a Answers) Select(fieldID, identity string) {
	a[fieldID] = identity
}

// Toggle flips an option identity within a multi-choice answer. The key
// stays present even when the last selection is removed: for selection
// fields, presence in the map is what counts as answered.
func (a Answers) Toggle(fieldID, identity string) {
	var selected []string
	if v, ok := a[fieldID].([]string); ok {
		selected = v
	}
	for i, id := range selected {
		if id == identity {
			a[fieldID] = append(selected[:i], selected[i+1:]...)
			return
		}
	}
	a[fieldID] = append(selected, identity)
}

// Checked reports whether the option identity is selected.
func (a Answers) Checked(fieldID, identity string) bool {
	switch v := a[fieldID].(type) {
	case string:
		return v == identity
	case []string:
		for _, id := range v {
			if id == identity {
				return true
			}
		}
	}
	return false
}

// SetPartial records a partial-date answer.
func (a Answers) SetPartial(fieldID string, p PartialDate) {
	a[fieldID] = p
}

// Partial returns the partial-date answer for the field.
func (a Answers) Partial(fieldID string) PartialDate {
	if v, ok := a[fieldID].(PartialDate); ok {
		return v
	}
	return PartialDate{}
}

// Answered decides whether the field counts toward completion.
// Selection fields count as soon as the key exists at all; everything
// else requires a non-empty value.
func (a Answers) Answered(f domain.Field) bool {
	v, present := a[f.ID]
	if f.Type.IsSelection() {
		return present
	}
	if !present || v == nil {
		return false
	}
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case PartialDate:
		return !val.Empty()
	case []string:
		return len(val) > 0
	}
	return false
}
