package editor

import "github.com/tbeaumont/crfstudio/internal/domain"

// AddVisit appends a new empty visit with a draft id.
func AddVisit(visits []domain.Visit, title string) []domain.Visit {
	out := cloneVisits(visits)
	out = append(out, domain.Visit{
		ID:    domain.NewDraftID(),
		Title: title,
	})
	return renumber(out)
}

// RenameVisit sets the visit's title.
func RenameVisit(visits []domain.Visit, vi int, title string) []domain.Visit {
	if !visitInRange(visits, vi) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Title = title
	return out
}

// RemoveVisit deletes the visit and renumbers the remainder.
func RemoveVisit(visits []domain.Visit, vi int) []domain.Visit {
	if !visitInRange(visits, vi) {
		return visits
	}
	out := cloneVisits(visits)
	out = append(out[:vi], out[vi+1:]...)
	return renumber(out)
}

// MoveVisit relocates a visit within the study.
func MoveVisit(visits []domain.Visit, from, to int) []domain.Visit {
	out := cloneVisits(visits)
	out = arrayMove(out, from, to)
	return renumber(out)
}

// ToggleVisitHidden flips patient-facing visibility. Hidden visits stay
// editable and still count toward completion accounting.
func ToggleVisitHidden(visits []domain.Visit, vi int) []domain.Visit {
	if !visitInRange(visits, vi) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Hidden = !out[vi].Hidden
	return out
}

// AddSection appends a new empty section to the visit.
func AddSection(visits []domain.Visit, vi int, title string) []domain.Visit {
	if !visitInRange(visits, vi) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Sections = append(out[vi].Sections, domain.Section{
		ID:    domain.NewDraftID(),
		Title: title,
	})
	return renumber(out)
}

// RenameSection sets the section's title.
func RenameSection(visits []domain.Visit, vi, si int, title string) []domain.Visit {
	if !sectionInRange(visits, vi, si) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Sections[si].Title = title
	return out
}

// RemoveSection deletes the section and all fields within it.
func RemoveSection(visits []domain.Visit, vi, si int) []domain.Visit {
	if !sectionInRange(visits, vi, si) {
		return visits
	}
	out := cloneVisits(visits)
	secs := out[vi].Sections
	out[vi].Sections = append(secs[:si], secs[si+1:]...)
	return renumber(out)
}

// MoveSection relocates a section within its visit.
func MoveSection(visits []domain.Visit, vi, from, to int) []domain.Visit {
	if !visitInRange(visits, vi) {
		return visits
	}
	out := cloneVisits(visits)
	out[vi].Sections = arrayMove(out[vi].Sections, from, to)
	return renumber(out)
}
