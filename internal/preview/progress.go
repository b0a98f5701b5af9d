package preview

import (
	"math"

	"github.com/tbeaumont/crfstudio/internal/domain"
)

// SectionProgress is the rounded percentage of the section's fields
// holding an answer. A section with no fields reports 0.
func SectionProgress(sec domain.Section, answers Answers) int {
	total, answered := 0, 0
	for _, row := range sec.Rows {
		for _, f := range row.Fields {
			total++
			if answers.Answered(f) {
				answered++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(answered) / float64(total)))
}

// VisitProgress is the rounded mean of the visit's section percentages,
// 0 when the visit has no sections.
func VisitProgress(v domain.Visit, answers Answers) int {
	if len(v.Sections) == 0 {
		return 0
	}
	sum := 0
	for _, sec := range v.Sections {
		sum += SectionProgress(sec, answers)
	}
	return int(math.Round(float64(sum) / float64(len(v.Sections))))
}

// GlobalProgress is the rounded mean of all visit percentages, 0 when
// the study has no visits. Hidden visits are included: hiding a visit is
// a builder-time display concern, not a completion concern.
func GlobalProgress(visits []domain.Visit, answers Answers) int {
	if len(visits) == 0 {
		return 0
	}
	sum := 0
	for _, v := range visits {
		sum += VisitProgress(v, answers)
	}
	return int(math.Round(float64(sum) / float64(len(visits))))
}
