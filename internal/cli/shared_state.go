package cli

import "github.com/tbeaumont/crfstudio/internal/domain"

// SharedState holds context shared across all views via pointer.
//
// The visit tree is the single editing buffer: structure operations
// produce a new tree that views write back here. Nothing is persisted
// until the explicit save action; losing the session before saving
// loses all unsaved edits.
type SharedState struct {
	App *App

	// Active study context.
	StudyID       string
	ProtocolCode  string
	StudyName     string

	// Editing buffer for the active study's forms.
	Visits          []domain.Visit
	RemovedVisitIDs []string
	Dirty           bool

	// Save mutex flag: the save key is ignored while a save is in
	// flight. This is a plain flag, not a queue.
	Saving bool

	// Terminal dimensions.
	Width  int
	Height int
}

// SetActiveStudy records the study whose forms are being edited.
func (s *SharedState) SetActiveStudy(study *domain.Study) {
	s.StudyID = study.ID
	s.ProtocolCode = study.ProtocolCode
	s.StudyName = study.Name
	s.Visits = nil
	s.RemovedVisitIDs = nil
	s.Dirty = false
	s.Saving = false
}

// ReplaceVisits installs an edited tree and marks the buffer dirty.
func (s *SharedState) ReplaceVisits(visits []domain.Visit) {
	s.Visits = visits
	s.Dirty = true
}

// MarkVisitRemoved remembers a persisted visit id for deletion at save
// time. Draft visits vanish with the in-memory tree.
func (s *SharedState) MarkVisitRemoved(id string) {
	if !domain.IsDraftID(id) {
		s.RemovedVisitIDs = append(s.RemovedVisitIDs, id)
	}
}

// MarkSaved resets the dirty tracking after a successful save.
func (s *SharedState) MarkSaved() {
	s.Dirty = false
	s.RemovedVisitIDs = nil
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines), status bar (2 lines) and the
// notice line.
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
