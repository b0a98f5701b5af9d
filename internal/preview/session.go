package preview

import "github.com/tbeaumont/crfstudio/internal/domain"

// Session is the state machine of one preview run. Its only state is
// the section being viewed; transitions are Next, Previous, JumpTo and
// JumpToField. There is no terminal state; closing the preview simply
// discards the session.
type Session struct {
	visits    []domain.Visit
	sectionID string
}

// NewSession starts a session positioned on the first section of the
// study (empty position when the study has no sections).
func NewSession(visits []domain.Visit) *Session {
	s := &Session{visits: visits}
	ordered := s.sectionIDs()
	if len(ordered) > 0 {
		s.sectionID = ordered[0]
	}
	return s
}

// SectionID is the section currently being viewed.
func (s *Session) SectionID() string {
	return s.sectionID
}

// Section resolves the current section, with its owning visit.
func (s *Session) Section() (domain.Visit, domain.Section, bool) {
	for _, v := range s.visits {
		for _, sec := range v.Sections {
			if sec.ID == s.sectionID {
				return v, sec, true
			}
		}
	}
	return domain.Visit{}, domain.Section{}, false
}

// Next advances to the following section in order, crossing visit
// boundaries. Reports whether the position changed.
func (s *Session) Next() bool {
	return s.step(+1)
}

// Previous steps back to the preceding section in order.
func (s *Session) Previous() bool {
	return s.step(-1)
}

// JumpTo moves directly to the given section if it exists.
func (s *Session) JumpTo(sectionID string) bool {
	for _, id := range s.sectionIDs() {
		if id == sectionID {
			s.sectionID = sectionID
			return true
		}
	}
	return false
}

// JumpToField moves to the field's owning section and returns the field
// id so the consuming view can scroll to and expand it; the scroll is
// an event the engine emits, not a behavior it owns.
func (s *Session) JumpToField(fieldID string) (string, bool) {
	_, sectionID, ok := domain.FieldByID(s.visits, fieldID)
	if !ok {
		return "", false
	}
	s.sectionID = sectionID
	return fieldID, true
}

func (s *Session) step(delta int) bool {
	ordered := s.sectionIDs()
	for i, id := range ordered {
		if id == s.sectionID {
			j := i + delta
			if j < 0 || j >= len(ordered) {
				return false
			}
			s.sectionID = ordered[j]
			return true
		}
	}
	return false
}

// sectionIDs returns every section id in visit order then section order.
func (s *Session) sectionIDs() []string {
	var ids []string
	for _, v := range s.visits {
		for _, sec := range v.Sections {
			ids = append(ids, sec.ID)
		}
	}
	return ids
}
