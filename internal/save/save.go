// Package save implements the explicit save transaction: serialize the
// editor grid to the flat wire form, validate locally, normalize names,
// and submit to the store. Local edits are never rolled back; a failed
// save leaves the tree intact for correction.
package save

import (
	"context"
	"errors"
	"fmt"

	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/layout"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// Store is the persistence collaborator. SaveVisit persists one flat
// form and returns the visit's real id (assigning one when the payload
// carries a draft).
type Store interface {
	SaveVisit(ctx context.Context, studyID string, form wire.Form) (string, error)
	DeleteVisit(ctx context.Context, visitID string) error
}

// DuplicateNameError is the local validation failure for a repeated
// field name. It is raised before any store call.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate field name %q: field names must be unique within a form", e.Name)
}

// Study validates and persists every visit of the study, then removes
// visits deleted in the editor. All visits are validated before the
// first store call, so a duplicate name anywhere blocks the entire save.
func Study(ctx context.Context, store Store, studyID string, visits []domain.Visit, removedVisitIDs []string) error {
	for _, v := range visits {
		if name, dup := domain.DuplicateFieldName(v); dup {
			return &DuplicateNameError{Name: name}
		}
	}

	payloads := make([]wire.Form, len(visits))
	for i, v := range visits {
		payloads[i] = Encode(v)
	}

	for _, id := range removedVisitIDs {
		if domain.IsDraftID(id) {
			continue
		}
		if err := store.DeleteVisit(ctx, id); err != nil {
			return fmt.Errorf("deleting visit: %w", err)
		}
	}

	for i := range payloads {
		if _, err := store.SaveVisit(ctx, studyID, payloads[i]); err != nil {
			return fmt.Errorf("saving visit %q: %w", payloads[i].Title, err)
		}
	}
	return nil
}

// Encode produces the transmission form of one visit: the layout codec's
// flat encoding with every field name normalized to upper-snake-case.
// Normalization applies to the payload only; the editor keeps the name
// as typed until a reload.
func Encode(v domain.Visit) wire.Form {
	w := layout.EncodeVisit(v)
	for si := range w.Sections {
		for fi := range w.Sections[si].Fields {
			f := &w.Sections[si].Fields[fi]
			f.Name = domain.UpperSnake(f.Name)
		}
	}
	return w
}

// UserMessage condenses a save failure into the notification text shown
// to the user: the duplicate-name explanation, the first field-level
// error the store reported, or a generic failure notice.
func UserMessage(err error) string {
	var dup *DuplicateNameError
	if errors.As(err, &dup) {
		return dup.Error()
	}
	var fieldErr wire.FieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Error()
	}
	return "Save failed, your edits are unchanged. " + err.Error()
}
