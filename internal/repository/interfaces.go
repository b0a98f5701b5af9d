package repository

import (
	"context"
	"errors"

	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/wire"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type StudyRepo interface {
	Create(ctx context.Context, s *domain.Study) error
	GetByID(ctx context.Context, id string) (*domain.Study, error)
	GetByProtocol(ctx context.Context, code string) (*domain.Study, error)
	List(ctx context.Context) ([]*domain.Study, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// FormRepo persists visit forms in their flat wire representation.
// SaveVisit assigns real ids to entities whose payload id is null;
// matching between payload and stored rows is positional, never by the
// editor's draft ids.
type FormRepo interface {
	SaveVisit(ctx context.Context, studyID string, form wire.Form) (string, error)
	DeleteVisit(ctx context.Context, visitID string) error
	ListVisits(ctx context.Context, studyID string) ([]wire.Form, error)
}
