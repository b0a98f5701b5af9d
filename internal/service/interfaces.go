package service

import (
	"context"

	"github.com/tbeaumont/crfstudio/internal/domain"
)

type StudyService interface {
	Create(ctx context.Context, protocolCode, name string) (*domain.Study, error)
	GetByID(ctx context.Context, id string) (*domain.Study, error)
	GetByProtocol(ctx context.Context, code string) (*domain.Study, error)
	List(ctx context.Context) ([]*domain.Study, error)
	Rename(ctx context.Context, id, name string) error
	Delete(ctx context.Context, id string) error
}

// FormService loads a study's visit forms into the editor tree and runs
// the save transaction back through the store.
type FormService interface {
	LoadStudy(ctx context.Context, studyID string) ([]domain.Visit, error)
	SaveStudy(ctx context.Context, studyID string, visits []domain.Visit, removedVisitIDs []string) error
}
