package service

import (
	"context"

	"github.com/tbeaumont/crfstudio/internal/db"
	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/layout"
	"github.com/tbeaumont/crfstudio/internal/repository"
	"github.com/tbeaumont/crfstudio/internal/save"
)

type formService struct {
	forms repository.FormRepo
	uow   db.UnitOfWork
}

func NewFormService(forms repository.FormRepo, uow db.UnitOfWork) FormService {
	return &formService{forms: forms, uow: uow}
}

func (s *formService) LoadStudy(ctx context.Context, studyID string) ([]domain.Visit, error) {
	wireForms, err := s.forms.ListVisits(ctx, studyID)
	if err != nil {
		return nil, err
	}
	visits := make([]domain.Visit, 0, len(wireForms))
	for _, w := range wireForms {
		visits = append(visits, layout.DecodeVisit(w))
	}
	return visits, nil
}

// SaveStudy runs the save transaction inside a single unit of work:
// either every visit of the study persists, or none do.
func (s *formService) SaveStudy(ctx context.Context, studyID string, visits []domain.Visit, removedVisitIDs []string) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txRepo := repository.NewSQLiteFormRepo(tx)
		return save.Study(ctx, txRepo, studyID, visits, removedVisitIDs)
	})
}
