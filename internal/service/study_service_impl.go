package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/tbeaumont/crfstudio/internal/domain"
	"github.com/tbeaumont/crfstudio/internal/repository"
)

var protocolCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9-]{1,19}$`)

type studyService struct {
	studies repository.StudyRepo
}

func NewStudyService(studies repository.StudyRepo) StudyService {
	return &studyService{studies: studies}
}

func (s *studyService) Create(ctx context.Context, protocolCode, name string) (*domain.Study, error) {
	protocolCode = strings.ToUpper(strings.TrimSpace(protocolCode))
	if !protocolCodePattern.MatchString(protocolCode) {
		return nil, fmt.Errorf("protocol code %q must be 2-20 characters: uppercase letters, digits, dashes (e.g. ONC-2024)", protocolCode)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("study name is required")
	}
	study := &domain.Study{ProtocolCode: protocolCode, Name: strings.TrimSpace(name)}
	if err := s.studies.Create(ctx, study); err != nil {
		return nil, err
	}
	return study, nil
}

func (s *studyService) GetByID(ctx context.Context, id string) (*domain.Study, error) {
	return s.studies.GetByID(ctx, id)
}

func (s *studyService) GetByProtocol(ctx context.Context, code string) (*domain.Study, error) {
	return s.studies.GetByProtocol(ctx, strings.ToUpper(strings.TrimSpace(code)))
}

func (s *studyService) List(ctx context.Context) ([]*domain.Study, error) {
	return s.studies.List(ctx)
}

func (s *studyService) Rename(ctx context.Context, id, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("study name is required")
	}
	return s.studies.Rename(ctx, id, strings.TrimSpace(name))
}

func (s *studyService) Delete(ctx context.Context, id string) error {
	return s.studies.Delete(ctx, id)
}
