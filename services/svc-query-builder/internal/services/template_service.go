package services

import (
	"context"
	"fmt"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/ports"
	"github.com/google/uuid"
)

type TemplateService struct {
	repo ports.TemplateRepository
}

func NewTemplateService(repo ports.TemplateRepository) *TemplateService {
	return &TemplateService{repo: repo}
}

func (s *TemplateService) ListTemplates(ctx context.Context) ([]model.Template, error) {
	return s.repo.List(ctx)
}

func (s *TemplateService) GetTemplate(ctx context.Context, id string) (*model.Template, error) {
	return s.repo.FetchByID(ctx, id)
}

// SaveTemplate stores a user template. Built-in ids cannot be overwritten.
func (s *TemplateService) SaveTemplate(ctx context.Context, template model.Template) (*model.Template, error) {
	if template.ID == "" {
		template.ID = uuid.NewString()
	} else if model.IsBuiltinTemplate(template.ID) {
		return nil, fmt.Errorf("%w: %s", model.ErrTemplateConflict, template.ID)
	}

	if template.Category == "" {
		template.Category = model.CategoryCustom
	}

	if template.Tags == nil {
		template.Tags = []string{}
	}

	if err := template.Check(); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, template); err != nil {
		return nil, err
	}

	return &template, nil
}
