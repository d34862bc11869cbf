package ports

import (
	"context"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

type (
	// QueryBuilderService validates, compiles and runs market summary queries.
	QueryBuilderService interface {
		Execute(ctx context.Context, query model.Query) (*model.ExecutionResponse, error)
		ExecuteSimple(ctx context.Context, condition model.SimpleCondition) (*model.SimpleQueryResponse, error)
		Validate(ctx context.Context, query model.Query) model.ValidationResult
		Schema(ctx context.Context) model.Schema
	}

	// TemplateService exposes the predefined and user saved query templates.
	TemplateService interface {
		ListTemplates(ctx context.Context) ([]model.Template, error)
		GetTemplate(ctx context.Context, id string) (*model.Template, error)
		SaveTemplate(ctx context.Context, template model.Template) (*model.Template, error)
	}
)
