package ports

import (
	"context"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
)

type (
	TemplateFetcher interface {
		// FetchByID returns the template or an error wrapping model.ErrTemplateNotFound.
		FetchByID(ctx context.Context, id string) (*model.Template, error)
	}

	TemplateFinder interface {
		// List returns every template, built-in ones first.
		List(ctx context.Context) ([]model.Template, error)
	}

	TemplateSaver interface {
		// Save stores a template. Read-only stores return model.ErrTemplateStoreReadOnly.
		Save(ctx context.Context, template model.Template) error
	}

	TemplateRepository interface {
		TemplateFetcher
		TemplateFinder
		TemplateSaver
	}
)
