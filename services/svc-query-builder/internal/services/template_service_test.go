package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/adapters/repos"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func userTemplate() model.Template {
	return model.Template{
		Name: "Put IV above 30",
		Query: model.Query{
			Groups: []model.Group{{
				Conditions: []model.Condition{{
					Field1:   model.FieldCurrentPutIV,
					Operator: model.OpGreaterThan,
					Value:    model.Float(30),
				}},
			}},
		},
	}
}

func TestTemplateService_SaveTemplate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		writable    bool
		template    func() model.Template
		expectedErr error
		verify      func(*testing.T, *model.Template)
	}{
		{
			name:     "assigns an id and the custom category",
			writable: true,
			template: userTemplate,
			verify: func(t *testing.T, saved *model.Template) {
				_, err := uuid.Parse(saved.ID)
				require.NoError(t, err)
				require.Equal(t, model.CategoryCustom, saved.Category)
				require.NotNil(t, saved.Tags)
			},
		},
		{
			name:     "keeps a caller supplied id",
			writable: true,
			template: func() model.Template {
				template := userTemplate()
				template.ID = "put-iv-30"
				template.Category = model.CategoryVolatility

				return template
			},
			verify: func(t *testing.T, saved *model.Template) {
				require.Equal(t, "put-iv-30", saved.ID)
				require.Equal(t, model.CategoryVolatility, saved.Category)
			},
		},
		{
			name:     "built-in ids conflict",
			writable: true,
			template: func() model.Template {
				template := userTemplate()
				template.ID = "high_iv_vs_3months"

				return template
			},
			expectedErr: model.ErrTemplateConflict,
		},
		{
			name:     "name is required",
			writable: true,
			template: func() model.Template {
				template := userTemplate()
				template.Name = "  "

				return template
			},
			expectedErr: model.ErrInvalidTemplate,
		},
		{
			name:     "query must be valid",
			writable: true,
			template: func() model.Template {
				template := userTemplate()
				template.Query = model.Query{}

				return template
			},
			expectedErr: model.ErrInvalidTemplate,
		},
		{
			name:        "read-only store",
			writable:    false,
			template:    userTemplate,
			expectedErr: model.ErrTemplateStoreReadOnly,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := repos.NewInMemoryTemplateRepository(tc.writable)
			service := services.NewTemplateService(repo)

			saved, err := service.SaveTemplate(context.Background(), tc.template())

			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				require.Nil(t, saved)

				return
			}

			require.NoError(t, err)
			tc.verify(t, saved)

			fetched, err := service.GetTemplate(context.Background(), saved.ID)
			require.NoError(t, err)
			require.Equal(t, saved.Name, fetched.Name)
		})
	}
}

func TestTemplateService_ListAndGet(t *testing.T) {
	t.Parallel()

	service := services.NewTemplateService(repos.NewInMemoryTemplateRepository(false))

	templates, err := service.ListTemplates(context.Background())
	require.NoError(t, err)
	require.Len(t, templates, 3)

	_, err = service.GetTemplate(context.Background(), "unknown")
	require.True(t, errors.Is(err, model.ErrTemplateNotFound))
}
