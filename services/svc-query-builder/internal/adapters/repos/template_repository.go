package repos

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Shubhamshah007/nse-query-builder/pkg/logger"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/infrastructure"
)

const templatesHashKey = "templates:v1"

type (
	// InMemoryTemplateRepository serves the built-in templates plus any saved
	// during the process lifetime.
	InMemoryTemplateRepository struct {
		mu       sync.RWMutex
		builtins []model.Template
		saved    map[string]model.Template
		writable bool
	}

	// RedisTemplateRepository keeps saved templates as JSON values in one Redis hash.
	RedisTemplateRepository struct {
		client *infrastructure.RedisClient
		key    string
		logger logger.Logger
	}
)

func NewInMemoryTemplateRepository(writable bool) *InMemoryTemplateRepository {
	return &InMemoryTemplateRepository{
		builtins: model.BuiltinTemplates(),
		saved:    make(map[string]model.Template),
		writable: writable,
	}
}

func (r *InMemoryTemplateRepository) FetchByID(_ context.Context, id string) (*model.Template, error) {
	if template, ok := findBuiltin(r.builtins, id); ok {
		return &template, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	template, ok := r.saved[id]
	if !ok {
		return nil, &model.TemplateNotFoundError{ID: id}
	}

	return &template, nil
}

func (r *InMemoryTemplateRepository) List(_ context.Context) ([]model.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saved := make([]model.Template, 0, len(r.saved))
	for _, template := range r.saved {
		saved = append(saved, template)
	}

	return withBuiltins(r.builtins, saved), nil
}

func (r *InMemoryTemplateRepository) Save(_ context.Context, template model.Template) error {
	if !r.writable {
		return model.ErrTemplateStoreReadOnly
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.saved[template.ID] = template

	return nil
}

func NewRedisTemplateRepository(client *infrastructure.RedisClient, log logger.Logger) *RedisTemplateRepository {
	return &RedisTemplateRepository{
		client: client,
		key:    client.Key(templatesHashKey),
		logger: log.Component("template_repository"),
	}
}

func (r *RedisTemplateRepository) FetchByID(ctx context.Context, id string) (*model.Template, error) {
	if template, ok := findBuiltin(model.BuiltinTemplates(), id); ok {
		return &template, nil
	}

	data, err := r.client.HGet(ctx, r.key, id)
	if err != nil {
		if errors.Is(err, infrastructure.ErrCacheMiss) {
			return nil, &model.TemplateNotFoundError{ID: id}
		}

		return nil, fmt.Errorf("fetching template %s: %w", id, err)
	}

	var template model.Template
	if err := json.Unmarshal(data, &template); err != nil {
		return nil, fmt.Errorf("unmarshalling template %s: %w", id, err)
	}

	return &template, nil
}

func (r *RedisTemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	entries, err := r.client.HGetAll(ctx, r.key)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	saved := make([]model.Template, 0, len(entries))
	for id, data := range entries {
		var template model.Template
		if err := json.Unmarshal([]byte(data), &template); err != nil {
			r.logger.Warn().Err(err).Str("template_id", id).Msg("skipping unreadable template")

			continue
		}

		saved = append(saved, template)
	}

	return withBuiltins(model.BuiltinTemplates(), saved), nil
}

func (r *RedisTemplateRepository) Save(ctx context.Context, template model.Template) error {
	data, err := json.Marshal(template)
	if err != nil {
		return fmt.Errorf("marshalling template: %w", err)
	}

	if err := r.client.HSet(ctx, r.key, template.ID, data); err != nil {
		return fmt.Errorf("saving template %s: %w", template.ID, err)
	}

	return nil
}

func findBuiltin(builtins []model.Template, id string) (model.Template, bool) {
	for _, template := range builtins {
		if template.ID == id {
			return template, true
		}
	}

	return model.Template{}, false
}

// withBuiltins lists the built-ins first, then saved templates ordered by name and id.
func withBuiltins(builtins, saved []model.Template) []model.Template {
	sort.Slice(saved, func(i, j int) bool {
		if saved[i].Name != saved[j].Name {
			return saved[i].Name < saved[j].Name
		}

		return saved[i].ID < saved[j].ID
	})

	templates := make([]model.Template, 0, len(builtins)+len(saved))
	templates = append(templates, builtins...)

	return append(templates, saved...)
}
