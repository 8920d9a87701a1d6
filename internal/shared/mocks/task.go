package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
)

// InMemoryTaskRepo simula TaskRepository con outbox incluido.
type InMemoryTaskRepo struct {
	Tasks  map[uuid.UUID]taskDomain.Task
	Outbox []sharedDomain.OutboxEvent
	order  []uuid.UUID
	mu     sync.Mutex
}

func NewInMemoryTaskRepo(seed ...taskDomain.Task) *InMemoryTaskRepo {
	r := &InMemoryTaskRepo{
		Tasks:  make(map[uuid.UUID]taskDomain.Task),
		Outbox: []sharedDomain.OutboxEvent{},
	}
	for _, t := range seed {
		r.Tasks[t.ID] = t
		r.order = append(r.order, t.ID)
	}
	return r
}

// --- Implementación de la interfaz TaskRepository ---

// FetchAll respeta el orden de inserción.
func (r *InMemoryTaskRepo) FetchAll(ctx context.Context) ([]taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]taskDomain.Task, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.Tasks[id])
	}
	return out, nil
}

func (r *InMemoryTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (taskDomain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.Tasks[id]
	if !ok {
		return taskDomain.Task{}, taskDomain.ErrTaskNotFound
	}
	return t, nil
}

func (r *InMemoryTaskRepo) Update(ctx context.Context, t taskDomain.Task, evt sharedDomain.OutboxEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.Tasks[t.ID]; !ok {
		return taskDomain.ErrTaskNotFound
	}
	r.Tasks[t.ID] = t
	r.Outbox = append(r.Outbox, evt)
	return nil
}

var _ taskDomain.TaskRepository = (*InMemoryTaskRepo)(nil)
