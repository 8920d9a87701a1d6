package domain

import (
	"context"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
)

// --- Repositorio de Tasks ---
type TaskRepository interface {
	FetchAll(ctx context.Context) ([]Task, error)
	GetByID(ctx context.Context, id uuid.UUID) (Task, error)
	// Update guarda la tarea y el evento de outbox en la misma transacción.
	Update(ctx context.Context, t Task, evt sharedDomain.OutboxEvent) error
}
