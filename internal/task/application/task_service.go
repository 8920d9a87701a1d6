package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/shared/application/listing"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
)

// Invalidator descarta la instantánea cacheada del tablero.
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// BoardColumn es una columna del kanban con sus tarjetas ya ordenadas.
type BoardColumn struct {
	Column taskDomain.Column `json:"column"`
	Count  int               `json:"count"`
	Tasks  []taskDomain.Task `json:"tasks"`
}

// TaskService define los casos de uso del tablero de tareas.
// Las lecturas pasan por el provider (normalmente cacheado) y las escrituras por el repositorio.
type TaskService struct {
	listing     *listing.Service[taskDomain.Task]
	repo        taskDomain.TaskRepository
	invalidator Invalidator
	now         func() time.Time
	log         *zap.Logger
}

// NewTaskService es el constructor. invalidator puede ser nil.
func NewTaskService(p provider.Provider[taskDomain.Task], repo taskDomain.TaskRepository, invalidator Invalidator, now func() time.Time, log *zap.Logger) *TaskService {
	if now == nil {
		now = time.Now
	}
	return &TaskService{
		listing:     listing.NewService(p, taskDomain.ResolveField, taskDomain.Sorts, log),
		repo:        repo,
		invalidator: invalidator,
		now:         now,
		log:         log,
	}
}

func (s *TaskService) ListTasks(ctx context.Context, q query.ListQuery) (listview.PageResult[taskDomain.Task], error) {
	return s.listing.List(ctx, q)
}

// Board agrupa por columna las tareas que cumplen criteria. Siempre devuelve
// las cuatro columnas, en orden, aunque estén vacías.
func (s *TaskService) Board(ctx context.Context, criteria sharedDomain.Criteria) ([]BoardColumn, error) {
	tasks, err := s.listing.Find(ctx, criteria)
	if err != nil {
		return nil, err
	}
	groups := listview.GroupBy(tasks, func(t taskDomain.Task) taskDomain.Column { return t.Column })

	board := make([]BoardColumn, 0, len(taskDomain.Columns))
	for _, col := range taskDomain.Columns {
		cards := listview.Sort(groups[col], taskDomain.BoardOrder, listview.Asc)
		board = append(board, BoardColumn{Column: col, Count: len(cards), Tasks: cards})
	}
	return board, nil
}

// Stats agrupa por field (column, priority, assignee...).
func (s *TaskService) Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
	counts, err := s.listing.CountBy(ctx, criteria, field)
	if err != nil {
		return nil, err
	}
	return listview.SortedCounts(counts), nil
}

// MoveTask mueve la tarjeta de columna y deja el evento task.moved en el
// outbox en la misma transacción. Mover a la columna actual no escribe nada.
func (s *TaskService) MoveTask(ctx context.Context, id uuid.UUID, to string) (taskDomain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return taskDomain.Task{}, err
	}

	now := s.now().UTC()
	from, changed, err := task.Move(taskDomain.Column(to), now)
	if err != nil {
		return taskDomain.Task{}, err
	}
	if !changed {
		return task, nil
	}

	evt := sharedDomain.OutboxEvent{
		ID:            uuid.New(),
		AggregateType: "task",
		AggregateID:   task.ID.String(),
		EventType:     taskDomain.TaskMovedType,
		Payload: taskDomain.TaskMoved{
			TaskID:         task.ID.String(),
			ApplicationRef: task.ApplicationRef,
			From:           from,
			To:             task.Column,
			MovedAt:        now,
		},
		CreatedAt: now,
	}
	if err := s.repo.Update(ctx, task, evt); err != nil {
		s.log.Error("Failed to move task", zap.String("task_id", id.String()), zap.Error(err))
		return taskDomain.Task{}, err
	}

	// No se espera al relayer para descartar la instantánea.
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.log.Warn("⚠️ Failed to invalidate task board snapshot", zap.Error(err))
		}
	}

	s.log.Info("Task moved",
		zap.String("task_id", id.String()),
		zap.String("from", string(from)),
		zap.String("to", string(task.Column)),
	)
	return task, nil
}

func (s *TaskService) SortFields() []string {
	return s.listing.SortFields()
}
