package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	sharedBus "github.com/davicafu/consentlab/internal/shared/platform/bus"
)

const Dataset = "tasks"

// Column es la columna del tablero kanban en la que está la tarea.
type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in_progress"
	ColumnReview     Column = "review"
	ColumnDone       Column = "done"
)

// Columns en el orden en que se pintan en el tablero.
var Columns = []Column{ColumnTodo, ColumnInProgress, ColumnReview, ColumnDone}

func ParseColumn(s string) (Column, error) {
	norm := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(strings.TrimSpace(s)))
	for _, col := range Columns {
		if string(col) == norm {
			return col, nil
		}
	}
	return "", fmt.Errorf("%w: unknown task column %q", sharedDomain.ErrInvalidArgument, s)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func ParsePriority(s string) (Priority, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priorities {
		if string(p) == norm {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: unknown task priority %q", sharedDomain.ErrInvalidArgument, s)
}

// Rank: cuanto mayor, más urgente. Una prioridad desconocida vale 0.
func (p Priority) Rank() int {
	for i, known := range Priorities {
		if p == known {
			return i + 1
		}
	}
	return 0
}

var (
	ErrTaskNotFound = fmt.Errorf("%w: task", sharedDomain.ErrNotFound)
	ErrInvalidTask  = fmt.Errorf("%w: invalid task", sharedDomain.ErrInvalidArgument)
)

type Task struct {
	ID             uuid.UUID `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	ApplicationRef string    `json:"applicationRef" yaml:"application_ref"`
	Assignee       string    `json:"assignee" yaml:"assignee"`
	Column         Column    `json:"column" yaml:"column"`
	Priority       Priority  `json:"priority" yaml:"priority"`
	DueDate        time.Time `json:"dueDate" yaml:"due_date"`
	CreatedAt      time.Time `json:"createdAt" yaml:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" yaml:"updated_at"`
}

func (t *Task) PartitionKey() string {
	return t.ID.String()
}

func (t Task) Validate() error {
	if t.ID == uuid.Nil || strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: id and title are required", ErrInvalidTask)
	}
	if _, err := ParseColumn(string(t.Column)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTask, t.ID, err)
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidTask, t.ID, err)
	}
	return nil
}

// --- Métodos de dominio ---

// Move cambia la tarea de columna. Devuelve la columna de origen y si hubo
// cambio: mover a la misma columna no toca UpdatedAt.
func (t *Task) Move(to Column, now time.Time) (Column, bool, error) {
	col, err := ParseColumn(string(to))
	if err != nil {
		return "", false, err
	}
	from := t.Column
	if from == col {
		return from, false, nil
	}
	t.Column = col
	t.UpdatedAt = now.UTC()
	return from, true, nil
}

// ResolveField expone los campos filtrables y agrupables de Task.
func ResolveField(t Task, field string) (interface{}, bool) {
	switch field {
	case "id":
		return t.ID, true
	case "title":
		return t.Title, true
	case "application_ref":
		return t.ApplicationRef, true
	case "assignee":
		return t.Assignee, true
	case "column":
		return t.Column, true
	case "priority":
		return t.Priority, true
	case "due_date":
		return t.DueDate, true
	case "created_at":
		return t.CreatedAt, true
	case "updated_at":
		return t.UpdatedAt, true
	}
	return nil, false
}

// Verificación estática para asegurar que Task implementa la interfaz
var _ sharedBus.Keyer = (*Task)(nil)
