package domain

import (
	"reflect"
	"time"

	sharedEvents "github.com/davicafu/consentlab/internal/shared/events"
)

const TaskMovedType = "task.moved"

// TaskMoved es el payload que se guarda en el outbox al mover una tarjeta.
type TaskMoved struct {
	TaskID         string    `json:"taskId"`
	ApplicationRef string    `json:"applicationRef"`
	From           Column    `json:"from"`
	To             Column    `json:"to"`
	MovedAt        time.Time `json:"movedAt"`
}

// NewEventRegistry: los eventos de tareas dejan obsoleta la vista "tasks".
func NewEventRegistry() map[string]sharedEvents.EventMetadata {
	return map[string]sharedEvents.EventMetadata{
		TaskMovedType: {
			Type:    reflect.TypeOf(TaskMoved{}),
			Topic:   sharedEvents.DatasetTopic,
			Dataset: Dataset,
		},
	}
}
