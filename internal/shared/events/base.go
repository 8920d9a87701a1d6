package events

import (
	"encoding/json"
	"reflect"
	"time"
)

// Base de todos los eventos de integración
type IntegrationEvent struct {
	Type      string          `json:"type"`
	Key       string          `json:"key,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"` // contenido específico del evento
}

// PartitionKey permite a Kafka agrupar los eventos del mismo agregado.
func (e IntegrationEvent) PartitionKey() string {
	return e.Key
}

// NewIntegrationEvent serializa data dentro del sobre común.
func NewIntegrationEvent(eventType, key string, data interface{}, at time.Time) (IntegrationEvent, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return IntegrationEvent{}, err
	}
	return IntegrationEvent{Type: eventType, Key: key, Timestamp: at.UTC(), Data: raw}, nil
}

// EventMetadata describe un tipo de evento conocido: el tipo Go del payload,
// el topic donde se publica y el dataset cuyas vistas deja obsoletas.
type EventMetadata struct {
	Type    reflect.Type
	Topic   string
	Dataset string
}
