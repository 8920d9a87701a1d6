package events

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	sharedBus "github.com/davicafu/consentlab/internal/shared/platform/bus"
)

// InMemoryEventBus implementa un bus de eventos para UN solo topic.
// Cada suscriptor recibe el evento serializado como []byte, igual que
// llegaría desde Kafka, para que los consumidores no distingan el origen.
type InMemoryEventBus struct {
	subscribers []chan interface{}
	mu          sync.RWMutex
	topic       string
	log         *zap.Logger
}

var _ sharedBus.EventPublisher = (*InMemoryEventBus)(nil)

// NewInMemoryEventBus crea un bus de eventos para un topic específico.
func NewInMemoryEventBus(topic string, log *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		subscribers: make([]chan interface{}, 0),
		topic:       topic,
		log:         log,
	}
}

// Topic devuelve el topic que atiende este bus.
func (b *InMemoryEventBus) Topic() string {
	return b.topic
}

// Publish envía un evento a todos los suscriptores de este bus.
// Si el buffer de un suscriptor está lleno el evento se descarta para él
// y queda un aviso en el log.
func (b *InMemoryEventBus) Publish(ctx context.Context, event interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payloadBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	subs := append([]chan interface{}(nil), b.subscribers...)
	b.mu.RUnlock()

	if len(subs) > 0 {
		go b.distribute(subs, payloadBytes)
	}
	return nil
}

func (b *InMemoryEventBus) distribute(subs []chan interface{}, event interface{}) {
	for _, subChan := range subs {
		select {
		case subChan <- event:
		default:
			b.log.Warn("⚠️ Event dropped, subscriber buffer is full", zap.String("topic", b.topic))
		}
	}
}

// Subscribe suscribe un nuevo oyente a este bus.
func (b *InMemoryEventBus) Subscribe(bufferSize int) <-chan interface{} {
	b.mu.Lock()
	defer b.mu.Unlock()

	subChan := make(chan interface{}, bufferSize)
	b.subscribers = append(b.subscribers, subChan)
	return subChan
}
