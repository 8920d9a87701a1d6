package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/consentlab/internal/shared/events"
	sharedUtils "github.com/davicafu/consentlab/internal/shared/utils"
)

const invalidateTimeout = 500 * time.Millisecond

// Invalidator lo implementa provider.Cached: sabe qué dataset guarda y cómo olvidarlo.
type Invalidator interface {
	Dataset() string
	Invalidate(ctx context.Context) error
}

// DatasetConsumer escucha eventos de integración y tira la caché de los
// datasets afectados para que la siguiente vista lea datos frescos.
type DatasetConsumer struct {
	targets  map[string][]Invalidator
	registry map[string]sharedEvents.EventMetadata
	log      *zap.Logger
}

// NewDatasetConsumer usa registry para saber a qué dataset afecta cada tipo de evento.
func NewDatasetConsumer(registry map[string]sharedEvents.EventMetadata, log *zap.Logger, invalidators ...Invalidator) *DatasetConsumer {
	targets := make(map[string][]Invalidator)
	for _, inv := range invalidators {
		targets[inv.Dataset()] = append(targets[inv.Dataset()], inv)
	}
	return &DatasetConsumer{targets: targets, registry: registry, log: log}
}

func (c *DatasetConsumer) HandleMessage(ctx context.Context, key string, payload []byte) {
	var base sharedEvents.IntegrationEvent
	if err := json.Unmarshal(payload, &base); err != nil {
		c.log.Warn("Failed to unmarshal integration event", zap.String("key", key), zap.Error(err))
		return
	}

	switch base.Type {
	case sharedEvents.DatasetChangedType:
		sharedUtils.UnmarshalAndHandle[sharedEvents.DatasetChanged](c.log, base.Data, func(evt sharedEvents.DatasetChanged) {
			c.invalidate(ctx, evt.Dataset, base.Type)
		})
	default:
		meta, ok := c.registry[base.Type]
		if !ok || meta.Dataset == "" {
			c.log.Warn("Unknown event type", zap.String("type", base.Type))
			return
		}
		c.invalidate(ctx, meta.Dataset, base.Type)
	}
}

func (c *DatasetConsumer) invalidate(ctx context.Context, dataset, eventType string) {
	targets := c.targets[dataset]
	if len(targets) == 0 {
		c.log.Debug("No cached views for dataset", zap.String("dataset", dataset))
		return
	}

	ctxInv, cancel := context.WithTimeout(ctx, invalidateTimeout)
	defer cancel()

	for _, t := range targets {
		if err := t.Invalidate(ctxInv); err != nil {
			c.log.Warn("Failed to invalidate dataset",
				zap.String("dataset", dataset),
				zap.String("event_type", eventType),
				zap.Error(err),
			)
			continue
		}
		c.log.Info("🧹 Dataset invalidated", zap.String("dataset", dataset), zap.String("event_type", eventType))
	}
}
