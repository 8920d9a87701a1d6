package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const asyncTimeout = 200 * time.Millisecond

// Generation versiona el contenido de una key. Invalidate la adelanta y
// las escrituras de valores leídos en una generación anterior se descartan.
type Generation struct {
	mu sync.Mutex
	n  uint64
}

// Current es la generación vigente; se toma antes de leer del origen.
func (g *Generation) Current() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.n
}

// Invalidate adelanta la generación y borra la key.
func (g *Generation) Invalidate(ctx context.Context, c Cache, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	if c == nil {
		return nil
	}
	return c.Delete(ctx, key)
}

// setIfCurrent escribe solo si nadie invalidó desde la generación at.
func (g *Generation) setIfCurrent(ctx context.Context, c Cache, at uint64, key string, value interface{}, ttlSecs int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.n != at {
		return false, nil
	}
	return true, c.Set(ctx, key, value, ttlSecs)
}

// AsyncCacheSet actualiza caché en background sin bloquear. Si la key se
// invalidó después de la generación at el valor ya es viejo y no se escribe.
func AsyncCacheSet(c Cache, gen *Generation, at uint64, key string, value interface{}, ttlSecs int, log *zap.Logger) {
	if c == nil {
		return
	}

	go func() {
		// Contexto propio: la actualización debe sobrevivir a la petición original.
		cacheCtx, cancel := context.WithTimeout(context.Background(), asyncTimeout)
		defer cancel()

		written, err := gen.setIfCurrent(cacheCtx, c, at, key, value, ttlSecs)
		if err != nil {
			log.Warn("Cache update failed",
				zap.String("key", key),
				zap.Error(err))
			return
		}
		if !written {
			log.Debug("Stale snapshot discarded", zap.String("key", key))
		}
	}()
}
