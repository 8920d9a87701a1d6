package provider

import (
	"context"
	"time"

	"go.uber.org/zap"

	sharedCache "github.com/davicafu/consentlab/internal/shared/platform/cache"
	sharedUtils "github.com/davicafu/consentlab/internal/shared/utils"
)

const (
	fetchAttempts = 3
	fetchDelay    = 100 * time.Millisecond
)

// Cached aplica cache-aside sobre otro Provider: primero la caché, si falla
// el proveedor real (con reintentos) y luego se repuebla la caché en segundo plano.
type Cached[T any] struct {
	inner   Provider[T]
	cache   sharedCache.Cache
	dataset string
	ttlSecs int
	gen     sharedCache.Generation
	log     *zap.Logger
}

// NewCached envuelve inner. Con cache nil se comporta como inner con reintentos.
func NewCached[T any](inner Provider[T], cache sharedCache.Cache, dataset string, ttl time.Duration, log *zap.Logger) *Cached[T] {
	return &Cached[T]{
		inner:   inner,
		cache:   cache,
		dataset: dataset,
		ttlSecs: sharedCache.TTLSeconds(ttl),
		log:     log,
	}
}

// Dataset es el nombre lógico del dataset cacheado.
func (c *Cached[T]) Dataset() string { return c.dataset }

func (c *Cached[T]) key() string { return sharedCache.DatasetKey(c.dataset) }

func (c *Cached[T]) FetchAll(ctx context.Context) ([]T, error) {
	// 1. Intentar obtener de la caché
	if c.cache != nil {
		var items []T
		hit, err := c.cache.Get(ctx, c.key(), &items)
		if err != nil {
			c.log.Warn("Cache read failed, falling back to provider",
				zap.String("dataset", c.dataset), zap.Error(err))
		}
		if hit {
			return items, nil
		}
	}

	// 2. Si es 'miss', ir al proveedor con reintentos
	at := c.gen.Current()
	var items []T
	err := sharedUtils.Retry(ctx, fetchAttempts, fetchDelay, func() error {
		var errRetry error
		items, errRetry = c.inner.FetchAll(ctx)
		return errRetry
	})
	if err != nil {
		c.log.Error("Failed to fetch dataset", zap.String("dataset", c.dataset), zap.Error(err))
		return nil, err
	}

	// 3. Repoblar la caché para la próxima vez, salvo que hubo una escritura entretanto
	sharedCache.AsyncCacheSet(c.cache, &c.gen, at, c.key(), items, c.ttlSecs, c.log)

	return items, nil
}

// Invalidate borra el snapshot cacheado; la próxima lectura irá al proveedor.
func (c *Cached[T]) Invalidate(ctx context.Context) error {
	return c.gen.Invalidate(ctx, c.cache, c.key())
}
