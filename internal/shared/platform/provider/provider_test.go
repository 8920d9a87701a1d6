package provider

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/shared/mocks"
	sharedCache "github.com/davicafu/consentlab/internal/shared/platform/cache"
)

type application struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func TestStatic_ReturnsCopies(t *testing.T) {
	source := []application{{ID: "DA-1"}, {ID: "DA-2"}}
	p := NewStatic(source)

	first, err := p.FetchAll(context.Background())
	require.NoError(t, err)
	first[0].ID = "mutated"
	second, _ := p.FetchAll(context.Background())

	assert.Equal(t, "DA-1", second[0].ID)
	source[1].ID = "mutated"
	assert.Equal(t, "DA-2", second[1].ID)
}

func TestStatic_EmptyAndCancelled(t *testing.T) {
	p := NewStatic[application](nil)

	items, err := p.FetchAll(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, items)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.FetchAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc_Adapter(t *testing.T) {
	var p Provider[int] = Func[int](func(ctx context.Context) ([]int, error) {
		return []int{1, 2, 3}, nil
	})

	items, err := p.FetchAll(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, items)
}

func TestCached_MissThenHit(t *testing.T) {
	// Arrange
	inner := new(mocks.MockProvider[application])
	inner.On("FetchAll", mock.Anything).Return([]application{{ID: "DA-1", Status: "Approved"}}, nil).Once()
	cache := mocks.NewDummyCache()
	p := NewCached[application](inner, cache, "applications", time.Minute, zap.NewNop())

	// Act: primera lectura va al proveedor
	first, err := p.FetchAll(context.Background())
	require.NoError(t, err)

	// La caché se repuebla en segundo plano
	assert.Eventually(t, func() bool {
		return cache.Has(sharedCache.DatasetKey("applications"))
	}, time.Second, 5*time.Millisecond)

	// Segunda lectura sale de la caché
	second, err := p.FetchAll(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, first, second)
	inner.AssertNumberOfCalls(t, "FetchAll", 1)
}

func TestCached_RetriesTransientErrors(t *testing.T) {
	inner := new(mocks.MockProvider[application])
	inner.On("FetchAll", mock.Anything).Return(nil, errors.New("connection reset")).Once()
	inner.On("FetchAll", mock.Anything).Return([]application{{ID: "DA-9"}}, nil).Once()
	p := NewCached[application](inner, nil, "applications", time.Minute, zap.NewNop())

	items, err := p.FetchAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "DA-9", items[0].ID)
	inner.AssertExpectations(t)
}

func TestCached_GivesUpAfterRetries(t *testing.T) {
	down := errors.New("db down")
	inner := new(mocks.MockProvider[application])
	inner.On("FetchAll", mock.Anything).Return(nil, down)
	p := NewCached[application](inner, nil, "applications", time.Minute, zap.NewNop())

	_, err := p.FetchAll(context.Background())

	assert.ErrorIs(t, err, down)
	inner.AssertNumberOfCalls(t, "FetchAll", fetchAttempts)
}

func TestCached_Invalidate(t *testing.T) {
	cache := mocks.NewDummyCache()
	key := sharedCache.DatasetKey("tasks")
	require.NoError(t, cache.Set(context.Background(), key, []application{{ID: "stale"}}, 0))
	inner := new(mocks.MockProvider[application])
	inner.On("FetchAll", mock.Anything).Return([]application{{ID: "fresh"}}, nil)
	p := NewCached[application](inner, cache, "tasks", time.Minute, zap.NewNop())

	stale, _ := p.FetchAll(context.Background())
	require.NoError(t, p.Invalidate(context.Background()))
	fresh, _ := p.FetchAll(context.Background())

	assert.Equal(t, "stale", stale[0].ID)
	assert.Equal(t, "fresh", fresh[0].ID)
	assert.Equal(t, "tasks", p.Dataset())
}

func TestCached_InvalidateDuringFetchDiscardsStaleSnapshot(t *testing.T) {
	// Arrange: la primera lectura se queda a medias hasta que se abra gate
	cache := mocks.NewDummyCache()
	key := sharedCache.DatasetKey("tasks")
	var version atomic.Int64
	version.Store(1)
	var calls atomic.Int32
	entered := make(chan struct{})
	gate := make(chan struct{})
	inner := Func[int](func(ctx context.Context) ([]int, error) {
		v := int(version.Load())
		if calls.Add(1) == 1 {
			close(entered)
			<-gate
		}
		return []int{v}, nil
	})
	p := NewCached[int](inner, cache, "tasks", time.Minute, zap.NewNop())

	done := make(chan []int)
	go func() {
		items, _ := p.FetchAll(context.Background())
		done <- items
	}()
	<-entered

	// Act: una escritura invalida mientras la lectura sigue en curso
	version.Store(2)
	require.NoError(t, p.Invalidate(context.Background()))
	close(gate)
	stale := <-done

	// Assert: el snapshot viejo no vuelve a la caché
	assert.Equal(t, []int{1}, stale)
	assert.Never(t, func() bool { return cache.Has(key) }, 100*time.Millisecond, 5*time.Millisecond)
	fresh, err := p.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{2}, fresh)
}
