package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	sharedEvents "github.com/davicafu/consentlab/internal/shared/events"
)

type fakeInvalidator struct {
	dataset string
	calls   int
	err     error
}

func (f *fakeInvalidator) Dataset() string { return f.dataset }

func (f *fakeInvalidator) Invalidate(ctx context.Context) error {
	f.calls++
	return f.err
}

type taskMoved struct {
	ID string `json:"id"`
}

func encode(t *testing.T, eventType string, data interface{}) []byte {
	t.Helper()
	evt, err := sharedEvents.NewIntegrationEvent(eventType, "k", data, time.Now())
	require.NoError(t, err)
	raw, err := json.Marshal(evt)
	require.NoError(t, err)
	return raw
}

func newConsumer(invs ...Invalidator) *DatasetConsumer {
	registry := sharedEvents.MergeRegistries(
		sharedEvents.NewDatasetRegistry(),
		map[string]sharedEvents.EventMetadata{
			"task.moved": {Type: reflect.TypeOf(taskMoved{}), Topic: "tasks", Dataset: "tasks"},
		},
	)
	return NewDatasetConsumer(registry, zap.NewNop(), invs...)
}

func TestDatasetConsumer_DatasetChanged(t *testing.T) {
	apps := &fakeInvalidator{dataset: "applications"}
	docs := &fakeInvalidator{dataset: "documents"}
	c := newConsumer(apps, docs)

	c.HandleMessage(context.Background(), "", encode(t, sharedEvents.DatasetChangedType,
		sharedEvents.DatasetChanged{Dataset: "applications", Reason: "nightly import"}))

	assert.Equal(t, 1, apps.calls)
	assert.Equal(t, 0, docs.calls)
}

func TestDatasetConsumer_RegistryEvent(t *testing.T) {
	tasks := &fakeInvalidator{dataset: "tasks"}
	c := newConsumer(tasks)

	c.HandleMessage(context.Background(), "", encode(t, "task.moved", taskMoved{ID: "1"}))

	assert.Equal(t, 1, tasks.calls)
}

func TestDatasetConsumer_IgnoresGarbageAndUnknown(t *testing.T) {
	tasks := &fakeInvalidator{dataset: "tasks"}
	c := newConsumer(tasks)

	c.HandleMessage(context.Background(), "", []byte("not json"))
	c.HandleMessage(context.Background(), "", encode(t, "user.created", map[string]string{}))
	c.HandleMessage(context.Background(), "", encode(t, sharedEvents.DatasetChangedType,
		sharedEvents.DatasetChanged{Dataset: "unknown"}))

	assert.Equal(t, 0, tasks.calls)
}

func TestDatasetConsumer_ContinuesAfterFailure(t *testing.T) {
	failing := &fakeInvalidator{dataset: "tasks", err: errors.New("redis down")}
	ok := &fakeInvalidator{dataset: "tasks"}
	c := newConsumer(failing, ok)

	c.HandleMessage(context.Background(), "", encode(t, "task.moved", taskMoved{ID: "1"}))

	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, ok.calls)
}
