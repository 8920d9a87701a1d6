package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/config"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	"github.com/davicafu/consentlab/internal/shared/platform/query"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		DataSource:      config.SourceSQLite,
		SQLitePath:      ":memory:",
		CacheTTL:        time.Minute,
		KafkaTopic:      "portal-datasets",
		OutboxPeriod:    10 * time.Millisecond,
		OutboxLimit:     10,
		DefaultPageSize: 10,
		MaxPageSize:     100,
	}
}

func TestWire_EndToEndWithoutExternalServices(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app, err := wire(ctx, testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()
	app.StartBackground(ctx)

	// Act: listado de solicitudes desde SQLite sembrado
	page, err := app.Applications.ListApplications(ctx, query.ListQuery{
		Sort: query.Sort{Field: "reference"},
		Page: listview.PageState{CurrentPage: 1, PageSize: 10},
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 30, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "BC-2024-0101", page.Items[0].Reference)

	summary, err := app.Dashboard.Summary(ctx)
	require.NoError(t, err)
	assert.Len(t, summary.Breakdowns, 6)
}

func TestWire_MoveTaskIsVisibleOnTheBoard(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	app, err := wire(ctx, testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer app.Close()
	app.StartBackground(ctx)

	board, err := app.Tasks.Board(ctx, nil)
	require.NoError(t, err)
	card := board[0].Tasks[0]

	_, err = app.Tasks.MoveTask(ctx, card.ID, string(taskDomain.ColumnDone))
	require.NoError(t, err)

	board, err = app.Tasks.Board(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, board[0].Count)
	assert.Equal(t, 6, board[3].Count)
	assert.Equal(t, taskDomain.ColumnDone, board[3].Tasks[0].Column)
}
