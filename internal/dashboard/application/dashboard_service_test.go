package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	consentApp "github.com/davicafu/consentlab/internal/consent/application"
	consentFixtures "github.com/davicafu/consentlab/internal/consent/infra/outbound/fixtures"
	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
	taskApp "github.com/davicafu/consentlab/internal/task/application"
	taskFixtures "github.com/davicafu/consentlab/internal/task/infra/outbound/fixtures"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type stubSource struct {
	counts map[string][]listview.Count[string]
	err    error
}

func (s stubSource) Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.counts[field], nil
}

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) LogSnapshot(ctx context.Context, s dashboardDomain.Summary) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockSnapshotRepo) GetDailyTrend(ctx context.Context, dataset, field, key string, start, end time.Time) ([]dashboardDomain.TrendPoint, error) {
	args := m.Called(ctx, dataset, field, key, start, end)
	points, _ := args.Get(0).([]dashboardDomain.TrendPoint)
	return points, args.Error(1)
}

func fixtureSources(t *testing.T) []Source {
	t.Helper()
	apps, err := consentFixtures.NewApplicationRepo()
	require.NoError(t, err)
	tasks, err := taskFixtures.NewTaskRepo()
	require.NoError(t, err)

	return []Source{
		{Dataset: "applications", Stats: consentApp.NewApplicationService(apps, zap.NewNop()), Fields: []string{"status", "department"}},
		{Dataset: "tasks", Stats: taskApp.NewTaskService(tasks, nil, nil, nil, zap.NewNop()), Fields: []string{"column"}},
	}
}

func TestSummary_FansOutOverSources(t *testing.T) {
	// Arrange
	service := NewDashboardService(fixtureSources(t), nil, func() time.Time { return fixedNow }, zap.NewNop())

	// Act
	summary, err := service.Summary(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, fixedNow, summary.GeneratedAt)
	require.Len(t, summary.Breakdowns, 3)
	assert.Equal(t, "applications", summary.Breakdowns[0].Dataset)
	assert.Equal(t, "status", summary.Breakdowns[0].Field)
	assert.Equal(t, "tasks", summary.Breakdowns[2].Dataset)

	byDept, ok := summary.Find("applications", "department")
	require.True(t, ok)
	assert.Equal(t, 30, byDept.Total)
	assert.Len(t, byDept.Counts, 3)

	byColumn, ok := summary.Find("tasks", "column")
	require.True(t, ok)
	assert.Equal(t, 20, byColumn.Total)
	for _, c := range byColumn.Counts {
		assert.Equal(t, 5, c.Count, c.Key)
	}
}

func TestSummary_FirstErrorWins(t *testing.T) {
	down := errors.New("mongo down")
	sources := []Source{
		{Dataset: "applications", Stats: stubSource{counts: map[string][]listview.Count[string]{"status": {{Key: "Lodged", Count: 1}}}}, Fields: []string{"status"}},
		{Dataset: "referrals", Stats: stubSource{err: down}, Fields: []string{"status"}},
	}
	service := NewDashboardService(sources, nil, nil, zap.NewNop())

	_, err := service.Summary(context.Background())

	assert.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "referrals by status")
}

func TestSummary_UnknownFieldIsInvalidArgument(t *testing.T) {
	sources := fixtureSources(t)
	sources[0].Fields = []string{"colour"}
	service := NewDashboardService(sources, nil, nil, zap.NewNop())

	_, err := service.Summary(context.Background())

	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

func TestRecordSnapshot(t *testing.T) {
	// Arrange
	repo := new(mockSnapshotRepo)
	repo.On("LogSnapshot", mock.Anything, mock.MatchedBy(func(s dashboardDomain.Summary) bool {
		return len(s.Breakdowns) == 3 && s.GeneratedAt.Equal(fixedNow)
	})).Return(nil).Once()
	service := NewDashboardService(fixtureSources(t), repo, func() time.Time { return fixedNow }, zap.NewNop())

	// Act
	_, err := service.RecordSnapshot(context.Background())

	// Assert
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestRecordSnapshot_Disabled(t *testing.T) {
	service := NewDashboardService(fixtureSources(t), nil, nil, zap.NewNop())

	_, err := service.RecordSnapshot(context.Background())
	assert.ErrorIs(t, err, dashboardDomain.ErrSnapshotsDisabled)

	_, err = service.Trend(context.Background(), "applications", "status", "Approved", fixedNow, fixedNow)
	assert.ErrorIs(t, err, dashboardDomain.ErrSnapshotsDisabled)
}

func TestTrend(t *testing.T) {
	repo := new(mockSnapshotRepo)
	start, end := fixedNow.AddDate(0, 0, -7), fixedNow
	points := []dashboardDomain.TrendPoint{{Day: start, Count: 4}}
	repo.On("GetDailyTrend", mock.Anything, "applications", "status", "Approved", start, end).Return(points, nil)
	service := NewDashboardService(nil, repo, nil, zap.NewNop())

	got, err := service.Trend(context.Background(), "applications", "status", "Approved", start, end)
	require.NoError(t, err)
	assert.Equal(t, points, got)

	_, err = service.Trend(context.Background(), "applications", "status", "Approved", end, start)
	assert.ErrorIs(t, err, sharedDomain.ErrInvalidArgument)
}

func TestStartSnapshots_StopsOnCancel(t *testing.T) {
	repo := new(mockSnapshotRepo)
	recorded := make(chan struct{}, 1)
	repo.On("LogSnapshot", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
		select {
		case recorded <- struct{}{}:
		default:
		}
	})
	service := NewDashboardService(fixtureSources(t), repo, nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		service.StartSnapshots(ctx, 10*time.Millisecond)
		close(done)
	}()

	select {
	case <-recorded:
	case <-time.After(2 * time.Second):
		t.Fatal("no snapshot recorded")
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("StartSnapshots did not stop")
	}
}
