package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
	sharedDomain "github.com/davicafu/consentlab/internal/shared/domain"
	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

// StatsSource lo cumplen los servicios de cada vista (solicitudes, consultas, documentos, tareas).
type StatsSource interface {
	Stats(ctx context.Context, criteria sharedDomain.Criteria, field string) ([]listview.Count[string], error)
}

// Source asocia un dataset con los campos que se muestran en el panel.
type Source struct {
	Dataset string
	Stats   StatsSource
	Fields  []string
}

type DashboardService struct {
	sources []Source
	repo    dashboardDomain.SnapshotRepository
	now     func() time.Time
	log     *zap.Logger
}

// NewDashboardService: repo puede ser nil si no hay ClickHouse.
func NewDashboardService(sources []Source, repo dashboardDomain.SnapshotRepository, now func() time.Time, log *zap.Logger) *DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardService{sources: sources, repo: repo, now: now, log: log}
}

// Summary lanza en paralelo un recuento por dataset y campo. El primer error
// cancela el resto. El orden de salida es el de sources y Fields.
func (s *DashboardService) Summary(ctx context.Context) (dashboardDomain.Summary, error) {
	type job struct {
		src   Source
		field string
	}
	var jobs []job
	for _, src := range s.sources {
		for _, f := range src.Fields {
			jobs = append(jobs, job{src: src, field: f})
		}
	}

	breakdowns := make([]dashboardDomain.Breakdown, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		g.Go(func() error {
			counts, err := j.src.Stats.Stats(gctx, nil, j.field)
			if err != nil {
				return fmt.Errorf("%s by %s: %w", j.src.Dataset, j.field, err)
			}
			total := 0
			for _, c := range counts {
				total += c.Count
			}
			breakdowns[i] = dashboardDomain.Breakdown{Dataset: j.src.Dataset, Field: j.field, Total: total, Counts: counts}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.log.Error("Failed to build dashboard summary", zap.Error(err))
		return dashboardDomain.Summary{}, err
	}

	return dashboardDomain.Summary{GeneratedAt: s.now().UTC(), Breakdowns: breakdowns}, nil
}

// RecordSnapshot calcula el resumen y lo guarda en el almacén analítico.
func (s *DashboardService) RecordSnapshot(ctx context.Context) (dashboardDomain.Summary, error) {
	if s.repo == nil {
		return dashboardDomain.Summary{}, dashboardDomain.ErrSnapshotsDisabled
	}
	summary, err := s.Summary(ctx)
	if err != nil {
		return dashboardDomain.Summary{}, err
	}
	if err := s.repo.LogSnapshot(ctx, summary); err != nil {
		s.log.Error("Failed to log dashboard snapshot", zap.Error(err))
		return dashboardDomain.Summary{}, err
	}
	return summary, nil
}

// Trend devuelve la evolución diaria de un recuento (p. ej. applications/status/Approved).
func (s *DashboardService) Trend(ctx context.Context, dataset, field, key string, start, end time.Time) ([]dashboardDomain.TrendPoint, error) {
	if s.repo == nil {
		return nil, dashboardDomain.ErrSnapshotsDisabled
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: trend range ends before it starts", sharedDomain.ErrInvalidArgument)
	}
	return s.repo.GetDailyTrend(ctx, dataset, field, key, start, end)
}

// StartSnapshots guarda una foto cada interval hasta que ctx termine. Bloquea.
func (s *DashboardService) StartSnapshots(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.log.Info("📸 Dashboard snapshots started", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("🛑 Dashboard snapshots stopped")
			return
		case <-ticker.C:
			if _, err := s.RecordSnapshot(ctx); err != nil {
				s.log.Warn("⚠️ Dashboard snapshot failed", zap.Error(err))
			}
		}
	}
}
