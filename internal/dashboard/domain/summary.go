package domain

import (
	"context"
	"errors"
	"time"

	"github.com/davicafu/consentlab/internal/shared/platform/listview"
)

// ErrSnapshotsDisabled: no hay almacén analítico configurado.
var ErrSnapshotsDisabled = errors.New("dashboard snapshots are not configured")

// Breakdown es el recuento de un dataset agrupado por un campo.
type Breakdown struct {
	Dataset string                   `json:"dataset"`
	Field   string                   `json:"field"`
	Total   int                      `json:"total"`
	Counts  []listview.Count[string] `json:"counts"`
}

// Summary es la foto del panel municipal en un instante.
type Summary struct {
	GeneratedAt time.Time   `json:"generatedAt"`
	Breakdowns  []Breakdown `json:"breakdowns"`
}

// Find devuelve el desglose de dataset por field.
func (s Summary) Find(dataset, field string) (Breakdown, bool) {
	for _, b := range s.Breakdowns {
		if b.Dataset == dataset && b.Field == field {
			return b, true
		}
	}
	return Breakdown{}, false
}

// TrendPoint es el último recuento registrado de un día.
type TrendPoint struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// SnapshotRepository guarda las fotos del panel para analítica histórica.
type SnapshotRepository interface {
	LogSnapshot(ctx context.Context, s Summary) error
	GetDailyTrend(ctx context.Context, dataset, field, key string, start, end time.Time) ([]TrendPoint, error)
}
