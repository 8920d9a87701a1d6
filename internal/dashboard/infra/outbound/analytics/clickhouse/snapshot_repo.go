package clickhouse

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
)

// SnapshotRepo implementa la interfaz SnapshotRepository para ClickHouse.
type SnapshotRepo struct {
	db *sql.DB
}

// Open abre la conexión y comprueba que responde.
func Open(addr string, dbName string) (*sql.DB, error) {
	conn := clickhouse.OpenDB(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: dbName,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
	})

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("could not ping clickhouse: %w", err)
	}
	return conn, nil
}

func NewSnapshotRepo(db *sql.DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// LogSnapshot inserta una fila por (dataset, campo, clave) en un solo lote.
func (r *SnapshotRepo) LogSnapshot(ctx context.Context, s dashboardDomain.Summary) error {
	// ClickHouse funciona mejor con inserciones en lotes.
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO dashboard_stats_log (dataset, field, key, count, total, event_time)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range s.Breakdowns {
		for _, c := range b.Counts {
			if _, err := stmt.ExecContext(ctx, b.Dataset, b.Field, c.Key, uint32(c.Count), uint32(b.Total), s.GeneratedAt); err != nil {
				// Si un registro falla, hacemos rollback de todo el lote.
				tx.Rollback()
				return fmt.Errorf("failed to log %s/%s/%s: %w", b.Dataset, b.Field, c.Key, err)
			}
		}
	}

	return tx.Commit()
}

// GetDailyTrend toma, para cada día, el recuento de la última foto del día.
func (r *SnapshotRepo) GetDailyTrend(ctx context.Context, dataset, field, key string, start, end time.Time) ([]dashboardDomain.TrendPoint, error) {
	query := `
		SELECT
			toStartOfDay(event_time) AS day,
			argMax(count, event_time) AS last_count
		FROM dashboard_stats_log
		WHERE dataset = ? AND field = ? AND key = ? AND event_time BETWEEN ? AND ?
		GROUP BY day
		ORDER BY day
	`
	rows, err := r.db.QueryContext(ctx, query, dataset, field, key, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trend := []dashboardDomain.TrendPoint{}
	for rows.Next() {
		var (
			p     dashboardDomain.TrendPoint
			count uint32
		)
		if err := rows.Scan(&p.Day, &count); err != nil {
			return nil, err
		}
		p.Count = int(count)
		trend = append(trend, p)
	}
	return trend, rows.Err()
}

// InitSchema crea la tabla en ClickHouse si no existe.
// Se particiona por mes y se ordena por los campos de consulta.
func (r *SnapshotRepo) InitSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS dashboard_stats_log (
			dataset    LowCardinality(String),
			field      LowCardinality(String),
			key        String,
			count      UInt32,
			total      UInt32,
			event_time DateTime64(3)
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(event_time)
		ORDER BY (dataset, field, key, event_time);
	`
	_, err := r.db.ExecContext(ctx, query)
	return err
}

// Verificación estática de la interfaz.
var _ dashboardDomain.SnapshotRepository = (*SnapshotRepo)(nil)
