package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	sharedSQLite "github.com/davicafu/consentlab/internal/shared/infra/db/sqlite"
)

const applicationsSchema = `
CREATE TABLE IF NOT EXISTS applications (
	id TEXT PRIMARY KEY,
	reference TEXT NOT NULL UNIQUE,
	address TEXT NOT NULL,
	applicant TEXT NOT NULL,
	type TEXT NOT NULL,
	status TEXT NOT NULL,
	officer TEXT NOT NULL,
	department TEXT NOT NULL,
	lodged_at TEXT NOT NULL,
	last_modified TEXT NOT NULL
);`

type ApplicationRepoSQLite struct {
	db *sql.DB
}

func NewApplicationRepoSQLite(db *sql.DB) *ApplicationRepoSQLite {
	return &ApplicationRepoSQLite{db: db}
}

// Migrate crea la tabla si no existe.
func (r *ApplicationRepoSQLite) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, applicationsSchema); err != nil {
		return fmt.Errorf("create applications schema: %w", err)
	}
	return nil
}

// Seed inserta o reemplaza las solicitudes en una sola transacción.
func (r *ApplicationRepoSQLite) Seed(ctx context.Context, apps []consentDomain.Application) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO applications
		 (id, reference, address, applicant, type, status, officer, department, lodged_at, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, a := range apps {
		if err = a.Validate(); err != nil {
			return err
		}
		if _, err = stmt.ExecContext(ctx, a.ID, a.Reference, a.Address, a.Applicant, a.Type, string(a.Status),
			a.Officer, a.Department, sharedSQLite.FormatTime(a.LodgedAt), sharedSQLite.FormatTime(a.LastModified)); err != nil {
			return fmt.Errorf("seed application %s: %w", a.Reference, err)
		}
	}
	return tx.Commit()
}

// FetchAll devuelve todas las solicitudes ordenadas por fecha de presentación.
func (r *ApplicationRepoSQLite) FetchAll(ctx context.Context) ([]consentDomain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reference, address, applicant, type, status, officer, department, lodged_at, last_modified
		 FROM applications ORDER BY lodged_at, reference`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	apps := []consentDomain.Application{}
	for rows.Next() {
		var (
			a                  consentDomain.Application
			status             string
			lodged, lastChange string
		)
		if err := rows.Scan(&a.ID, &a.Reference, &a.Address, &a.Applicant, &a.Type, &status,
			&a.Officer, &a.Department, &lodged, &lastChange); err != nil {
			return nil, err
		}
		a.Status = consentDomain.Status(status)
		if a.LodgedAt, err = sharedSQLite.ParseTime(lodged); err != nil {
			return nil, fmt.Errorf("application %s: lodged_at: %w", a.ID, err)
		}
		if a.LastModified, err = sharedSQLite.ParseTime(lastChange); err != nil {
			return nil, fmt.Errorf("application %s: last_modified: %w", a.ID, err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

var _ consentDomain.ApplicationRepository = (*ApplicationRepoSQLite)(nil)
