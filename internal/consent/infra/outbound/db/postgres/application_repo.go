package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
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
	lodged_at TIMESTAMPTZ NOT NULL,
	last_modified TIMESTAMPTZ NOT NULL
)`

type ApplicationRepoPostgres struct {
	db *sql.DB
}

// Open abre la conexión con el driver pgx registrado como "pgx".
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func NewApplicationRepoPostgres(db *sql.DB) *ApplicationRepoPostgres {
	return &ApplicationRepoPostgres{db: db}
}

func (r *ApplicationRepoPostgres) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, applicationsSchema); err != nil {
		return fmt.Errorf("create applications schema: %w", err)
	}
	return nil
}

// Seed hace upsert de las solicitudes en una transacción.
func (r *ApplicationRepoPostgres) Seed(ctx context.Context, apps []consentDomain.Application) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, a := range apps {
		if err = a.Validate(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO applications
			 (id, reference, address, applicant, type, status, officer, department, lodged_at, last_modified)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			 ON CONFLICT (id) DO UPDATE SET
			   reference=EXCLUDED.reference, address=EXCLUDED.address, applicant=EXCLUDED.applicant,
			   type=EXCLUDED.type, status=EXCLUDED.status, officer=EXCLUDED.officer,
			   department=EXCLUDED.department, lodged_at=EXCLUDED.lodged_at, last_modified=EXCLUDED.last_modified`,
			a.ID, a.Reference, a.Address, a.Applicant, a.Type, string(a.Status), a.Officer, a.Department,
			a.LodgedAt.UTC(), a.LastModified.UTC(),
		)
		if err != nil {
			return fmt.Errorf("seed application %s: %w", a.Reference, err)
		}
	}
	return tx.Commit()
}

func (r *ApplicationRepoPostgres) FetchAll(ctx context.Context) ([]consentDomain.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reference, address, applicant, type, status, officer, department, lodged_at, last_modified
		 FROM applications ORDER BY lodged_at, reference`)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	apps := []consentDomain.Application{}
	for rows.Next() {
		var a consentDomain.Application
		var status string
		if err := rows.Scan(&a.ID, &a.Reference, &a.Address, &a.Applicant, &a.Type, &status,
			&a.Officer, &a.Department, &a.LodgedAt, &a.LastModified); err != nil {
			return nil, err
		}
		a.Status = consentDomain.Status(status)
		a.LodgedAt = a.LodgedAt.UTC()
		a.LastModified = a.LastModified.UTC()
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

var _ consentDomain.ApplicationRepository = (*ApplicationRepoPostgres)(nil)
