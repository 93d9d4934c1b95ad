package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/propertypro/leads-backend/internal/entity"
)

// PostgresLeadStore is the production-grade alternative to the JSON file
// store, selected when DATABASE_URL is set. Per-row storage closes the
// whole-collection overwrite race the file layout carries.
type PostgresLeadStore struct {
	DB  *sql.DB
	log *zap.Logger
}

func NewPostgresLeadStore(db *sql.DB, log *zap.Logger) *PostgresLeadStore {
	return &PostgresLeadStore{DB: db, log: log}
}

// EnsureSchema creates the leads table on first run.
func (s *PostgresLeadStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS leads (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			email        TEXT NOT NULL,
			phone        TEXT NOT NULL,
			status       TEXT NOT NULL,
			tags         TEXT[] NOT NULL DEFAULT '{}',
			source       TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL,
			last_contact TIMESTAMPTZ,
			value        DOUBLE PRECISION,
			notes        TEXT NOT NULL DEFAULT ''
		)
	`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}

func (s *PostgresLeadStore) All(ctx context.Context) ([]entity.Lead, error) {
	query := `
		SELECT id, name, email, phone, status, tags, source, created_at, last_contact, value, notes
		FROM leads
		ORDER BY created_at
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		s.log.Error("failed to query leads", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	leads := []entity.Lead{}
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

func (s *PostgresLeadStore) Append(ctx context.Context, lead entity.Lead) error {
	query := `
		INSERT INTO leads (id, name, email, phone, status, tags, source, created_at, last_contact, value, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.DB.ExecContext(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Status,
		pq.Array(lead.Tags),
		lead.Source,
		lead.CreatedAt,
		lead.LastContact,
		lead.Value,
		lead.Notes,
	)
	if err != nil {
		s.log.Error("failed to insert lead", zap.String("lead_id", lead.ID), zap.Error(err))
	}
	return err
}

func (s *PostgresLeadStore) Update(ctx context.Context, id string, patch entity.LeadPatch) (*entity.Lead, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `
		SELECT id, name, email, phone, status, tags, source, created_at, last_contact, value, notes
		FROM leads WHERE id = $1 FOR UPDATE
	`, id)

	lead, err := scanLead(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrLeadNotFound
		}
		return nil, err
	}

	patch.ApplyTo(lead)

	_, err = tx.ExecContext(ctx, `
		UPDATE leads
		SET name = $2, email = $3, phone = $4, status = $5, tags = $6,
		    last_contact = $7, value = $8, notes = $9
		WHERE id = $1
	`,
		lead.ID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Status,
		pq.Array(lead.Tags),
		lead.LastContact,
		lead.Value,
		lead.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *PostgresLeadStore) Delete(ctx context.Context, id string) error {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrLeadNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var (
		lead        entity.Lead
		tags        pq.StringArray
		lastContact sql.NullTime
		value       sql.NullFloat64
	)

	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&lead.Phone,
		&lead.Status,
		&tags,
		&lead.Source,
		&lead.CreatedAt,
		&lastContact,
		&value,
		&lead.Notes,
	)
	if err != nil {
		return nil, err
	}

	lead.Tags = []string(tags)
	if lead.Tags == nil {
		lead.Tags = []string{}
	}
	if lastContact.Valid {
		t := lastContact.Time
		lead.LastContact = &t
	}
	if value.Valid {
		v := value.Float64
		lead.Value = &v
	}
	return &lead, nil
}
