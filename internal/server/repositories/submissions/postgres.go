// Package submissions stores radicaciones: a PostgreSQL implementation over
// dbx.DBTX and an in-memory one for development and tests.
package submissions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/radicacion/internal/common"
	"github.com/dmitrijs2005/radicacion/internal/dbx"
	"github.com/dmitrijs2005/radicacion/internal/server/models"
)

// PostgresRepository implements Repository over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts the submission row and one row per expected file. Run it
// inside dbx.WithTx so a failure leaves nothing behind.
func (r *PostgresRepository) Create(ctx context.Context, s *models.Submission) error {
	query := `
		INSERT INTO submissions (id, radicado, user_id, identification_type, identification_number,
			patient_name, service, service_category, observations, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Radicado, s.UserID, s.IdentificationType, s.IdentificationNumber,
		s.PatientName, s.Service, s.ServiceCategory, s.Observations, string(s.Status), s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	fileQuery := `
		INSERT INTO submission_files (id, submission_id, category, original_name, path, size, ordinal, present)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, f := range s.Files {
		_, err := r.db.ExecContext(ctx, fileQuery,
			f.ID, s.ID, string(f.Category), f.OriginalName, f.Path, f.Size, f.Ordinal, f.Present)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}
	return nil
}

const selectSubmission = `
	SELECT id, radicado, user_id, identification_type, identification_number, patient_name,
		service, service_category, observations, status, created_at, updated_at
	FROM submissions
`

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Submission, error) {
	return r.get(ctx, selectSubmission+` WHERE id = $1`, id)
}

func (r *PostgresRepository) GetByRadicado(ctx context.Context, radicado string) (*models.Submission, error) {
	return r.get(ctx, selectSubmission+` WHERE radicado = $1`, radicado)
}

func (r *PostgresRepository) get(ctx context.Context, query string, arg string) (*models.Submission, error) {
	var s models.Submission
	var status string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&s.ID, &s.Radicado, &s.UserID, &s.IdentificationType, &s.IdentificationNumber, &s.PatientName,
		&s.Service, &s.ServiceCategory, &s.Observations, &status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	s.Status = models.SubmissionStatus(status)

	files, err := r.files(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	s.Files = files
	return &s, nil
}

func (r *PostgresRepository) files(ctx context.Context, submissionID string) ([]*models.SubmissionFile, error) {
	query := `
		SELECT id, category, original_name, path, size, ordinal, present
		FROM submission_files
		WHERE submission_id = $1
		ORDER BY category, ordinal
	`
	rows, err := r.db.QueryContext(ctx, query, submissionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select files: %w", err)
	}
	defer rows.Close()

	var result []*models.SubmissionFile
	for rows.Next() {
		f := models.SubmissionFile{SubmissionID: submissionID}
		var category string
		if err := rows.Scan(&f.ID, &category, &f.OriginalName, &f.Path, &f.Size, &f.Ordinal, &f.Present); err != nil {
			return nil, err
		}
		f.Category = common.Category(category)
		result = append(result, &f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) SetFilePresent(ctx context.Context, fileID string, present bool) error {
	return r.execOne(ctx, `UPDATE submission_files SET present = $2 WHERE id = $1`, fileID, present)
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status models.SubmissionStatus) error {
	return r.execOne(ctx, `UPDATE submissions SET status = $2, updated_at = now() WHERE id = $1`, id, string(status))
}

// Delete removes the submission; its files go with it (ON DELETE CASCADE).
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM submissions WHERE id = $1`, id)
}

func (r *PostgresRepository) execOne(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	switch n {
	case 1:
		return nil
	case 0:
		return common.ErrorNotFound
	default:
		return fmt.Errorf("unexpected rows affected: %d", n)
	}
}

func (r *PostgresRepository) ListPendingBefore(ctx context.Context, before time.Time) ([]string, error) {
	query := `SELECT radicado FROM submissions WHERE status = $1 AND created_at < $2 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, string(models.StatusPending), before)
	if err != nil {
		return nil, fmt.Errorf("failed to select pending: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var radicado string
		if err := rows.Scan(&radicado); err != nil {
			return nil, err
		}
		result = append(result, radicado)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// uniqueViolation is the SQLSTATE PostgreSQL reports for a duplicate key.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
