package repository

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/schooldesk/neis-dashboard/internal/models"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *models.Assessment) error
	GetAll(ctx context.Context) ([]models.Assessment, error)
}

type assessmentRepository struct {
	*SQLiteRepository
}

func NewAssessmentRepository(db *sql.DB, logger zerolog.Logger) AssessmentRepository {
	return &assessmentRepository{
		SQLiteRepository: NewSQLiteRepository(db, logger),
	}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	query := `
		INSERT INTO assessments (subject, title, due_date, detail, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		assessment.Subject,
		assessment.Title,
		assessment.DueDate,
		assessment.Detail,
		assessment.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	assessment.ID = id

	return nil
}

// GetAll returns every record ordered by the literal due_date string.
// Malformed or differently-formatted dates sort bytewise on purpose.
func (r *assessmentRepository) GetAll(ctx context.Context) ([]models.Assessment, error) {
	query := `
		SELECT id, subject, title, due_date, detail, created_at
		FROM assessments
		ORDER BY due_date
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assessments []models.Assessment
	for rows.Next() {
		var assessment models.Assessment
		err := rows.Scan(
			&assessment.ID,
			&assessment.Subject,
			&assessment.Title,
			&assessment.DueDate,
			&assessment.Detail,
			&assessment.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		assessments = append(assessments, assessment)
	}

	return assessments, rows.Err()
}
