package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/service"
)

const assignmentColumns = `
			id,
			incident_id,
			volunteer_id,
			coordinator_id,
			status,
			distance_meters,
			matched_skills,
			priority,
			requested_at,
			accepted_at,
			rejected_at,
			started_at,
			completed_at,
			cancelled_at,
			rating,
			COALESCE(feedback, ''),
			notes,
			created_at,
			updated_at`

type AssignmentRepository struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) service.AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Create вставляет назначение и pending-запись в журнал волонтеров
// инцидента одной транзакцией. Уникальность пары (инцидент, волонтер)
// обеспечивает индекс: при конкурирующих вставках ровно одна проходит,
// вторая получает Conflict.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	matchedSkills, err := json.Marshal(assignment.MatchedSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal matched skills: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO assignments (incident_id, volunteer_id, coordinator_id, status, distance_meters, matched_skills, priority, requested_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at;
	`
	err = tx.QueryRow(ctx, query,
		assignment.IncidentID,
		assignment.VolunteerID,
		assignment.CoordinatorID,
		assignment.Status,
		assignment.DistanceM,
		matchedSkills,
		assignment.Priority,
		assignment.RequestedAt,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflict("assignment already exists for this incident and volunteer")
		}
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	subQuery := `
		INSERT INTO incident_volunteers (incident_id, volunteer_id, status)
		VALUES ($1, $2, $3);
	`
	if _, err := tx.Exec(ctx, subQuery, assignment.IncidentID, assignment.VolunteerID, models.AssignmentStatusPending); err != nil {
		return fmt.Errorf("failed to add incident volunteer entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignment creation: %w", err)
	}
	return nil
}

// GetByID возвращает назначение по его UUID
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE id = $1;`

	assignment, err := scanAssignment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", id.String())
		}
		return nil, fmt.Errorf("failed to get assignment by id: %w", err)
	}
	return assignment, nil
}

// List возвращает назначения по фильтру, новые первыми
func (r *AssignmentRepository) List(ctx context.Context, filter service.AssignmentFilter) ([]*models.Assignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM assignments WHERE 1=1`
	args := []any{}

	if filter.IncidentID != nil {
		args = append(args, *filter.IncidentID)
		query += fmt.Sprintf(" AND incident_id = $%d", len(args))
	}
	if filter.VolunteerID != nil {
		args = append(args, *filter.VolunteerID)
		query += fmt.Sprintf(" AND volunteer_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += fmt.Sprintf(" AND created_at <= $%d", len(args))
	}

	query += " ORDER BY created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	assignments := make([]*models.Assignment, 0)
	for rows.Next() {
		assignment, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment row: %w", err)
		}
		assignments = append(assignments, assignment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return assignments, nil
}

// ApplyTransition сохраняет переход назначения и связанные изменения
// инцидента одной транзакцией. Строка инцидента блокируется первой,
// поэтому конкурирующие переходы по одному инциденту сериализуются.
// Обновление назначения выполняется со сверкой исходного статуса:
// если другой переход успел зафиксироваться первым, возвращается
// InvalidTransition, а не молчаливая перезапись.
func (r *AssignmentRepository) ApplyTransition(ctx context.Context, assignment *models.Assignment, prevStatus, subStatus string, fromStatuses []string, toStatus string) (*models.Incident, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	incident, err := lockIncident(ctx, tx, assignment.IncidentID)
	if err != nil {
		return nil, false, err
	}

	if err := updateAssignmentTx(ctx, tx, assignment, prevStatus); err != nil {
		return nil, false, err
	}

	if subStatus != "" {
		if err := updateSubStatusTx(ctx, tx, assignment, subStatus); err != nil {
			return nil, false, err
		}
	}

	changed := false
	if toStatus != "" && contains(fromStatuses, incident.Status) {
		if _, err := tx.Exec(ctx, `UPDATE incidents SET status = $1, updated_at = NOW() WHERE id = $2;`, toStatus, incident.ID); err != nil {
			return nil, false, fmt.Errorf("failed to update incident status: %w", err)
		}
		incident.Status = toStatus
		changed = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit assignment transition: %w", err)
	}
	return incident, changed, nil
}

// Finish сохраняет терминальный переход (completed или cancelled).
// Под той же блокировкой строки инцидента проверяется, остались ли
// открытые назначения: если нет и инцидент еще не resolved, он
// переводится в resolved. Конкурирующие завершения не могут применить
// разрешение дважды.
func (r *AssignmentRepository) Finish(ctx context.Context, assignment *models.Assignment, prevStatus, subStatus string) (*models.Incident, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	incident, err := lockIncident(ctx, tx, assignment.IncidentID)
	if err != nil {
		return nil, false, err
	}

	if err := updateAssignmentTx(ctx, tx, assignment, prevStatus); err != nil {
		return nil, false, err
	}

	if err := updateSubStatusTx(ctx, tx, assignment, subStatus); err != nil {
		return nil, false, err
	}

	var openCount int
	countQuery := `
		SELECT COUNT(*)
		FROM assignments
		WHERE incident_id = $1 AND status NOT IN ('completed', 'cancelled');
	`
	if err := tx.QueryRow(ctx, countQuery, assignment.IncidentID).Scan(&openCount); err != nil {
		return nil, false, fmt.Errorf("failed to count open assignments: %w", err)
	}

	resolved := false
	if openCount == 0 && incident.Status != models.IncidentStatusResolved {
		resolveQuery := `
			UPDATE incidents SET
				status = $1,
				resolved_at = NOW(),
				updated_at = NOW()
			WHERE id = $2
			RETURNING resolved_at;
		`
		if err := tx.QueryRow(ctx, resolveQuery, models.IncidentStatusResolved, incident.ID).Scan(&incident.ResolvedAt); err != nil {
			return nil, false, fmt.Errorf("failed to resolve incident: %w", err)
		}
		incident.Status = models.IncidentStatusResolved
		resolved = true
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit assignment completion: %w", err)
	}
	return incident, resolved, nil
}

// AddNote дописывает заметку в журнал назначения (append-only)
func (r *AssignmentRepository) AddNote(ctx context.Context, id uuid.UUID, note models.Note) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal assignment note: %w", err)
	}

	query := `
		UPDATE assignments SET
			notes = notes || $1::jsonb,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, payload, id)
	if err != nil {
		return fmt.Errorf("failed to add assignment note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("assignment", id.String())
	}
	return nil
}

// lockIncident читает строку инцидента под блокировкой FOR UPDATE
func lockIncident(ctx context.Context, tx pgx.Tx, incidentID uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1 FOR UPDATE;`

	incident, err := scanIncident(tx.QueryRow(ctx, query, incidentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incident", incidentID.String())
		}
		return nil, fmt.Errorf("failed to lock incident: %w", err)
	}
	return incident, nil
}

// updateAssignmentTx сохраняет статус и отметки времени назначения.
// Условие по исходному статусу отсекает конкурирующий переход,
// зафиксировавшийся между чтением в сервисе и этой транзакцией.
func updateAssignmentTx(ctx context.Context, tx pgx.Tx, assignment *models.Assignment, prevStatus string) error {
	query := `
		UPDATE assignments SET
			status = $1,
			accepted_at = $2,
			rejected_at = $3,
			started_at = $4,
			completed_at = $5,
			cancelled_at = $6,
			rating = $7,
			feedback = $8,
			updated_at = NOW()
		WHERE id = $9 AND status = $10;
	`
	cmdTag, err := tx.Exec(ctx, query,
		assignment.Status,
		assignment.AcceptedAt,
		assignment.RejectedAt,
		assignment.StartedAt,
		assignment.CompletedAt,
		assignment.CancelledAt,
		assignment.Rating,
		assignment.Feedback,
		assignment.ID,
		prevStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		var current string
		if err := tx.QueryRow(ctx, `SELECT status FROM assignments WHERE id = $1;`, assignment.ID).Scan(&current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFound("assignment", assignment.ID.String())
			}
			return fmt.Errorf("failed to read assignment status: %w", err)
		}
		return apperrors.NewInvalidTransition("transition", current, prevStatus)
	}
	return nil
}

// updateSubStatusTx синхронизирует подстатус волонтера в журнале инцидента
func updateSubStatusTx(ctx context.Context, tx pgx.Tx, assignment *models.Assignment, subStatus string) error {
	query := `
		UPDATE incident_volunteers SET status = $1
		WHERE incident_id = $2 AND volunteer_id = $3;
	`
	if _, err := tx.Exec(ctx, query, subStatus, assignment.IncidentID, assignment.VolunteerID); err != nil {
		return fmt.Errorf("failed to update incident volunteer status: %w", err)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// scanAssignment читает строку назначения (jsonb-поля распаковываются)
func scanAssignment(row pgx.Row) (*models.Assignment, error) {
	assignment := &models.Assignment{}
	var matchedSkills, notes []byte

	err := row.Scan(
		&assignment.ID,
		&assignment.IncidentID,
		&assignment.VolunteerID,
		&assignment.CoordinatorID,
		&assignment.Status,
		&assignment.DistanceM,
		&matchedSkills,
		&assignment.Priority,
		&assignment.RequestedAt,
		&assignment.AcceptedAt,
		&assignment.RejectedAt,
		&assignment.StartedAt,
		&assignment.CompletedAt,
		&assignment.CancelledAt,
		&assignment.Rating,
		&assignment.Feedback,
		&notes,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(matchedSkills, &assignment.MatchedSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal matched skills: %w", err)
	}
	if err := json.Unmarshal(notes, &assignment.Notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal assignment notes: %w", err)
	}
	return assignment, nil
}
