package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/service"
)

const incidentColumns = `
			id,
			title,
			description,
			severity,
			status,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			COALESCE(address, ''),
			reported_by,
			verified_by,
			verified_at,
			required_skills,
			urgency_level,
			escalation_level,
			resolved_at,
			closed_at,
			notes,
			created_at,
			updated_at`

type IncidentRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewIncidentRepository(db *pgxpool.Pool, redisClient *redis.Client) service.IncidentRepository {
	return &IncidentRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись об инциденте в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.Incident) error {
	requiredSkills, err := json.Marshal(incident.RequiredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal required skills: %w", err)
	}

	query := `
		INSERT INTO incidents (title, description, severity, status, location, address, reported_by, required_skills, urgency_level)
		VALUES ($1, $2, $3, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7, $8, $9, $10)
		RETURNING id, created_at, updated_at;
	`
	err = r.db.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Severity,
		incident.Status,
		incident.Location.Longitude,
		incident.Location.Latitude,
		incident.Address,
		incident.ReportedBy,
		requiredSkills,
		incident.UrgencyLevel,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident: %w", err)
	}
	return nil
}

// GetByID возвращает инцидент по его UUID вместе с записями
// о назначенных волонтерах
func (r *IncidentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE id = $1;`

	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("incident", id.String())
		}
		return nil, fmt.Errorf("failed to get incident by id: %w", err)
	}

	if err := r.loadAssignedVolunteers(ctx, incident); err != nil {
		return nil, err
	}
	return incident, nil
}

// Update сохраняет изменяемые поля инцидента
func (r *IncidentRepository) Update(ctx context.Context, incident *models.Incident) error {
	requiredSkills, err := json.Marshal(incident.RequiredSkills)
	if err != nil {
		return fmt.Errorf("failed to marshal required skills: %w", err)
	}

	query := `
		UPDATE incidents SET
			title = $1,
			description = $2,
			severity = $3,
			status = $4,
			location = ST_SetSRID(ST_MakePoint($5, $6), 4326),
			address = $7,
			verified_by = $8,
			verified_at = $9,
			required_skills = $10,
			urgency_level = $11,
			escalation_level = $12,
			resolved_at = $13,
			closed_at = $14,
			updated_at = NOW()
		WHERE id = $15;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		incident.Title,
		incident.Description,
		incident.Severity,
		incident.Status,
		incident.Location.Longitude,
		incident.Location.Latitude,
		incident.Address,
		incident.VerifiedBy,
		incident.VerifiedAt,
		requiredSkills,
		incident.UrgencyLevel,
		incident.EscalationLevel,
		incident.ResolvedAt,
		incident.ClosedAt,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("incident", incident.ID.String())
	}
	return nil
}

// UpdateEscalation сохраняет поля эскалации со сверкой исходного уровня.
// Два конкурирующих повышения читают один и тот же уровень; условие
// по escalation_level пропускает только первое, второе получает Conflict
// и не теряет инкремент молча.
func (r *IncidentRepository) UpdateEscalation(ctx context.Context, incident *models.Incident, prevLevel int) error {
	query := `
		UPDATE incidents SET
			severity = $1,
			urgency_level = $2,
			escalation_level = $3,
			updated_at = NOW()
		WHERE id = $4 AND escalation_level = $5;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		incident.Severity,
		incident.UrgencyLevel,
		incident.EscalationLevel,
		incident.ID,
		prevLevel,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident escalation: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM incidents WHERE id = $1);`, incident.ID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check incident existence: %w", err)
		}
		if !exists {
			return apperrors.NewNotFound("incident", incident.ID.String())
		}
		return apperrors.NewConflict("incident was escalated concurrently")
	}
	return nil
}

// List возвращает инциденты по фильтру с пагинацией
func (r *IncidentRepository) List(ctx context.Context, filter service.IncidentFilter) ([]*models.Incident, error) {
	query := `SELECT ` + incidentColumns + ` FROM incidents WHERE 1=1`
	args := []any{}

	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Severity != "" {
		args = append(args, filter.Severity)
		query += fmt.Sprintf(" AND severity = $%d", len(args))
	}
	if filter.Near != nil {
		args = append(args, filter.Near.Longitude, filter.Near.Latitude, filter.RadiusMeters)
		query += fmt.Sprintf(" AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography, $%d)",
			len(args)-2, len(args)-1, len(args))
	}

	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d;", len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.Incident, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

// AddNote дописывает заметку в журнал инцидента (append-only)
func (r *IncidentRepository) AddNote(ctx context.Context, id uuid.UUID, note models.Note) error {
	payload, err := json.Marshal(note)
	if err != nil {
		return fmt.Errorf("failed to marshal incident note: %w", err)
	}

	query := `
		UPDATE incidents SET
			notes = notes || $1::jsonb,
			updated_at = NOW()
		WHERE id = $2;
	`
	cmdTag, err := r.db.Exec(ctx, query, payload, id)
	if err != nil {
		return fmt.Errorf("failed to add incident note: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFound("incident", id.String())
	}
	return nil
}

// GetIncidentFromCache пытается получить инцидент из Redis
func (r *IncidentRepository) GetIncidentFromCache(ctx context.Context, id uuid.UUID) (*models.Incident, error) {
	key := fmt.Sprintf("incident:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get incident from cache: %w", err)
	}

	incident := &models.Incident{}
	if err := json.Unmarshal(val, incident); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident from cache: %w", err)
	}
	return incident, nil
}

// SetIncidentCache сохраняет инцидент в Redis
func (r *IncidentRepository) SetIncidentCache(ctx context.Context, incident *models.Incident) error {
	key := fmt.Sprintf("incident:%s", incident.ID.String())
	val, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident for cache: %w", err)
	}
	// Устанавливаем срок жизни кэша, например, 5 минут
	if err := r.redisClient.Set(ctx, key, val, 5*time.Minute).Err(); err != nil {
		return fmt.Errorf("failed to set incident in cache: %w", err)
	}
	return nil
}

// InvalidateIncidentCache удаляет инцидент из Redis кэша
func (r *IncidentRepository) InvalidateIncidentCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("incident:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate incident cache: %w", err)
	}
	return nil
}

// loadAssignedVolunteers подгружает денормализованные записи
// о назначенных волонтерах инцидента
func (r *IncidentRepository) loadAssignedVolunteers(ctx context.Context, incident *models.Incident) error {
	query := `
		SELECT volunteer_id, status, assigned_at
		FROM incident_volunteers
		WHERE incident_id = $1
		ORDER BY assigned_at;
	`
	rows, err := r.db.Query(ctx, query, incident.ID)
	if err != nil {
		return fmt.Errorf("failed to load assigned volunteers: %w", err)
	}
	defer rows.Close()

	incident.AssignedVolunteers = make([]models.AssignedVolunteer, 0)
	for rows.Next() {
		var av models.AssignedVolunteer
		if err := rows.Scan(&av.VolunteerID, &av.Status, &av.AssignedAt); err != nil {
			return fmt.Errorf("failed to scan assigned volunteer row: %w", err)
		}
		incident.AssignedVolunteers = append(incident.AssignedVolunteers, av)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error assigned volunteers iteration: %w", err)
	}
	return nil
}

// scanIncident читает строку инцидента (jsonb-поля распаковываются)
func scanIncident(row pgx.Row) (*models.Incident, error) {
	incident := &models.Incident{}
	var requiredSkills, notes []byte

	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Severity,
		&incident.Status,
		&incident.Location.Latitude,
		&incident.Location.Longitude,
		&incident.Address,
		&incident.ReportedBy,
		&incident.VerifiedBy,
		&incident.VerifiedAt,
		&requiredSkills,
		&incident.UrgencyLevel,
		&incident.EscalationLevel,
		&incident.ResolvedAt,
		&incident.ClosedAt,
		&notes,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(requiredSkills, &incident.RequiredSkills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal required skills: %w", err)
	}
	if err := json.Unmarshal(notes, &incident.Notes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal incident notes: %w", err)
	}
	return incident, nil
}
