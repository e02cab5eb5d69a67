package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/relief_coordination_system/internal/apperrors"
	"github.com/shenikar/relief_coordination_system/internal/models"
	"github.com/shenikar/relief_coordination_system/internal/service"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserRepository {
	return &UserRepository{db: db}
}

// GetByID возвращает пользователя вместе с его навыками
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT
			id,
			name,
			email,
			phone,
			role,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude,
			is_active,
			created_at,
			updated_at
		FROM users
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Phone,
		&user.Role,
		&user.Location.Latitude,
		&user.Location.Longitude,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", id.String())
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	skills, err := r.GetSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Skills = skills
	return user, nil
}

// FindNearbyVolunteers находит активных волонтеров в радиусе от точки.
// Порядок результатов не гарантируется контрактом.
func (r *UserRepository) FindNearbyVolunteers(ctx context.Context, center models.Coordinate, radiusMeters float64) ([]*models.VolunteerSummary, error) {
	query := `
		SELECT
			id,
			name,
			email,
			phone,
			ST_Y(location::geometry) as latitude,
			ST_X(location::geometry) as longitude
		FROM users
		WHERE
			role = 'volunteer'
			AND is_active = TRUE
			AND ST_DWithin(
				location,
				ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography,
				$3
			);
	`
	rows, err := r.db.Query(ctx, query, center.Longitude, center.Latitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby volunteers: %w", err)
	}
	defer rows.Close()

	volunteers := make([]*models.VolunteerSummary, 0)
	for rows.Next() {
		v := &models.VolunteerSummary{}
		err := rows.Scan(
			&v.ID,
			&v.Name,
			&v.Email,
			&v.Phone,
			&v.Location.Latitude,
			&v.Location.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan volunteer row: %w", err)
		}
		volunteers = append(volunteers, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error nearby volunteers iteration: %w", err)
	}

	for _, v := range volunteers {
		skills, err := r.GetSkills(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Skills = skills
	}
	return volunteers, nil
}

// GetSkills возвращает навыки пользователя
func (r *UserRepository) GetSkills(ctx context.Context, userID uuid.UUID) ([]models.VolunteerSkill, error) {
	query := `
		SELECT skill, level, verified, verified_by, verified_at
		FROM user_skills
		WHERE user_id = $1
		ORDER BY skill;
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user skills: %w", err)
	}
	defer rows.Close()

	skills := make([]models.VolunteerSkill, 0)
	for rows.Next() {
		var skill models.VolunteerSkill
		if err := rows.Scan(&skill.Name, &skill.Level, &skill.Verified, &skill.VerifiedBy, &skill.VerifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan skill row: %w", err)
		}
		skills = append(skills, skill)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error skills iteration: %w", err)
	}
	return skills, nil
}

// AddSkill добавляет навык пользователю. Дубликат имени (без учета
// регистра) отклоняется ограничением уникальности.
func (r *UserRepository) AddSkill(ctx context.Context, userID uuid.UUID, skill models.VolunteerSkill) error {
	query := `
		INSERT INTO user_skills (user_id, skill, level, verified)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db.Exec(ctx, query, userID, skill.Name, skill.Level, skill.Verified)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewConflict("skill already exists for this user")
		}
		return fmt.Errorf("failed to add user skill: %w", err)
	}
	return nil
}

// VerifySkill отмечает навык подтвержденным и фиксирует, кто и когда
// его подтвердил
func (r *UserRepository) VerifySkill(ctx context.Context, userID uuid.UUID, skillName string, verifiedBy uuid.UUID) (*models.VolunteerSkill, error) {
	query := `
		UPDATE user_skills SET
			verified = TRUE,
			verified_by = $1,
			verified_at = NOW()
		WHERE user_id = $2 AND LOWER(skill) = LOWER($3)
		RETURNING skill, level, verified, verified_by, verified_at;
	`
	var skill models.VolunteerSkill
	err := r.db.QueryRow(ctx, query, verifiedBy, userID, skillName).Scan(
		&skill.Name,
		&skill.Level,
		&skill.Verified,
		&skill.VerifiedBy,
		&skill.VerifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("skill", skillName)
		}
		return nil, fmt.Errorf("failed to verify user skill: %w", err)
	}
	return &skill, nil
}

// isUniqueViolation сообщает, вызвана ли ошибка нарушением
// ограничения уникальности
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
