package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"library-admin/internal/models"
)

// DefaultActivityLimit bounds the activity page.
const DefaultActivityLimit = 200

type AdminActionLogRepository struct {
	DB *pgxpool.Pool
}

func NewAdminActionLogRepository(db *pgxpool.Pool) *AdminActionLogRepository {
	return &AdminActionLogRepository{DB: db}
}

// CreateActionLog records a mutation issued through the admin interface
func (r *AdminActionLogRepository) CreateActionLog(ctx context.Context, log *models.AdminActionLog) error {
	query := `
		INSERT INTO admin_action_logs (
			actor, action_type, target_type, target_id,
			description, new_value, ip_address, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		log.Actor, log.ActionType, log.TargetType, log.TargetID,
		log.Description, log.NewValue, log.IPAddress,
	).Scan(&log.ID, &log.CreatedAt)
}

// ListRecent returns the newest action logs first, optionally filtered by
// target type
func (r *AdminActionLogRepository) ListRecent(ctx context.Context, targetType string, limit int) ([]*models.AdminActionLog, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}

	query := `
		SELECT id, actor, action_type, target_type, target_id,
		       description, new_value::text, ip_address, created_at
		FROM admin_action_logs
		WHERE ($1 = '' OR target_type = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.Query(ctx, query, targetType, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]*models.AdminActionLog, 0)
	for rows.Next() {
		l := &models.AdminActionLog{}
		if err := rows.Scan(
			&l.ID, &l.Actor, &l.ActionType, &l.TargetType, &l.TargetID,
			&l.Description, &l.NewValue, &l.IPAddress, &l.CreatedAt,
		); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	return logs, rows.Err()
}
