// Package policy репозиторий политик бронирования тенанта
// (горизонт бронирования, минимальное время до записи)
package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/coloradodev/cronos-booking/internal/domain"
	"github.com/coloradodev/cronos-booking/pkg/dbmetrics"
	"github.com/coloradodev/cronos-booking/pkg/psqlbuilder"
)

// Repository репозиторий для чтения политик бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenant получает политику бронирования тенанта.
// Если политика не сконфигурирована, возвращает ErrPolicyNotFound —
// вызывающий код подставляет значения по умолчанию
func (r *Repository) GetByTenant(ctx context.Context, tenantID uuid.UUID) (*domain.BookingPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"tenant_id",
		"advance_booking_days",
		"min_booking_notice_minutes",
		"created_at",
		"updated_at",
	).
		From("booking_policies").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.BookingPolicy
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.TenantID,
		&p.AdvanceBookingDays,
		&p.MinBookingNoticeMinutes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenant - scan row: %v", ErrScanRow, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
